package models

import (
	"errors"
	"strings"
)

type EventKind string

const (
	EventKindMenses          EventKind = "menses"
	EventKindOvulationCalc   EventKind = "ovulation_calc"
	EventKindFertilityCalc   EventKind = "fertility_calc"
	EventKindMensesProjected EventKind = "menses_projected"
	EventKindPregnancy       EventKind = "pregnancy"
	EventKindWeight          EventKind = "weight"
	EventKindTemperature     EventKind = "temperature"
	EventKindSymptom         EventKind = "symptom"
)

var ErrUnknownEventKind = errors.New("unknown event kind")

type EventKindInfo struct {
	Kind        EventKind
	Color       string
	Calculated  bool
	Measurement bool
	SortOrder   int
}

// EventKinds returns a fresh copy of the kind table on every call.
func EventKinds() map[EventKind]EventKindInfo {
	return map[EventKind]EventKindInfo{
		EventKindMenses:          {Kind: EventKindMenses, Color: "#E53935", SortOrder: 0},
		EventKindMensesProjected: {Kind: EventKindMensesProjected, Color: "#F48FB1", Calculated: true, SortOrder: 1},
		EventKindFertilityCalc:   {Kind: EventKindFertilityCalc, Color: "#43A047", Calculated: true, SortOrder: 2},
		EventKindOvulationCalc:   {Kind: EventKindOvulationCalc, Color: "#8E24AA", Calculated: true, SortOrder: 3},
		EventKindPregnancy:       {Kind: EventKindPregnancy, Color: "#1E88E5", SortOrder: 4},
		EventKindWeight:          {Kind: EventKindWeight, Color: "#6D4C41", Measurement: true, SortOrder: 5},
		EventKindTemperature:     {Kind: EventKindTemperature, Color: "#FB8C00", Measurement: true, SortOrder: 6},
		EventKindSymptom:         {Kind: EventKindSymptom, Color: "#546E7A", Measurement: true, SortOrder: 7},
	}
}

func ParseEventKind(raw string) (EventKind, error) {
	kind := EventKind(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := EventKinds()[kind]; !ok {
		return "", ErrUnknownEventKind
	}
	return kind, nil
}

func (kind EventKind) Info() (EventKindInfo, bool) {
	info, ok := EventKinds()[kind]
	return info, ok
}

func (kind EventKind) IsCalculated() bool {
	info, ok := kind.Info()
	return ok && info.Calculated
}

func (kind EventKind) IsMeasurement() bool {
	info, ok := kind.Info()
	return ok && info.Measurement
}

func (kind EventKind) Color() string {
	info, _ := kind.Info()
	return info.Color
}

func (kind EventKind) SortOrder() int {
	info, ok := kind.Info()
	if !ok {
		return len(EventKinds())
	}
	return info.SortOrder
}
