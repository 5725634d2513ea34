package services

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/gravida/internal/models"
)

// CalendarEvent is the unified shape returned for a calendar window. Persisted
// events keep their row id; calculated events carry a name-based UUID.
type CalendarEvent struct {
	Key        string
	EventID    uint
	Kind       models.EventKind
	Beginning  time.Time
	Ending     *time.Time
	Value      *float64
	Notes      string
	Color      string
	Calculated bool
}

var calculatedEventNamespace = uuid.MustParse("6f1c1a52-3c1e-4f4e-9a63-2b8f8c1d7e10")

func calendarEventFromModel(event models.CycleEvent) CalendarEvent {
	return CalendarEvent{
		Key:       strconv.FormatUint(uint64(event.ID), 10),
		EventID:   event.ID,
		Kind:      event.Kind,
		Beginning: CalendarDate(event.Beginning),
		Ending:    calendarDatePtr(event.Ending),
		Value:     event.Value,
		Notes:     event.Notes,
		Color:     event.Kind.Color(),
	}
}

func newCalculatedEvent(kind models.EventKind, beginning time.Time, ending time.Time) CalendarEvent {
	name := string(kind) + "|" + FormatISODate(beginning) + "|" + FormatISODate(ending)
	return CalendarEvent{
		Key:        uuid.NewSHA1(calculatedEventNamespace, []byte(name)).String(),
		Kind:       kind,
		Beginning:  beginning,
		Ending:     datePtr(ending),
		Color:      kind.Color(),
		Calculated: true,
	}
}

// LastDay is the inclusive end of the event; open events end on their first day.
func (event CalendarEvent) LastDay() time.Time {
	if event.Ending == nil {
		return event.Beginning
	}
	return *event.Ending
}

func calendarDatePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	return datePtr(CalendarDate(*value))
}
