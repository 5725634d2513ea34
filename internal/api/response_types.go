package api

import (
	"time"

	"github.com/terraincognita07/gravida/internal/models"
	"github.com/terraincognita07/gravida/internal/services"
)

type calendarEventResponse struct {
	ID         string   `json:"id"`
	EventID    uint     `json:"event_id,omitempty"`
	Kind       string   `json:"kind"`
	Beginning  string   `json:"beginning"`
	Ending     *string  `json:"ending"`
	Value      *float64 `json:"value,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Color      string   `json:"color"`
	Calculated bool     `json:"calculated"`
}

type pregnancyEstimateResponse struct {
	OvulationDate   string `json:"ovulation_date"`
	DueDate         string `json:"due_date"`
	GestationalWeek int    `json:"gestational_week"`
	HasOverlap      bool   `json:"has_overlap"`
}

type pregnancyStatusResponse struct {
	Active          bool    `json:"active"`
	Childbirthdate  *string `json:"childbirthdate"`
	OvulationDate   *string `json:"ovulation_date"`
	GestationalWeek *int    `json:"gestational_week"`
	DurationPeriod  int     `json:"duration_period"`
	LastMensesDate  *string `json:"last_menses_date"`
}

type cycleProfileResponse struct {
	DurationPeriod       int     `json:"duration_period"`
	DurationMenstruation int     `json:"duration_menstruation"`
	OvulationDate        *string `json:"ovulation_date"`
	Childbirthdate       *string `json:"childbirthdate"`
}

func optionalISODate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := services.FormatISODate(services.CalendarDate(*value))
	return &formatted
}

func newCalendarEventResponse(event services.CalendarEvent) calendarEventResponse {
	return calendarEventResponse{
		ID:         event.Key,
		EventID:    event.EventID,
		Kind:       string(event.Kind),
		Beginning:  services.FormatISODate(event.Beginning),
		Ending:     optionalISODate(event.Ending),
		Value:      event.Value,
		Notes:      event.Notes,
		Color:      event.Color,
		Calculated: event.Calculated,
	}
}

func newCalendarEventsResponse(events []services.CalendarEvent) []calendarEventResponse {
	response := make([]calendarEventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, newCalendarEventResponse(event))
	}
	return response
}

func newPregnancyEstimateResponse(estimate services.PregnancyEstimate) pregnancyEstimateResponse {
	return pregnancyEstimateResponse{
		OvulationDate:   services.FormatISODate(estimate.OvulationDate),
		DueDate:         services.FormatISODate(estimate.DueDate),
		GestationalWeek: estimate.GestationalWeek,
		HasOverlap:      estimate.HasOverlap,
	}
}

func newPregnancyStatusResponse(view services.PregnancyStatusView) pregnancyStatusResponse {
	return pregnancyStatusResponse{
		Active:          view.Active,
		Childbirthdate:  optionalISODate(view.Childbirthdate),
		OvulationDate:   optionalISODate(view.OvulationDate),
		GestationalWeek: view.GestationalWeek,
		DurationPeriod:  view.DurationPeriod,
		LastMensesDate:  optionalISODate(view.LastMensesDate),
	}
}

func newCycleProfileResponse(profile models.CycleProfile) cycleProfileResponse {
	return cycleProfileResponse{
		DurationPeriod:       profile.DurationPeriod,
		DurationMenstruation: profile.DurationMenstruation,
		OvulationDate:        optionalISODate(profile.OvulationDate),
		Childbirthdate:       optionalISODate(profile.Childbirthdate),
	}
}
