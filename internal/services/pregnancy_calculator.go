package services

import (
	"time"

	"github.com/terraincognita07/gravida/internal/models"
)

// GestationDays separates ovulation from the estimated due date.
const GestationDays = 265

type PregnancyEstimate struct {
	OvulationDate   time.Time
	DueDate         time.Time
	GestationalWeek int
	HasOverlap      bool
}

type PregnancyCalculationInput struct {
	LastMensesDate string
	DurationPeriod int
}

func IsValidDurationPeriod(value int) bool {
	return value >= models.MinDurationPeriod && value <= models.MaxDurationPeriod
}

func IsValidDurationMenstruation(value int) bool {
	return value >= models.MinDurationMenstruation && value <= models.MaxDurationMenstruation
}

// CalculateDueDate dates a pregnancy from the last menstrual period. today is
// the subject's current calendar day.
func CalculateDueDate(lastMensesDate time.Time, durationPeriod int, existing []models.CycleEvent, today time.Time) (PregnancyEstimate, error) {
	if !IsValidDurationPeriod(durationPeriod) {
		return PregnancyEstimate{}, ErrDurationPeriodOutOfRange
	}
	lastMensesDate = CalendarDate(lastMensesDate)
	today = CalendarDate(today)
	if lastMensesDate.After(today) {
		return PregnancyEstimate{}, ErrLastMensesInFuture
	}

	ovulation := AddDays(lastMensesDate, durationPeriod/2)
	due := AddDays(ovulation, GestationDays)
	return PregnancyEstimate{
		OvulationDate:   ovulation,
		DueDate:         due,
		GestationalWeek: GestationalWeek(ovulation, today),
		HasOverlap:      PregnancyOverlaps(ovulation, due, existing),
	}, nil
}

// GestationalWeek is 1 during the first seven days after ovulation and keeps
// counting past the due date.
func GestationalWeek(ovulation time.Time, today time.Time) int {
	return floorDiv(DaysBetween(ovulation, today), 7) + 1
}

// PregnancyOverlaps reports whether any live pregnancy interval ends on or after
// ovulation or begins on or before due. The two checks are independent, so a
// single interval on either side of the candidate is enough.
func PregnancyOverlaps(ovulation time.Time, due time.Time, existing []models.CycleEvent) bool {
	for _, interval := range existing {
		if interval.Kind != models.EventKindPregnancy || interval.Deleted {
			continue
		}
		if interval.Ending != nil && !CalendarDate(*interval.Ending).Before(ovulation) {
			return true
		}
		if !CalendarDate(interval.Beginning).After(due) {
			return true
		}
	}
	return false
}

type CalculatorService struct {
	subjects SubjectReader
	events   CycleEventReader
	clock    Clock
	location *time.Location
}

func NewCalculatorService(subjects SubjectReader, events CycleEventReader, clock Clock, location *time.Location) *CalculatorService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &CalculatorService{subjects: subjects, events: events, clock: clock, location: location}
}

func (service *CalculatorService) Calculate(subjectID uint, teamID uint, input PregnancyCalculationInput) (PregnancyEstimate, error) {
	lastMensesDate, err := ParseISODate(input.LastMensesDate)
	if err != nil {
		return PregnancyEstimate{}, err
	}
	if !IsValidDurationPeriod(input.DurationPeriod) {
		return PregnancyEstimate{}, ErrDurationPeriodOutOfRange
	}
	today := TodayAt(service.clock, service.location)
	if lastMensesDate.After(today) {
		return PregnancyEstimate{}, ErrLastMensesInFuture
	}

	if _, err := loadSubjectForTeam(service.subjects, subjectID, teamID); err != nil {
		return PregnancyEstimate{}, err
	}
	existing, err := service.events.QueryEvents(subjectID, models.EventKindPregnancy, nil, false)
	if err != nil {
		return PregnancyEstimate{}, storeError("query pregnancy intervals", err)
	}
	return CalculateDueDate(lastMensesDate, input.DurationPeriod, existing, today)
}
