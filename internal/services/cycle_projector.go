package services

import (
	"iter"
	"sort"
	"time"

	"github.com/terraincognita07/gravida/internal/models"
)

const (
	// MaxProjectedCycles bounds forward projection to roughly one year.
	MaxProjectedCycles = 12

	LutealPhaseDays              = 14
	MaxOvulationOffsetDays       = 14
	FertilityDaysBeforeOvulation = 4
	FertilityDaysAfterOvulation  = 3
)

// ProjectRange derives ovulation, fertility and projected menses events that
// intersect [rangeStart, rangeEnd] from a subject's menses history.
//
// history is expected newest first. Deleted and non-menses events are ignored.
// The returned sequence computes lazily and can be ranged over only once.
func ProjectRange(history []models.CycleEvent, durationPeriod int, durationMenstruation int, rangeStart time.Time, rangeEnd time.Time) iter.Seq[CalendarEvent] {
	menses := mensesNewestFirst(history)
	rangeStart = CalendarDate(rangeStart)
	rangeEnd = CalendarDate(rangeEnd)
	if durationMenstruation < 1 {
		durationMenstruation = 1
	}

	consumed := false
	return func(yield func(CalendarEvent) bool) {
		if consumed || len(menses) == 0 || durationPeriod <= 0 {
			return
		}
		consumed = true

		emit := func(event CalendarEvent) bool {
			if !intervalsIntersect(event.Beginning, event.LastDay(), rangeStart, rangeEnd) {
				return true
			}
			return yield(event)
		}

		for index, anchor := range menses {
			var ovulation time.Time
			if index > 0 {
				ovulation = AddDays(menses[index-1].Beginning, -LutealPhaseDays)
			} else {
				ovulation = AddDays(anchor.Beginning, OvulationOffsetDays(durationPeriod))
			}
			if !emitOvulationWindow(ovulation, mensesLastDay(anchor, durationMenstruation), emit) {
				return
			}
		}

		latest := menses[0].Beginning
		for cycle := 1; cycle <= MaxProjectedCycles; cycle++ {
			start := AddDays(latest, cycle*durationPeriod)
			if start.After(rangeEnd) {
				return
			}
			end := AddDays(start, durationMenstruation-1)
			if !emit(newCalculatedEvent(models.EventKindMensesProjected, start, end)) {
				return
			}
			ovulation := AddDays(start, OvulationOffsetDays(durationPeriod))
			if !emitOvulationWindow(ovulation, end, emit) {
				return
			}
		}
	}
}

// OvulationOffsetDays is the half-cycle estimate used when no later period is known.
func OvulationOffsetDays(durationPeriod int) int {
	return min(durationPeriod/2, MaxOvulationOffsetDays)
}

// FertilityWindow returns the fertile days around ovulation. The window never
// starts on or before periodEnd; ok is false when nothing is left of it.
func FertilityWindow(ovulation time.Time, periodEnd time.Time) (time.Time, time.Time, bool) {
	start := AddDays(ovulation, -FertilityDaysBeforeOvulation)
	end := AddDays(ovulation, FertilityDaysAfterOvulation)
	if !start.After(periodEnd) {
		start = AddDays(periodEnd, 1)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func emitOvulationWindow(ovulation time.Time, periodEnd time.Time, emit func(CalendarEvent) bool) bool {
	if !emit(newCalculatedEvent(models.EventKindOvulationCalc, ovulation, ovulation)) {
		return false
	}
	start, end, ok := FertilityWindow(ovulation, periodEnd)
	if !ok {
		return true
	}
	return emit(newCalculatedEvent(models.EventKindFertilityCalc, start, end))
}

func mensesLastDay(event models.CycleEvent, durationMenstruation int) time.Time {
	if event.Ending != nil {
		return CalendarDate(*event.Ending)
	}
	return AddDays(CalendarDate(event.Beginning), durationMenstruation-1)
}

func mensesNewestFirst(history []models.CycleEvent) []models.CycleEvent {
	menses := make([]models.CycleEvent, 0, len(history))
	for _, event := range history {
		if event.Kind != models.EventKindMenses || event.Deleted {
			continue
		}
		event.Beginning = CalendarDate(event.Beginning)
		menses = append(menses, event)
	}
	sort.SliceStable(menses, func(i, j int) bool {
		return menses[i].Beginning.After(menses[j].Beginning)
	})
	return menses
}

// CollectEvents drains seq into a slice.
func CollectEvents(seq iter.Seq[CalendarEvent]) []CalendarEvent {
	events := make([]CalendarEvent, 0)
	for event := range seq {
		events = append(events, event)
	}
	return events
}
