package services

import (
	"strings"
	"time"

	"github.com/terraincognita07/gravida/internal/models"
)

const maxEventNotesLength = 2000

type MensesInput struct {
	Beginning string
	Ending    string
	Notes     string
}

type MeasurementInput struct {
	Kind  string
	Date  string
	Value *float64
	Notes string
}

// OpenMenses records the first day of a period. It fails with
// ErrOpenPeriodExists while another period has no ending.
func (service *CalendarService) OpenMenses(subjectID uint, teamID uint, input MensesInput) (CalendarEvent, error) {
	beginning, err := ParseISODate(input.Beginning)
	if err != nil {
		return CalendarEvent{}, err
	}
	ending, err := parseMensesEnding(beginning, input.Ending)
	if err != nil {
		return CalendarEvent{}, err
	}
	if _, err := loadSubjectForTeam(service.subjects, subjectID, teamID); err != nil {
		return CalendarEvent{}, err
	}

	event := models.CycleEvent{
		UserID:    subjectID,
		Kind:      models.EventKindMenses,
		Beginning: beginning,
		Ending:    ending,
		Notes:     normalizeEventNotes(input.Notes),
	}
	err = service.unitOfWork(func(_ SubjectRepository, events CycleEventRepository) error {
		if ending == nil {
			if _, found, err := events.FindOpenMenses(subjectID); err != nil {
				return storeError("find open menses", err)
			} else if found {
				return ErrOpenPeriodExists
			}
		}
		return storeError("create menses", events.UpsertEvent(&event))
	})
	if err != nil {
		return CalendarEvent{}, passThrough("open menses", err)
	}
	return calendarEventFromModel(event), nil
}

func (service *CalendarService) CloseMenses(subjectID uint, teamID uint, eventID uint, endingRaw string) (CalendarEvent, error) {
	ending, err := ParseISODate(endingRaw)
	if err != nil {
		return CalendarEvent{}, err
	}
	if _, err := loadSubjectForTeam(service.subjects, subjectID, teamID); err != nil {
		return CalendarEvent{}, err
	}

	event, err := loadEditableEvent(service.events, subjectID, eventID, models.EventKindMenses)
	if err != nil {
		return CalendarEvent{}, err
	}
	if ending.Before(CalendarDate(event.Beginning)) {
		return CalendarEvent{}, ErrMensesEndingBeforeBeginning
	}
	event.Ending = datePtr(ending)
	if err := service.events.UpsertEvent(&event); err != nil {
		return CalendarEvent{}, storeError("close menses", err)
	}
	return calendarEventFromModel(event), nil
}

// UpdateMenses rewrites the dates of a recorded period. Clearing the ending
// reopens it, which is only allowed when no other period is open.
func (service *CalendarService) UpdateMenses(subjectID uint, teamID uint, eventID uint, input MensesInput) (CalendarEvent, error) {
	beginning, err := ParseISODate(input.Beginning)
	if err != nil {
		return CalendarEvent{}, err
	}
	ending, err := parseMensesEnding(beginning, input.Ending)
	if err != nil {
		return CalendarEvent{}, err
	}
	if _, err := loadSubjectForTeam(service.subjects, subjectID, teamID); err != nil {
		return CalendarEvent{}, err
	}

	var updated models.CycleEvent
	err = service.unitOfWork(func(_ SubjectRepository, events CycleEventRepository) error {
		event, err := loadEditableEvent(events, subjectID, eventID, models.EventKindMenses)
		if err != nil {
			return err
		}
		if ending == nil {
			open, found, err := events.FindOpenMenses(subjectID)
			if err != nil {
				return storeError("find open menses", err)
			}
			if found && open.ID != event.ID {
				return ErrOpenPeriodExists
			}
		}

		event.Beginning = beginning
		event.Ending = ending
		event.Notes = normalizeEventNotes(input.Notes)
		if err := events.UpsertEvent(&event); err != nil {
			return storeError("update menses", err)
		}
		updated = event
		return nil
	})
	if err != nil {
		return CalendarEvent{}, passThrough("update menses", err)
	}
	return calendarEventFromModel(updated), nil
}

// DeleteEvent soft deletes a subject-recorded event. Pregnancy intervals are
// owned by the pregnancy lifecycle and cannot be removed here.
func (service *CalendarService) DeleteEvent(subjectID uint, teamID uint, eventID uint) error {
	if _, err := loadSubjectForTeam(service.subjects, subjectID, teamID); err != nil {
		return err
	}
	event, found, err := service.events.FindByIDForUser(eventID, subjectID)
	if err != nil {
		return storeError("find event", err)
	}
	if !found || event.Deleted {
		return ErrEventNotFound
	}
	if event.Kind == models.EventKindPregnancy {
		return ErrEventNotEditable
	}
	return storeError("delete event", service.events.SoftDeleteEvent(event.ID))
}

func (service *CalendarService) RecordMeasurement(subjectID uint, teamID uint, input MeasurementInput) (CalendarEvent, error) {
	kind, err := models.ParseEventKind(input.Kind)
	if err != nil || !kind.IsMeasurement() {
		return CalendarEvent{}, ErrMeasurementKindInvalid
	}
	day, err := ParseISODate(input.Date)
	if err != nil {
		return CalendarEvent{}, err
	}
	if kind != models.EventKindSymptom && input.Value == nil {
		return CalendarEvent{}, ErrMeasurementValueRequired
	}
	if _, err := loadSubjectForTeam(service.subjects, subjectID, teamID); err != nil {
		return CalendarEvent{}, err
	}

	event := models.CycleEvent{
		UserID:    subjectID,
		Kind:      kind,
		Beginning: day,
		Value:     input.Value,
		Notes:     normalizeEventNotes(input.Notes),
	}
	if err := service.events.UpsertEvent(&event); err != nil {
		return CalendarEvent{}, storeError("record measurement", err)
	}
	return calendarEventFromModel(event), nil
}

func loadEditableEvent(events CycleEventRepository, subjectID uint, eventID uint, kind models.EventKind) (models.CycleEvent, error) {
	event, found, err := events.FindByIDForUser(eventID, subjectID)
	if err != nil {
		return models.CycleEvent{}, storeError("find event", err)
	}
	if !found || event.Deleted {
		return models.CycleEvent{}, ErrEventNotFound
	}
	if event.Kind != kind {
		return models.CycleEvent{}, ErrEventNotEditable
	}
	return event, nil
}

func parseMensesEnding(beginning time.Time, raw string) (*time.Time, error) {
	ending, err := ParseOptionalISODate(raw)
	if err != nil || ending == nil {
		return nil, err
	}
	if ending.Before(beginning) {
		return nil, ErrMensesEndingBeforeBeginning
	}
	return ending, nil
}

func normalizeEventNotes(raw string) string {
	notes := strings.TrimSpace(raw)
	if len([]rune(notes)) > maxEventNotesLength {
		notes = string([]rune(notes)[:maxEventNotesLength])
	}
	return notes
}
