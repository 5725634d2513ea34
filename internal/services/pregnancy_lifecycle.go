package services

import (
	"time"

	"github.com/terraincognita07/gravida/internal/models"
)

type PregnancyStatusView struct {
	Active          bool
	Childbirthdate  *time.Time
	OvulationDate   *time.Time
	GestationalWeek *int
	DurationPeriod  int
	LastMensesDate  *time.Time
}

type PregnancyService struct {
	subjects   SubjectReader
	events     CycleEventReader
	unitOfWork UnitOfWork
	clock      Clock
	location   *time.Location
}

func NewPregnancyService(subjects SubjectReader, events CycleEventReader, unitOfWork UnitOfWork, clock Clock, location *time.Location) *PregnancyService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &PregnancyService{
		subjects:   subjects,
		events:     events,
		unitOfWork: unitOfWork,
		clock:      clock,
		location:   location,
	}
}

// Save starts or recalculates the subject's pregnancy. The profile scalars and
// the live pregnancy interval are written in one unit of work.
func (service *PregnancyService) Save(subjectID uint, teamID uint, childbirthdateRaw string, ovulationDateRaw string) (PregnancyActive, error) {
	due, err := ParseISODate(childbirthdateRaw)
	if err != nil {
		return PregnancyActive{}, err
	}
	ovulation, err := ParseISODate(ovulationDateRaw)
	if err != nil {
		return PregnancyActive{}, err
	}
	if due.Before(ovulation) {
		return PregnancyActive{}, ErrChildbirthBeforeOvulation
	}
	if _, err := loadSubjectForTeam(service.subjects, subjectID, teamID); err != nil {
		return PregnancyActive{}, err
	}

	status := PregnancyActive{OvulationDate: ovulation, DueDate: due}
	err = service.unitOfWork(func(subjects SubjectRepository, events CycleEventRepository) error {
		if err := subjects.UpdateCycleProfile(subjectID, PregnancyDatesFor(status)); err != nil {
			return storeError("update cycle profile", err)
		}

		interval, found, err := events.FindActivePregnancy(subjectID)
		if err != nil {
			return storeError("find active pregnancy", err)
		}
		if !found {
			interval = models.CycleEvent{UserID: subjectID, Kind: models.EventKindPregnancy}
		}
		interval.Beginning = ovulation
		interval.Ending = datePtr(due)
		if err := events.UpsertEvent(&interval); err != nil {
			return storeError("upsert pregnancy interval", err)
		}
		return nil
	})
	if err != nil {
		return PregnancyActive{}, passThrough("save pregnancy", err)
	}
	return status, nil
}

// Terminate closes the live pregnancy interval on pregnancyEndedRaw and clears
// the profile scalars. It succeeds when no pregnancy is active.
func (service *PregnancyService) Terminate(subjectID uint, teamID uint, pregnancyEndedRaw string) error {
	ended, err := ParseISODate(pregnancyEndedRaw)
	if err != nil {
		return err
	}
	if _, err := loadSubjectForTeam(service.subjects, subjectID, teamID); err != nil {
		return err
	}

	err = service.unitOfWork(func(subjects SubjectRepository, events CycleEventRepository) error {
		interval, found, err := events.FindActivePregnancy(subjectID)
		if err != nil {
			return storeError("find active pregnancy", err)
		}
		if found {
			if ended.Before(CalendarDate(interval.Beginning)) {
				return ErrPregnancyEndedBeforeInterval
			}
			interval.Ending = datePtr(ended)
			interval.Deleted = true
			if err := events.UpsertEvent(&interval); err != nil {
				return storeError("close pregnancy interval", err)
			}
		}

		if err := subjects.UpdateCycleProfile(subjectID, PregnancyDatesFor(PregnancyInactive{})); err != nil {
			return storeError("clear cycle profile", err)
		}
		return nil
	})
	return passThrough("terminate pregnancy", err)
}

func (service *PregnancyService) Status(subjectID uint, teamID uint) (PregnancyStatusView, error) {
	user, err := loadSubjectForTeam(service.subjects, subjectID, teamID)
	if err != nil {
		return PregnancyStatusView{}, err
	}
	status, err := PregnancyStatusFromProfile(user.CycleProfile())
	if err != nil {
		return PregnancyStatusView{}, err
	}

	view := PregnancyStatusView{DurationPeriod: user.DurationPeriod}
	if active, ok := status.(PregnancyActive); ok {
		week := GestationalWeek(active.OvulationDate, TodayAt(service.clock, service.location))
		view.Active = true
		view.OvulationDate = datePtr(active.OvulationDate)
		view.Childbirthdate = datePtr(active.DueDate)
		view.GestationalWeek = &week
	}

	latest, found, err := service.events.LatestMenses(subjectID)
	if err != nil {
		return PregnancyStatusView{}, storeError("load latest menses", err)
	}
	if found {
		view.LastMensesDate = datePtr(CalendarDate(latest.Beginning))
	}
	return view, nil
}
