package services

import "github.com/terraincognita07/gravida/internal/models"

type SubjectReader interface {
	FindByID(userID uint) (models.User, bool, error)
}

type SubjectRepository interface {
	SubjectReader
	UpdateCycleProfile(userID uint, dates models.PregnancyDates) error
	UpdateCycleDurations(userID uint, durationPeriod int, durationMenstruation int) error
}

type CycleEventReader interface {
	QueryEvents(userID uint, kind models.EventKind, window *models.DateRange, includeDeleted bool) ([]models.CycleEvent, error)
	LatestMenses(userID uint) (models.CycleEvent, bool, error)
}

type CycleEventRepository interface {
	CycleEventReader
	FindOpenMenses(userID uint) (models.CycleEvent, bool, error)
	FindActivePregnancy(userID uint) (models.CycleEvent, bool, error)
	FindByIDForUser(eventID uint, userID uint) (models.CycleEvent, bool, error)
	UpsertEvent(event *models.CycleEvent) error
	SoftDeleteEvent(eventID uint) error
}

// UnitOfWork runs fn against repositories sharing one storage transaction. The
// writes made through them commit together or not at all.
type UnitOfWork func(fn func(subjects SubjectRepository, events CycleEventRepository) error) error

func loadSubjectForTeam(subjects SubjectReader, subjectID uint, teamID uint) (models.User, error) {
	user, found, err := subjects.FindByID(subjectID)
	if err != nil {
		return models.User{}, storeError("load subject", err)
	}
	if !found {
		return models.User{}, ErrSubjectNotFound
	}
	if !user.BelongsToTeam(teamID) {
		return models.User{}, ErrTeamAssociationMissing
	}
	return user, nil
}
