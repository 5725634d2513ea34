package services

import (
	"time"

	"github.com/terraincognita07/gravida/internal/models"
)

// PregnancyStatus is either PregnancyInactive or PregnancyActive.
type PregnancyStatus interface {
	isPregnancyStatus()
}

type PregnancyInactive struct{}

type PregnancyActive struct {
	OvulationDate time.Time
	DueDate       time.Time
}

func (PregnancyInactive) isPregnancyStatus() {}
func (PregnancyActive) isPregnancyStatus()   {}

func PregnancyStatusFromProfile(profile models.CycleProfile) (PregnancyStatus, error) {
	switch {
	case profile.OvulationDate == nil && profile.Childbirthdate == nil:
		return PregnancyInactive{}, nil
	case profile.OvulationDate != nil && profile.Childbirthdate != nil:
		return PregnancyActive{
			OvulationDate: CalendarDate(*profile.OvulationDate),
			DueDate:       CalendarDate(*profile.Childbirthdate),
		}, nil
	default:
		return nil, ErrPregnancyStateInconsistent
	}
}

func PregnancyDatesFor(status PregnancyStatus) models.PregnancyDates {
	active, ok := status.(PregnancyActive)
	if !ok {
		return models.PregnancyDates{}
	}
	return models.PregnancyDates{
		OvulationDate:  datePtr(active.OvulationDate),
		Childbirthdate: datePtr(active.DueDate),
	}
}
