package api

import (
	"github.com/terraincognita07/gravida/internal/db"
	"github.com/terraincognita07/gravida/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	unitOfWork := transactionalUnitOfWork(database)

	handler.calendarService = services.NewCalendarService(handler.repositories.Users, handler.repositories.Events, unitOfWork, handler.clock, handler.location)
	handler.pregnancyService = services.NewPregnancyService(handler.repositories.Users, handler.repositories.Events, unitOfWork, handler.clock, handler.location)
	handler.calculatorService = services.NewCalculatorService(handler.repositories.Users, handler.repositories.Events, handler.clock, handler.location)
	handler.profileService = services.NewProfileService(handler.repositories.Users)
	return handler
}

func transactionalUnitOfWork(database *gorm.DB) services.UnitOfWork {
	return func(fn func(subjects services.SubjectRepository, events services.CycleEventRepository) error) error {
		return db.RunInTransaction(database, func(repos *db.Repositories) error {
			return fn(repos.Users, repos.Events)
		})
	}
}
