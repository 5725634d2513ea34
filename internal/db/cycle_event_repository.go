package db

import (
	"errors"

	"github.com/terraincognita07/gravida/internal/models"
	"gorm.io/gorm"
)

var ErrCalculatedEventNotPersistable = errors.New("calculated events cannot be persisted")

type CycleEventRepository struct {
	database *gorm.DB
}

func NewCycleEventRepository(database *gorm.DB) *CycleEventRepository {
	return &CycleEventRepository{database: database}
}

// QueryEvents lists events of one subject newest first. An empty kind matches
// every kind. Events intersecting window are returned; an open menses event
// counts as still running.
func (repo *CycleEventRepository) QueryEvents(userID uint, kind models.EventKind, window *models.DateRange, includeDeleted bool) ([]models.CycleEvent, error) {
	query := repo.database.Model(&models.CycleEvent{}).Where("user_id = ?", userID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}
	if window != nil {
		if window.To != nil {
			query = query.Where("beginning <= ?", *window.To)
		}
		if window.From != nil {
			query = query.Where(
				"(COALESCE(ending, beginning) >= ? OR (kind = ? AND ending IS NULL))",
				*window.From,
				models.EventKindMenses,
			)
		}
	}

	events := make([]models.CycleEvent, 0)
	if err := query.Order("beginning DESC, id DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *CycleEventRepository) LatestMenses(userID uint) (models.CycleEvent, bool, error) {
	return repo.findFirst(
		repo.database.Where("user_id = ? AND kind = ? AND deleted = ?", userID, models.EventKindMenses, false),
	)
}

func (repo *CycleEventRepository) FindOpenMenses(userID uint) (models.CycleEvent, bool, error) {
	return repo.findFirst(
		repo.database.Where(
			"user_id = ? AND kind = ? AND deleted = ? AND ending IS NULL",
			userID,
			models.EventKindMenses,
			false,
		),
	)
}

func (repo *CycleEventRepository) FindActivePregnancy(userID uint) (models.CycleEvent, bool, error) {
	return repo.findFirst(
		repo.database.Where("user_id = ? AND kind = ? AND deleted = ?", userID, models.EventKindPregnancy, false),
	)
}

func (repo *CycleEventRepository) FindByIDForUser(eventID uint, userID uint) (models.CycleEvent, bool, error) {
	return repo.findFirst(repo.database.Where("id = ? AND user_id = ?", eventID, userID))
}

func (repo *CycleEventRepository) UpsertEvent(event *models.CycleEvent) error {
	if event.Kind.IsCalculated() {
		return ErrCalculatedEventNotPersistable
	}
	if event.ID == 0 {
		return repo.database.Create(event).Error
	}
	return repo.database.Save(event).Error
}

func (repo *CycleEventRepository) SoftDeleteEvent(eventID uint) error {
	result := repo.database.Model(&models.CycleEvent{}).
		Where("id = ? AND deleted = ?", eventID, false).
		Update("deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *CycleEventRepository) findFirst(query *gorm.DB) (models.CycleEvent, bool, error) {
	event := models.CycleEvent{}
	result := query.Order("beginning DESC, id DESC").Limit(1).Find(&event)
	if result.Error != nil {
		return models.CycleEvent{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleEvent{}, false, nil
	}
	return event, true, nil
}
