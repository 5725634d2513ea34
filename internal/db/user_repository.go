package db

import (
	"github.com/terraincognita07/gravida/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) FindByID(userID uint) (models.User, bool, error) {
	user := models.User{}
	result := repo.database.Where("id = ?", userID).Limit(1).Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	return user, result.RowsAffected > 0, nil
}

func (repo *UserRepository) GetCycleProfile(userID uint) (models.CycleProfile, bool, error) {
	user, found, err := repo.FindByID(userID)
	if err != nil || !found {
		return models.CycleProfile{}, found, err
	}
	return user.CycleProfile(), true, nil
}

// UpdateCycleProfile writes both pregnancy scalars together; nil clears a column.
func (repo *UserRepository) UpdateCycleProfile(userID uint, dates models.PregnancyDates) error {
	result := repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"ovulation_date": dates.OvulationDate,
		"childbirthdate": dates.Childbirthdate,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *UserRepository) UpdateCycleDurations(userID uint, durationPeriod int, durationMenstruation int) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"duration_period":       durationPeriod,
		"duration_menstruation": durationMenstruation,
	}).Error
}

func (repo *UserRepository) FindByEmail(email string) (models.User, bool, error) {
	user := models.User{}
	result := repo.database.Where("email = ?", email).Limit(1).Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	return user, result.RowsAffected > 0, nil
}
