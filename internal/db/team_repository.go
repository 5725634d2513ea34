package db

import (
	"github.com/terraincognita07/gravida/internal/models"
	"gorm.io/gorm"
)

type TeamRepository struct {
	database *gorm.DB
}

func NewTeamRepository(database *gorm.DB) *TeamRepository {
	return &TeamRepository{database: database}
}

func (repo *TeamRepository) Create(team *models.Team) error {
	return repo.database.Create(team).Error
}

func (repo *TeamRepository) FindByID(teamID uint) (models.Team, bool, error) {
	team := models.Team{}
	result := repo.database.Where("id = ?", teamID).Limit(1).Find(&team)
	if result.Error != nil {
		return models.Team{}, false, result.Error
	}
	return team, result.RowsAffected > 0, nil
}

func (repo *TeamRepository) FindByName(name string) (models.Team, bool, error) {
	team := models.Team{}
	result := repo.database.Where("name = ?", name).Order("id ASC").Limit(1).Find(&team)
	if result.Error != nil {
		return models.Team{}, false, result.Error
	}
	return team, result.RowsAffected > 0, nil
}
