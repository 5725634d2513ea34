package services

import "github.com/terraincognita07/gravida/internal/models"

type ProfileService struct {
	subjects SubjectRepository
}

func NewProfileService(subjects SubjectRepository) *ProfileService {
	return &ProfileService{subjects: subjects}
}

func (service *ProfileService) Load(subjectID uint, teamID uint) (models.CycleProfile, error) {
	user, err := loadSubjectForTeam(service.subjects, subjectID, teamID)
	if err != nil {
		return models.CycleProfile{}, err
	}
	return user.CycleProfile(), nil
}

func (service *ProfileService) UpdateCycleDurations(subjectID uint, teamID uint, durationPeriod int, durationMenstruation int) (models.CycleProfile, error) {
	if !IsValidDurationPeriod(durationPeriod) {
		return models.CycleProfile{}, ErrDurationPeriodOutOfRange
	}
	if !IsValidDurationMenstruation(durationMenstruation) {
		return models.CycleProfile{}, ErrDurationMenstruationInvalid
	}
	user, err := loadSubjectForTeam(service.subjects, subjectID, teamID)
	if err != nil {
		return models.CycleProfile{}, err
	}
	if err := service.subjects.UpdateCycleDurations(subjectID, durationPeriod, durationMenstruation); err != nil {
		return models.CycleProfile{}, storeError("update cycle durations", err)
	}

	user.DurationPeriod = durationPeriod
	user.DurationMenstruation = durationMenstruation
	return user.CycleProfile(), nil
}
