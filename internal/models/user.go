package models

import "time"

const (
	DefaultDurationPeriod       = 28
	DefaultDurationMenstruation = 5

	MinDurationPeriod       = 22
	MaxDurationPeriod       = 45
	MinDurationMenstruation = 1
	MaxDurationMenstruation = 14
)

type User struct {
	ID                   uint   `gorm:"primaryKey"`
	Email                string `gorm:"uniqueIndex;not null"`
	DisplayName          string `gorm:"not null;default:''"`
	TeamID               *uint  `gorm:"index"`
	DurationPeriod       int    `gorm:"not null;default:28"`
	DurationMenstruation int    `gorm:"not null;default:5"`
	OvulationDate        *time.Time
	Childbirthdate       *time.Time
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time
}

// CycleProfile is the cycle-related projection of a subject record.
type CycleProfile struct {
	DurationPeriod       int        `json:"duration_period"`
	DurationMenstruation int        `json:"duration_menstruation"`
	OvulationDate        *time.Time `json:"ovulation_date"`
	Childbirthdate       *time.Time `json:"childbirthdate"`
}

func (user User) CycleProfile() CycleProfile {
	return CycleProfile{
		DurationPeriod:       user.DurationPeriod,
		DurationMenstruation: user.DurationMenstruation,
		OvulationDate:        user.OvulationDate,
		Childbirthdate:       user.Childbirthdate,
	}
}

func (user User) BelongsToTeam(teamID uint) bool {
	return user.TeamID != nil && *user.TeamID == teamID
}

// PregnancyDates carries the paired scalar fields. Both nil means no active pregnancy.
type PregnancyDates struct {
	OvulationDate  *time.Time
	Childbirthdate *time.Time
}
