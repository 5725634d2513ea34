package models

import "time"

type CycleEvent struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;index:idx_cycle_events_user_kind_beginning"`
	Kind      EventKind  `gorm:"type:text;not null;index:idx_cycle_events_user_kind_beginning"`
	Beginning time.Time  `gorm:"type:date;not null;index:idx_cycle_events_user_kind_beginning"`
	Ending    *time.Time `gorm:"type:date"`
	Value     *float64
	Notes     string
	Deleted   bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndOrBeginning returns the inclusive last day of the event.
func (event CycleEvent) EndOrBeginning() time.Time {
	if event.Ending == nil {
		return event.Beginning
	}
	return *event.Ending
}

func (event CycleEvent) IsOpenPeriod() bool {
	return event.Kind == EventKindMenses && event.Ending == nil && !event.Deleted
}

// DateRange is an inclusive window; a nil bound leaves that side open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}
