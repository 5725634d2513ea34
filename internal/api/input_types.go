package api

type calendarRangeQuery struct {
	From string `query:"from" validate:"required"`
	To   string `query:"to" validate:"required"`
}

type mensesPayload struct {
	Beginning string `json:"beginning" validate:"required"`
	Ending    string `json:"ending"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type closeMensesPayload struct {
	Ending string `json:"ending" validate:"required"`
}

type measurementPayload struct {
	Kind  string   `json:"kind" validate:"required,oneof=weight temperature symptom"`
	Date  string   `json:"date" validate:"required"`
	Value *float64 `json:"value" validate:"omitempty,gte=0,lte=1000"`
	Notes string   `json:"notes" validate:"max=2000"`
}

// A zero duration_period falls back to the subject's profile.
type pregnancyCalculationPayload struct {
	LastMensesDate string `json:"last_menses_date" validate:"required"`
	DurationPeriod int    `json:"duration_period" validate:"gte=0"`
}

type pregnancyPayload struct {
	Childbirthdate string `json:"childbirthdate" validate:"required"`
	OvulationDate  string `json:"ovulation_date" validate:"required"`
}

type terminatePregnancyPayload struct {
	PregnancyEnded string `json:"pregnancy_ended" validate:"required"`
}

type cycleDurationsPayload struct {
	DurationPeriod       int `json:"duration_period" validate:"required"`
	DurationMenstruation int `json:"duration_menstruation" validate:"required"`
}
