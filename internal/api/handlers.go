package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/terraincognita07/gravida/internal/db"
	"github.com/terraincognita07/gravida/internal/security"
	"github.com/terraincognita07/gravida/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db                *gorm.DB
	secretKey         []byte
	location          *time.Location
	clock             services.Clock
	logger            zerolog.Logger
	validate          *validator.Validate
	authLimiter       *attemptLimiter
	repositories      *db.Repositories
	calendarService   *services.CalendarService
	pregnancyService  *services.PregnancyService
	calculatorService *services.CalculatorService
	profileService    *services.ProfileService
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, logger zerolog.Logger) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if len(secret) < security.MinSecretKeyLength {
		return nil, fmt.Errorf("secret key must be at least %d characters", security.MinSecretKeyLength)
	}
	if location == nil {
		location = time.UTC
	}

	handler := &Handler{
		db:          database,
		secretKey:   []byte(secret),
		location:    location,
		clock:       services.SystemClock{},
		logger:      logger.With().Str("component", "api").Logger(),
		validate:    newPayloadValidator(),
		authLimiter: newAttemptLimiter(defaultAuthFailureLimit, defaultAuthFailureWindow),
	}
	return handler.withDependencies(database), nil
}

// WithClock rebuilds the services around clock.
func (handler *Handler) WithClock(clock services.Clock) *Handler {
	handler.clock = clock
	return handler.withDependencies(handler.db)
}
