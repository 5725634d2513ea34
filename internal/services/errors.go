package services

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by this package matches exactly one of
// them through errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStore      = errors.New("store failure")
)

var (
	ErrDateRequired                 = fmt.Errorf("%w: date is required", ErrValidation)
	ErrInvalidDate                  = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidRange                 = fmt.Errorf("%w: range end before start", ErrValidation)
	ErrDurationPeriodOutOfRange     = fmt.Errorf("%w: duration period out of range", ErrValidation)
	ErrDurationMenstruationInvalid  = fmt.Errorf("%w: duration menstruation out of range", ErrValidation)
	ErrLastMensesInFuture           = fmt.Errorf("%w: last menses date is in the future", ErrValidation)
	ErrMensesEndingBeforeBeginning  = fmt.Errorf("%w: menses ending before beginning", ErrValidation)
	ErrMeasurementKindInvalid       = fmt.Errorf("%w: event kind is not a measurement", ErrValidation)
	ErrMeasurementValueRequired     = fmt.Errorf("%w: measurement value is required", ErrValidation)
	ErrEventNotEditable             = fmt.Errorf("%w: event kind cannot be edited here", ErrValidation)
	ErrTeamAssociationMissing       = fmt.Errorf("%w: subject is not associated with team", ErrValidation)
	ErrPregnancyStateInconsistent   = fmt.Errorf("%w: ovulation date and childbirth date must be set together", ErrValidation)
	ErrSubjectNotFound              = fmt.Errorf("%w: subject", ErrNotFound)
	ErrEventNotFound                = fmt.Errorf("%w: event", ErrNotFound)
	ErrOpenPeriodExists             = fmt.Errorf("%w: an open menses period already exists", ErrConflict)
	ErrChildbirthBeforeOvulation    = fmt.Errorf("%w: childbirth date before ovulation date", ErrValidation)
	ErrPregnancyEndedBeforeInterval = fmt.Errorf("%w: pregnancy end date before ovulation date", ErrValidation)
)

type dateError struct {
	raw string
}

func newDateError(raw string) error {
	return &dateError{raw: raw}
}

func (err *dateError) Error() string {
	return fmt.Sprintf("%s %q", ErrInvalidDate.Error(), err.raw)
}

func (err *dateError) Is(target error) bool {
	return target == ErrInvalidDate || target == ErrValidation
}

// StoreError wraps a failure reported by a storage collaborator. The original
// error stays reachable through errors.Unwrap.
type StoreError struct {
	Operation string
	Err       error
}

func (err *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStore.Error(), err.Operation, err.Err)
}

func (err *StoreError) Unwrap() error {
	return err.Err
}

func (err *StoreError) Is(target error) bool {
	return target == ErrStore
}

func storeError(operation string, err error) error {
	if err == nil {
		return nil
	}
	var existing *StoreError
	if errors.As(err, &existing) {
		return err
	}
	return &StoreError{Operation: operation, Err: err}
}

// passThrough keeps classified errors intact and wraps the rest as store failures.
func passThrough(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrStore) {
		return err
	}
	return storeError(operation, err)
}
