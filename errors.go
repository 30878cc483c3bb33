package prospect

import (
	"errors"
	"fmt"
)

var (
	// Store errors.
	ErrNoStore         = errors.New("prospect: no store configured")
	ErrStoreClosed     = errors.New("prospect: store closed")
	ErrMigrationFailed = errors.New("prospect: migration failed")

	// Not found errors.
	ErrBusinessNotFound = errors.New("prospect: business not found")

	// Conflict errors.
	ErrBusinessExists  = errors.New("prospect: business already exists")
	ErrVersionConflict = errors.New("prospect: business was modified concurrently")

	// State errors.
	ErrTerminalState = errors.New("prospect: business cannot progress further")

	// ErrInvalidInput is wrapped by every validation error so callers can
	// match the whole class with errors.Is.
	ErrInvalidInput = errors.New("prospect: invalid input")

	// Validation errors.
	ErrFEINRequired     = fmt.Errorf("%w: fein required", ErrInvalidInput)
	ErrNameRequired     = fmt.Errorf("%w: name required", ErrInvalidInput)
	ErrIndustryRequired = fmt.Errorf("%w: industry required", ErrInvalidInput)
	ErrContactRequired  = fmt.Errorf("%w: valid contact required", ErrInvalidInput)
	ErrUnknownOutcome   = fmt.Errorf("%w: deal outcome must be Won or Lost", ErrInvalidInput)
)
