package lunar

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrOutOfRange is returned when a lunar field falls outside its valid range.
	ErrOutOfRange = errors.New("lunar field out of range")

	// ErrInvalidUnit is returned for an arithmetic unit that is not recognized.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrNoSuchDate is returned when the fields are in range but the lunar
	// calendar has no such date (a missing leap month, day 30 of a short month).
	ErrNoSuchDate = errors.New("no such lunar date")

	// ErrInvalidDate is returned when a lunar view is requested of an invalid Date.
	ErrInvalidDate = errors.New("Invalid Date")
)

// FieldError describes the first lunar field that failed validation.
type FieldError struct {
	Field   string
	Value   int
	Missing bool   // no usable value was supplied
	Text    string // the value as supplied, when it does not fit in Value
	Min     int
	Max     int
	Hint    string
}

func (e *FieldError) Error() string {
	value := fmt.Sprint(e.Value)
	switch {
	case e.Missing:
		value = "missing"
	case e.Text != "":
		value = e.Text
	}
	msg := fmt.Sprintf("Invalid lunar %s: %s. Valid range is from %d to %d", e.Field, value, e.Min, e.Max)
	if e.Hint != "" {
		msg += ", " + e.Hint
	}
	return msg + "."
}

func (e *FieldError) Unwrap() error {
	return ErrOutOfRange
}

// UnitError reports an arithmetic unit that could not be dispatched.
type UnitError struct {
	Unit  string
	Lunar bool
}

func (e *UnitError) Error() string {
	if e.Lunar {
		return "Invalid lunar unit: " + e.Unit
	}
	return "Invalid unit: " + e.Unit
}

func (e *UnitError) Unwrap() error {
	return ErrInvalidUnit
}

// IsOutOfRange reports whether err is a lunar range violation.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// IsInvalidUnit reports whether err is an unknown arithmetic unit.
func IsInvalidUnit(err error) bool {
	return errors.Is(err, ErrInvalidUnit)
}
