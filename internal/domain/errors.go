package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrEmptyOrder         = errors.New("order must contain at least one ticket")
	ErrNotFound           = errors.New("not found")
	ErrSeatTaken          = errors.New("seat already taken")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidImage       = errors.New("invalid image")
)

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFound(resource string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id.String()}
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// BoundsError reports a ticket coordinate outside the aircraft seat grid.
// Min and Max form the valid inclusive range.
type BoundsError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("The %s number cannot be %d! It must be in range [%d, %d].",
		e.Field, e.Value, e.Min, e.Max)
}

// SeatTakenError is returned when a (flight, row, seat) triple is already
// booked, either by a committed order or by another ticket of the same request.
type SeatTakenError struct {
	FlightID uuid.UUID
	Row      int
	Seat     int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat already taken: flight %s row %d seat %d", e.FlightID, e.Row, e.Seat)
}

func (e *SeatTakenError) Unwrap() error { return ErrSeatTaken }

// ValidationError carries per-field messages for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
