package models

import (
	"errors"
	"fmt"
	"strings"
)

// Business error taxonomy. Sentinels are matched with errors.Is; the
// typed errors below carry the detail callers need to explain a
// rejection without a second round-trip.
var (
	// ErrNotFound referenced entity is absent; not retryable with the same input
	ErrNotFound = errors.New("record not found")

	// ErrCapacityExceeded the practice has no free slots; callers must not auto-retry
	ErrCapacityExceeded = errors.New("practice capacity exceeded")

	// ErrTrainerAssigned a practice cannot retire while trainers are assigned
	ErrTrainerAssigned = errors.New("trainer still assigned")

	// ErrInconsistentState data integrity problem, surfaced to an operator, never patched silently
	ErrInconsistentState = errors.New("inconsistent data state")

	// ErrTransientStore I/O-level store failure; the whole operation is safe to retry
	ErrTransientStore = errors.New("transient store failure")
)

// NotFoundError reports which entity was missing
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new "not found" error
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// CapacityError carries the occupancy the caller needs to explain the rejection
type CapacityError struct {
	PracticeID  int64
	Capacity    int
	ActiveCount int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("practice %d is full (%d/%d active enrollments)",
		e.PracticeID, e.ActiveCount, e.Capacity)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// TrainerAssignedError lists the trainers blocking a retirement
type TrainerAssignedError struct {
	PracticeID int64
	Trainers   []string
}

func (e *TrainerAssignedError) Error() string {
	return fmt.Sprintf("practice %d still has assigned trainers: %s",
		e.PracticeID, strings.Join(e.Trainers, ", "))
}

func (e *TrainerAssignedError) Is(target error) bool {
	return target == ErrTrainerAssigned
}

// InconsistentStateError describes a data integrity problem
type InconsistentStateError struct {
	Detail string
}

func (e *InconsistentStateError) Error() string {
	return "inconsistent data state: " + e.Detail
}

func (e *InconsistentStateError) Is(target error) bool {
	return target == ErrInconsistentState
}

// StoreError wraps an I/O-level failure as retryable
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrTransientStore
}
