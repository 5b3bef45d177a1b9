package models

import (
	"errors"
	"testing"
)

func TestIsObligationPaid(t *testing.T) {
	tests := []struct {
		name     string
		payments []Payment
		expected bool
	}{
		{
			name:     "no payments",
			payments: []Payment{},
			expected: false,
		},
		{
			name: "only pending attempts",
			payments: []Payment{
				{Status: PaymentPending},
				{Status: PaymentPending},
			},
			expected: false,
		},
		{
			name: "single paid",
			payments: []Payment{
				{Status: PaymentPaid},
			},
			expected: true,
		},
		{
			name: "paid after failed attempts",
			payments: []Payment{
				{Status: PaymentPending},
				{Status: PaymentPending},
				{Status: PaymentPaid},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsObligationPaid(tt.payments)
			if result != tt.expected {
				t.Errorf("IsObligationPaid() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAttendanceRate(t *testing.T) {
	tests := []struct {
		name     string
		records  []Attendance
		expected float64
	}{
		{
			name:     "no records",
			records:  []Attendance{},
			expected: 0,
		},
		{
			name: "all present",
			records: []Attendance{
				{Present: true},
				{Present: true},
			},
			expected: 1,
		},
		{
			name: "half present",
			records: []Attendance{
				{Present: true},
				{Present: false},
			},
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AttendanceRate(tt.records)
			if result != tt.expected {
				t.Errorf("AttendanceRate() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestIsFamilyHead(t *testing.T) {
	groupID := int64(7)
	headID := int64(3)

	head := Member{PlanType: PlanFamily, FamilyGroupID: &groupID}
	if !head.IsFamilyHead() {
		t.Error("family member without head reference should be head")
	}

	dependent := Member{PlanType: PlanFamily, FamilyGroupID: &groupID, HeadOfFamilyID: &headID}
	if dependent.IsFamilyHead() {
		t.Error("family member with head reference should not be head")
	}

	individual := Member{PlanType: PlanIndividual}
	if individual.IsFamilyHead() {
		t.Error("individual member should not be head")
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "not found",
			err:      NewNotFoundError("member", 42),
			sentinel: ErrNotFound,
		},
		{
			name:     "capacity",
			err:      &CapacityError{PracticeID: 1, Capacity: 10, ActiveCount: 10},
			sentinel: ErrCapacityExceeded,
		},
		{
			name:     "trainer assigned",
			err:      &TrainerAssignedError{PracticeID: 1, Trainers: []string{"Ana"}},
			sentinel: ErrTrainerAssigned,
		},
		{
			name:     "inconsistent state",
			err:      &InconsistentStateError{Detail: "two heads"},
			sentinel: ErrInconsistentState,
		},
		{
			name:     "store failure",
			err:      &StoreError{Op: "enroll", Err: errors.New("disk full")},
			sentinel: ErrTransientStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false, want true", tt.err)
			}
		})
	}
}

func TestStoreErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &StoreError{Op: "enroll", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("StoreError should unwrap to its cause")
	}
}
