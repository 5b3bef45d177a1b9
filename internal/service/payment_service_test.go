package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubmanager/internal/gateway"
	"clubmanager/internal/models"
)

var testCard = gateway.Card{
	Number:   "4242424242424242",
	Holder:   "Test Holder",
	ExpMonth: 12,
	ExpYear:  2030,
	CVV:      "123",
}

var declinedCard = gateway.Card{
	Number:   "4242424242420000",
	Holder:   "Test Holder",
	ExpMonth: 12,
	ExpYear:  2030,
	CVV:      "123",
}

func newPaymentService(r *repos) *PaymentService {
	return NewPaymentService(r.dues, r.enrollments, r.practices, r.reservations, r.payments, gateway.NewStubGateway(""))
}

func TestPayDueApproved(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)
	member := createIndividual(t, r, "P1", "Payer")

	due, err := r.dues.CreateDue(&models.Due{
		MemberID: member.ID, Month: 6, Year: 2026, Amount: 1000,
		DueDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateDue() error: %v", err)
	}

	svc := newPaymentService(r)
	payment, err := svc.PayDue(context.Background(), due.ID, testCard)
	if err != nil {
		t.Fatalf("PayDue() error: %v", err)
	}

	if payment.Status != models.PaymentPaid {
		t.Errorf("status = %s, want PAID", payment.Status)
	}
	if payment.Amount != 1000 {
		t.Errorf("amount = %d, want 1000", payment.Amount)
	}
	if payment.Reference == "" {
		t.Error("approved payment should carry a transaction reference")
	}

	payments, err := r.payments.GetPaymentsForDue(due.ID)
	if err != nil {
		t.Fatalf("GetPaymentsForDue() error: %v", err)
	}
	if !models.IsObligationPaid(payments) {
		t.Error("due should be paid after an approved charge")
	}
}

func TestPayDueDeclinedStaysPending(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)
	member := createIndividual(t, r, "P2", "Declined")

	due, err := r.dues.CreateDue(&models.Due{
		MemberID: member.ID, Month: 7, Year: 2026, Amount: 1000,
		DueDate: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateDue() error: %v", err)
	}

	svc := newPaymentService(r)
	payment, err := svc.PayDue(context.Background(), due.ID, declinedCard)
	if err != nil {
		t.Fatalf("PayDue() error: %v", err)
	}
	if payment.Status != models.PaymentPending {
		t.Errorf("status = %s, want PENDING", payment.Status)
	}

	payments, err := r.payments.GetPaymentsForDue(due.ID)
	if err != nil {
		t.Fatalf("GetPaymentsForDue() error: %v", err)
	}
	if models.IsObligationPaid(payments) {
		t.Error("declined charge must not mark the due as paid")
	}
	if len(payments) != 1 {
		t.Errorf("payments = %d, want the declined attempt on record", len(payments))
	}
}

func TestPayEnrollmentUsesPracticePrice(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, r := setupTestDB(t)
	member := createIndividual(t, r, "P3", "Enrollee")
	practice := createPractice(t, r, "Climbing", 10, 350)

	enrollSvc := NewEnrollmentService(db, r.members, r.practices, r.enrollments, nil, nil)
	result, err := enrollSvc.Enroll(member.ID, practice.ID)
	if err != nil {
		t.Fatalf("Enroll() error: %v", err)
	}

	svc := newPaymentService(r)
	payment, err := svc.PayEnrollment(context.Background(), result.EnrollmentID, testCard)
	if err != nil {
		t.Fatalf("PayEnrollment() error: %v", err)
	}
	if payment.Amount != 350 {
		t.Errorf("amount = %d, want the practice price 350", payment.Amount)
	}
	if payment.Status != models.PaymentPaid {
		t.Errorf("status = %s, want PAID", payment.Status)
	}
}

func TestPayReservationUsesCourtPrice(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)
	member := createIndividual(t, r, "P4", "Reserver")

	court, err := r.reservations.CreateCourt(&models.Court{Name: "Court 2", Price: 55})
	if err != nil {
		t.Fatalf("CreateCourt() error: %v", err)
	}
	reservation, err := r.reservations.CreateReservation(&models.Reservation{
		CourtID: court.ID, MemberID: &member.ID,
		Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), StartTime: "09:00",
	})
	if err != nil {
		t.Fatalf("CreateReservation() error: %v", err)
	}

	svc := newPaymentService(r)
	payment, err := svc.PayReservation(context.Background(), reservation.ID, testCard)
	if err != nil {
		t.Fatalf("PayReservation() error: %v", err)
	}
	if payment.Amount != 55 {
		t.Errorf("amount = %d, want the court price 55", payment.Amount)
	}
}

func TestPayUnknownObligation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)
	svc := newPaymentService(r)

	if _, err := svc.PayDue(context.Background(), 9999, testCard); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown due, got %v", err)
	}
	if _, err := svc.PayEnrollment(context.Background(), 9999, testCard); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown enrollment, got %v", err)
	}
	if _, err := svc.PayReservation(context.Background(), 9999, testCard); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown reservation, got %v", err)
	}
}
