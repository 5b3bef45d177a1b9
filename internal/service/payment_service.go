package service

import (
	"context"

	"clubmanager/internal/gateway"
	"clubmanager/internal/models"
	"clubmanager/internal/repository"
)

// PaymentService charges obligations through the card gateway and
// appends the attempt to the payment trail. A declined charge is still
// recorded, as a PENDING row carrying the decline reason.
type PaymentService struct {
	dueRepo         *repository.DueRepository
	enrollmentRepo  *repository.EnrollmentRepository
	practiceRepo    *repository.PracticeRepository
	reservationRepo *repository.ReservationRepository
	paymentRepo     *repository.PaymentRepository
	gateway         gateway.Gateway
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	dueRepo *repository.DueRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	practiceRepo *repository.PracticeRepository,
	reservationRepo *repository.ReservationRepository,
	paymentRepo *repository.PaymentRepository,
	gw gateway.Gateway,
) *PaymentService {
	return &PaymentService{
		dueRepo:         dueRepo,
		enrollmentRepo:  enrollmentRepo,
		practiceRepo:    practiceRepo,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		gateway:         gw,
	}
}

// PayDue charges a monthly due
func (s *PaymentService) PayDue(ctx context.Context, dueID int64, card gateway.Card) (*models.Payment, error) {
	due, err := s.dueRepo.GetDueByID(dueID)
	if err != nil {
		return nil, &models.StoreError{Op: "pay due", Err: err}
	}
	if due == nil {
		return nil, models.NewNotFoundError("due", dueID)
	}

	return s.charge(ctx, card, due.Amount, &models.Payment{DueID: &due.ID})
}

// PayEnrollment charges the fee of an enrollment, priced by its practice
func (s *PaymentService) PayEnrollment(ctx context.Context, enrollmentID int64, card gateway.Card) (*models.Payment, error) {
	enrollment, err := s.enrollmentRepo.GetEnrollmentByID(enrollmentID)
	if err != nil {
		return nil, &models.StoreError{Op: "pay enrollment", Err: err}
	}
	if enrollment == nil {
		return nil, models.NewNotFoundError("enrollment", enrollmentID)
	}

	practice, err := s.practiceRepo.GetPracticeByID(enrollment.PracticeID)
	if err != nil {
		return nil, &models.StoreError{Op: "pay enrollment", Err: err}
	}
	if practice == nil {
		// The practice was retired; the fee row keeps its history but
		// there is no price left to charge
		return nil, &models.InconsistentStateError{
			Detail: "enrollment refers to a retired practice with no price",
		}
	}

	return s.charge(ctx, card, practice.Price, &models.Payment{EnrollmentID: &enrollment.ID})
}

// PayReservation charges the fee of a court reservation, priced by its court
func (s *PaymentService) PayReservation(ctx context.Context, reservationID int64, card gateway.Card) (*models.Payment, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		return nil, &models.StoreError{Op: "pay reservation", Err: err}
	}
	if reservation == nil {
		return nil, models.NewNotFoundError("reservation", reservationID)
	}

	court, err := s.reservationRepo.GetCourtByID(reservation.CourtID)
	if err != nil {
		return nil, &models.StoreError{Op: "pay reservation", Err: err}
	}
	if court == nil {
		return nil, &models.InconsistentStateError{
			Detail: "reservation refers to a missing court",
		}
	}

	return s.charge(ctx, card, court.Price, &models.Payment{ReservationID: &reservation.ID})
}

// charge runs the card through the gateway and appends the attempt
func (s *PaymentService) charge(ctx context.Context, card gateway.Card, amount int64, payment *models.Payment) (*models.Payment, error) {
	result, err := s.gateway.Charge(ctx, card, amount)
	if err != nil {
		return nil, &models.StoreError{Op: "charge", Err: err}
	}

	payment.Amount = amount
	if result.Approved {
		payment.Status = models.PaymentPaid
		payment.Reference = result.TransactionID
	} else {
		payment.Status = models.PaymentPending
		payment.Reference = result.Reason
	}

	created, err := s.paymentRepo.CreatePayment(payment)
	if err != nil {
		return nil, &models.StoreError{Op: "record payment", Err: err}
	}
	return created, nil
}
