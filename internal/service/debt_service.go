package service

import (
	"fmt"

	"clubmanager/internal/models"
	"clubmanager/internal/repository"
)

// DebtService is the debt reconciler: it unions a member's three classes
// of obligation and classifies each one by its payment trail. Paid items
// are reported with their true status, never filtered out; display
// filtering is the caller's concern.
type DebtService struct {
	memberRepo      *repository.MemberRepository
	dueRepo         *repository.DueRepository
	enrollmentRepo  *repository.EnrollmentRepository
	practiceRepo    *repository.PracticeRepository
	reservationRepo *repository.ReservationRepository
	paymentRepo     *repository.PaymentRepository
	feeService      *FeeService
}

// NewDebtService creates a new debt service
func NewDebtService(
	memberRepo *repository.MemberRepository,
	dueRepo *repository.DueRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	practiceRepo *repository.PracticeRepository,
	reservationRepo *repository.ReservationRepository,
	paymentRepo *repository.PaymentRepository,
	feeService *FeeService,
) *DebtService {
	return &DebtService{
		memberRepo:      memberRepo,
		dueRepo:         dueRepo,
		enrollmentRepo:  enrollmentRepo,
		practiceRepo:    practiceRepo,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		feeService:      feeService,
	}
}

// ListDebts returns every obligation of a member with its payment
// status. Family members see the dues billed to their group's head.
func (s *DebtService) ListDebts(memberID int64) ([]models.Obligation, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		return nil, &models.StoreError{Op: "list debts", Err: err}
	}
	if member == nil {
		return nil, models.NewNotFoundError("member", memberID)
	}

	// Dues live with the responsible member: the family head for family
	// plans, the member themselves otherwise
	responsibleID := member.ID
	if member.PlanType == models.PlanFamily {
		head, _, err := s.feeService.ResolveFamilyHead(member)
		if err != nil {
			return nil, err
		}
		responsibleID = head.ID
	}

	obligations := []models.Obligation{}

	dues, err := s.dueRepo.GetDuesForMember(responsibleID)
	if err != nil {
		return nil, &models.StoreError{Op: "list debts", Err: err}
	}
	for _, due := range dues {
		payments, err := s.paymentRepo.GetPaymentsForDue(due.ID)
		if err != nil {
			return nil, &models.StoreError{Op: "list debts", Err: err}
		}
		obligations = append(obligations, models.Obligation{
			ID:      due.ID,
			Kind:    models.ObligationDue,
			Concept: fmt.Sprintf("Monthly due %d/%d", due.Month, due.Year),
			Amount:  due.Amount,
			DueDate: due.DueDate,
			Status:  paymentStatus(payments),
		})
	}

	enrollments, err := s.enrollmentRepo.GetActiveForMember(member.ID)
	if err != nil {
		return nil, &models.StoreError{Op: "list debts", Err: err}
	}
	for _, enrollment := range enrollments {
		practice, err := s.practiceRepo.GetPracticeByID(enrollment.PracticeID)
		if err != nil {
			return nil, &models.StoreError{Op: "list debts", Err: err}
		}
		concept := "Enrollment fee"
		var amount int64
		if practice != nil {
			concept = "Enrollment fee: " + practice.Name
			amount = practice.Price
		}
		payments, err := s.paymentRepo.GetPaymentsForEnrollment(enrollment.ID)
		if err != nil {
			return nil, &models.StoreError{Op: "list debts", Err: err}
		}
		obligations = append(obligations, models.Obligation{
			ID:      enrollment.ID,
			Kind:    models.ObligationEnrollment,
			Concept: concept,
			Amount:  amount,
			DueDate: enrollment.EnrolledAt,
			Status:  paymentStatus(payments),
		})
	}

	reservations, err := s.reservationRepo.GetReservationsForMember(member.ID)
	if err != nil {
		return nil, &models.StoreError{Op: "list debts", Err: err}
	}
	for _, reservation := range reservations {
		court, err := s.reservationRepo.GetCourtByID(reservation.CourtID)
		if err != nil {
			return nil, &models.StoreError{Op: "list debts", Err: err}
		}
		concept := "Court reservation"
		var amount int64
		if court != nil {
			concept = fmt.Sprintf("Court reservation: %s on %s", court.Name, reservation.Date.Format("2006-01-02"))
			amount = court.Price
		}
		payments, err := s.paymentRepo.GetPaymentsForReservation(reservation.ID)
		if err != nil {
			return nil, &models.StoreError{Op: "list debts", Err: err}
		}
		obligations = append(obligations, models.Obligation{
			ID:      reservation.ID,
			Kind:    models.ObligationReservation,
			Concept: concept,
			Amount:  amount,
			DueDate: reservation.Date,
			Status:  paymentStatus(payments),
		})
	}

	return obligations, nil
}

// GetQuota returns the member's quota breakdown
func (s *DebtService) GetQuota(memberID int64) (*QuotaBreakdown, error) {
	return s.feeService.GetQuota(memberID)
}

// paymentStatus collapses a payment trail to the obligation status
func paymentStatus(payments []models.Payment) models.PaymentStatus {
	if models.IsObligationPaid(payments) {
		return models.PaymentPaid
	}
	return models.PaymentPending
}
