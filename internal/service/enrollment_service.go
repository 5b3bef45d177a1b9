package service

import (
	"log"

	"clubmanager/internal/database"
	"clubmanager/internal/events"
	"clubmanager/internal/metrics"
	"clubmanager/internal/models"
	"clubmanager/internal/repository"
)

// EnrollStatus is the outcome of an admission or withdrawal call
type EnrollStatus string

const (
	StatusEnrolled        EnrollStatus = "enrolled"
	StatusReactivated     EnrollStatus = "reactivated"
	StatusAlreadyEnrolled EnrollStatus = "already_enrolled"
	StatusWithdrawn       EnrollStatus = "withdrawn"
	StatusAlreadyInactive EnrollStatus = "already_inactive"
)

// EnrollResult reports the outcome of an admission
type EnrollResult struct {
	Status       EnrollStatus `json:"status"`
	EnrollmentID int64        `json:"enrollment_id"`
}

// WithdrawResult reports the outcome of a withdrawal
type WithdrawResult struct {
	Status EnrollStatus `json:"status"`
}

// EnrollmentService is the capacity admission controller. The capacity
// check and the enrollment write run in one transaction holding the
// practice row lock, so two concurrent admissions cannot both pass the
// check when one slot remains.
type EnrollmentService struct {
	db             *database.DB
	memberRepo     *repository.MemberRepository
	practiceRepo   *repository.PracticeRepository
	enrollmentRepo *repository.EnrollmentRepository
	publisher      *events.Publisher
	metrics        *metrics.Metrics
}

// NewEnrollmentService creates a new enrollment service. Publisher and
// metrics may be nil in tests
func NewEnrollmentService(
	db *database.DB,
	memberRepo *repository.MemberRepository,
	practiceRepo *repository.PracticeRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	publisher *events.Publisher,
	m *metrics.Metrics,
) *EnrollmentService {
	return &EnrollmentService{
		db:             db,
		memberRepo:     memberRepo,
		practiceRepo:   practiceRepo,
		enrollmentRepo: enrollmentRepo,
		publisher:      publisher,
		metrics:        m,
	}
}

// Enroll admits a member into a practice, reactivating a prior
// enrollment row when one exists. Returns CapacityError when the
// practice is full; callers must not retry that automatically.
func (s *EnrollmentService) Enroll(memberID, practiceID int64) (*EnrollResult, error) {
	practice, err := s.practiceRepo.GetPracticeByID(practiceID)
	if err != nil {
		return nil, &models.StoreError{Op: "enroll", Err: err}
	}
	if practice == nil {
		return nil, models.NewNotFoundError("practice", practiceID)
	}

	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		return nil, &models.StoreError{Op: "enroll", Err: err}
	}
	if member == nil {
		return nil, models.NewNotFoundError("member", memberID)
	}

	result, err := s.admit(memberID, practiceID)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncAdmission("rejected")
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncAdmission(string(result.Status))
	}
	if s.publisher != nil && result.Status != StatusAlreadyEnrolled {
		if pubErr := s.publisher.PublishMemberEnrolled(memberID, practiceID, string(result.Status)); pubErr != nil {
			log.Printf("Failed to publish enrollment event: %v", pubErr)
		}
	}

	return result, nil
}

// admit runs the locked count-then-write sequence in one transaction
func (s *EnrollmentService) admit(memberID, practiceID int64) (*EnrollResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, &models.StoreError{Op: "enroll", Err: err}
	}
	defer tx.Rollback()

	// Serialization point: the practice row lock guards the count below
	practice, err := s.practiceRepo.GetPracticeForUpdate(tx, practiceID)
	if err != nil {
		return nil, &models.StoreError{Op: "enroll", Err: err}
	}
	if practice == nil {
		// Retired between the existence check and the lock
		return nil, models.NewNotFoundError("practice", practiceID)
	}

	enrollment, err := s.enrollmentRepo.GetEnrollment(tx, memberID, practiceID)
	if err != nil {
		return nil, &models.StoreError{Op: "enroll", Err: err}
	}
	if enrollment != nil && enrollment.Active {
		return &EnrollResult{Status: StatusAlreadyEnrolled, EnrollmentID: enrollment.ID}, nil
	}

	count, err := s.enrollmentRepo.CountActive(tx, practiceID)
	if err != nil {
		return nil, &models.StoreError{Op: "enroll", Err: err}
	}
	if count >= practice.Capacity {
		return nil, &models.CapacityError{
			PracticeID:  practiceID,
			Capacity:    practice.Capacity,
			ActiveCount: count,
		}
	}

	var enrollmentID int64
	var status EnrollStatus
	if enrollment != nil {
		if err := s.enrollmentRepo.SetActive(tx, enrollment.ID, true); err != nil {
			return nil, &models.StoreError{Op: "enroll", Err: err}
		}
		enrollmentID = enrollment.ID
		status = StatusReactivated
	} else {
		enrollmentID, err = s.enrollmentRepo.Insert(tx, memberID, practiceID)
		if err != nil {
			if tx.GetDialect().IsUniqueViolation(err) {
				// Lost a race on the unique (member, practice) pair: the
				// expected violation maps to the idempotent result
				return &EnrollResult{Status: StatusAlreadyEnrolled}, nil
			}
			return nil, &models.StoreError{Op: "enroll", Err: err}
		}
		status = StatusEnrolled
	}

	if err := tx.Commit(); err != nil {
		return nil, &models.StoreError{Op: "enroll", Err: err}
	}

	return &EnrollResult{Status: status, EnrollmentID: enrollmentID}, nil
}

// Withdraw deactivates a member's enrollment. Withdrawing an inactive or
// absent enrollment is a no-op, not an error.
func (s *EnrollmentService) Withdraw(memberID, practiceID int64) (*WithdrawResult, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		return nil, &models.StoreError{Op: "withdraw", Err: err}
	}
	if member == nil {
		return nil, models.NewNotFoundError("member", memberID)
	}

	enrollment, err := s.enrollmentRepo.GetEnrollment(s.db, memberID, practiceID)
	if err != nil {
		return nil, &models.StoreError{Op: "withdraw", Err: err}
	}
	if enrollment == nil || !enrollment.Active {
		return &WithdrawResult{Status: StatusAlreadyInactive}, nil
	}

	if err := s.enrollmentRepo.SetActive(s.db, enrollment.ID, false); err != nil {
		return nil, &models.StoreError{Op: "withdraw", Err: err}
	}

	return &WithdrawResult{Status: StatusWithdrawn}, nil
}
