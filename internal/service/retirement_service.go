package service

import (
	"context"
	"log"
	"sync"

	"clubmanager/internal/database"
	"clubmanager/internal/events"
	"clubmanager/internal/metrics"
	"clubmanager/internal/models"
	"clubmanager/internal/notify"
	"clubmanager/internal/repository"
)

// RetirementResult reports a committed retirement
type RetirementResult struct {
	Status            string  `json:"status"`
	PracticeID        int64   `json:"practice_id"`
	AffectedMemberIDs []int64 `json:"affected_member_ids"`
}

// RetirementService retires practices. The teardown writes run in one
// transaction; member notices go out only after the commit and never
// change its outcome.
type RetirementService struct {
	db             *database.DB
	practiceRepo   *repository.PracticeRepository
	enrollmentRepo *repository.EnrollmentRepository
	notifier       notify.Notifier
	publisher      *events.Publisher
	metrics        *metrics.Metrics
}

// NewRetirementService creates a new retirement service. Notifier,
// publisher and metrics may be nil in tests
func NewRetirementService(
	db *database.DB,
	practiceRepo *repository.PracticeRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	notifier notify.Notifier,
	publisher *events.Publisher,
	m *metrics.Metrics,
) *RetirementService {
	return &RetirementService{
		db:             db,
		practiceRepo:   practiceRepo,
		enrollmentRepo: enrollmentRepo,
		notifier:       notifier,
		publisher:      publisher,
		metrics:        m,
	}
}

// Retire removes a practice from the catalog: every active enrollment is
// deactivated, schedules and the practice row are deleted, all in one
// transaction. A practice with assigned trainers is refused; trainers
// must be unassigned first. Enrollment history rows survive for billing.
func (s *RetirementService) Retire(ctx context.Context, practiceID int64) (*RetirementResult, error) {
	result, err := s.retire(ctx, practiceID)
	if s.metrics != nil {
		if err != nil {
			s.metrics.IncRetirement("rejected")
		} else {
			s.metrics.IncRetirement("committed")
		}
	}
	return result, err
}

func (s *RetirementService) retire(ctx context.Context, practiceID int64) (*RetirementResult, error) {
	practice, err := s.practiceRepo.GetPracticeByID(practiceID)
	if err != nil {
		return nil, &models.StoreError{Op: "retire", Err: err}
	}
	if practice == nil {
		return nil, models.NewNotFoundError("practice", practiceID)
	}

	trainers, err := s.practiceRepo.GetAssignedTrainers(practiceID)
	if err != nil {
		return nil, &models.StoreError{Op: "retire", Err: err}
	}
	if len(trainers) > 0 {
		names := make([]string, len(trainers))
		for i, t := range trainers {
			names[i] = t.Name
		}
		return nil, &models.TrainerAssignedError{PracticeID: practiceID, Trainers: names}
	}

	// Snapshot the recipients before teardown deactivates their rows
	enrollments, err := s.enrollmentRepo.GetActiveForPractice(practiceID)
	if err != nil {
		return nil, &models.StoreError{Op: "retire", Err: err}
	}
	affected := make([]int64, len(enrollments))
	for i, e := range enrollments {
		affected[i] = e.MemberID
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, &models.StoreError{Op: "retire", Err: err}
	}
	defer tx.Rollback()

	if _, err := s.enrollmentRepo.DeactivateAllForPractice(tx, practiceID); err != nil {
		return nil, &models.StoreError{Op: "retire", Err: err}
	}
	if err := s.practiceRepo.DeleteSchedules(tx, practiceID); err != nil {
		return nil, &models.StoreError{Op: "retire", Err: err}
	}
	if err := s.practiceRepo.DeletePractice(tx, practiceID); err != nil {
		return nil, &models.StoreError{Op: "retire", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &models.StoreError{Op: "retire", Err: err}
	}

	s.notifyRetirement(ctx, practice.Name, affected)

	if s.publisher != nil {
		if pubErr := s.publisher.PublishPracticeRetired(practiceID, practice.Name, affected); pubErr != nil {
			log.Printf("Failed to publish retirement event: %v", pubErr)
		}
	}

	return &RetirementResult{
		Status:            "committed",
		PracticeID:        practiceID,
		AffectedMemberIDs: affected,
	}, nil
}

// notifyRetirement fans notices out to the affected members and waits
// for every attempt. Failures are logged per recipient and swallowed;
// the retirement is already committed.
func (s *RetirementService) notifyRetirement(ctx context.Context, practiceName string, memberIDs []int64) {
	if s.notifier == nil || len(memberIDs) == 0 {
		return
	}

	payload := map[string]string{"practice_name": practiceName}

	var wg sync.WaitGroup
	for _, memberID := range memberIDs {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := s.notifier.Notify(ctx, id, notify.KindPracticeRetired, payload); err != nil {
				log.Printf("Failed to notify member %d of retirement of %q: %v", id, practiceName, err)
				if s.metrics != nil {
					s.metrics.IncNotification("failed")
				}
				return
			}
			if s.metrics != nil {
				s.metrics.IncNotification("sent")
			}
		}(memberID)
	}
	wg.Wait()
}
