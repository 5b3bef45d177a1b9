package service

import (
	"path/filepath"
	"testing"

	"clubmanager/internal/database"
	"clubmanager/internal/models"
	"clubmanager/internal/repository"
)

// repos bundles the repositories the service tests share
type repos struct {
	members      *repository.MemberRepository
	practices    *repository.PracticeRepository
	enrollments  *repository.EnrollmentRepository
	reservations *repository.ReservationRepository
	dues         *repository.DueRepository
	payments     *repository.PaymentRepository
}

// setupTestDB opens a throwaway SQLite database with the full schema
func setupTestDB(t *testing.T) (*database.DB, *repos) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "club_test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db, &repos{
		members:      repository.NewMemberRepository(db),
		practices:    repository.NewPracticeRepository(db),
		enrollments:  repository.NewEnrollmentRepository(db),
		reservations: repository.NewReservationRepository(db),
		dues:         repository.NewDueRepository(db),
		payments:     repository.NewPaymentRepository(db),
	}
}

// createIndividual inserts an INDIVIDUAL member
func createIndividual(t *testing.T, r *repos, nationalID, name string) *models.Member {
	t.Helper()
	member, err := r.members.CreateMember(&models.Member{
		NationalID: nationalID,
		Name:       name,
		Email:      name + "@example.com",
		PlanType:   models.PlanIndividual,
	})
	if err != nil {
		t.Fatalf("Failed to create member %s: %v", name, err)
	}
	return member
}

// createFamily inserts a family group of the given size and returns the
// head first
func createFamily(t *testing.T, r *repos, groupID int64, prefix string, size int) []*models.Member {
	t.Helper()

	head, err := r.members.CreateMember(&models.Member{
		NationalID:    prefix + "-head",
		Name:          prefix + " head",
		Email:         prefix + "-head@example.com",
		PlanType:      models.PlanFamily,
		FamilyGroupID: &groupID,
	})
	if err != nil {
		t.Fatalf("Failed to create family head: %v", err)
	}

	members := []*models.Member{head}
	for i := 1; i < size; i++ {
		suffix := string(rune('a' + i))
		member, err := r.members.CreateMember(&models.Member{
			NationalID:     prefix + "-" + suffix,
			Name:           prefix + " " + suffix,
			Email:          prefix + "-" + suffix + "@example.com",
			PlanType:       models.PlanFamily,
			FamilyGroupID:  &groupID,
			HeadOfFamilyID: &head.ID,
		})
		if err != nil {
			t.Fatalf("Failed to create family member: %v", err)
		}
		members = append(members, member)
	}
	return members
}

// createPractice inserts a practice
func createPractice(t *testing.T, r *repos, name string, capacity int, price int64) *models.Practice {
	t.Helper()
	practice, err := r.practices.CreatePractice(&models.Practice{
		Name:     name,
		Capacity: capacity,
		Price:    price,
	})
	if err != nil {
		t.Fatalf("Failed to create practice %s: %v", name, err)
	}
	return practice
}
