package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"clubmanager/internal/database"
	"clubmanager/internal/models"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "repo_test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestReservationConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db := setupTestDB(t)
	reservationRepo := NewReservationRepository(db)

	court, err := reservationRepo.CreateCourt(&models.Court{Name: "Court 1", Price: 40})
	if err != nil {
		t.Fatalf("CreateCourt() error: %v", err)
	}

	date := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	if _, err := reservationRepo.CreateReservation(&models.Reservation{
		CourtID: court.ID, Date: date, StartTime: "10:00",
	}); err != nil {
		t.Fatalf("first CreateReservation() error: %v", err)
	}

	// Same court, date and slot is a conflict
	_, err = reservationRepo.CreateReservation(&models.Reservation{
		CourtID: court.ID, Date: date, StartTime: "10:00",
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Errorf("expected ErrSlotTaken, got %v", err)
	}

	// A different slot on the same day is fine
	if _, err := reservationRepo.CreateReservation(&models.Reservation{
		CourtID: court.ID, Date: date, StartTime: "11:00",
	}); err != nil {
		t.Errorf("different slot should not conflict: %v", err)
	}
}

func TestEnrollmentUniqueViolationDetection(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db := setupTestDB(t)
	memberRepo := NewMemberRepository(db)
	practiceRepo := NewPracticeRepository(db)
	enrollmentRepo := NewEnrollmentRepository(db)

	member, err := memberRepo.CreateMember(&models.Member{
		NationalID: "U1", Name: "Unique", PlanType: models.PlanIndividual,
	})
	if err != nil {
		t.Fatalf("CreateMember() error: %v", err)
	}
	practice, err := practiceRepo.CreatePractice(&models.Practice{Name: "Tennis", Capacity: 5})
	if err != nil {
		t.Fatalf("CreatePractice() error: %v", err)
	}

	if _, err := enrollmentRepo.Insert(db, member.ID, practice.ID); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	_, err = enrollmentRepo.Insert(db, member.ID, practice.ID)
	if err == nil {
		t.Fatal("duplicate insert should fail")
	}
	if !db.Dialect.IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation() = false for %v", err)
	}
}

func TestTransactionRollbackLeavesStateIntact(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db := setupTestDB(t)
	memberRepo := NewMemberRepository(db)
	practiceRepo := NewPracticeRepository(db)
	enrollmentRepo := NewEnrollmentRepository(db)

	member, err := memberRepo.CreateMember(&models.Member{
		NationalID: "T1", Name: "Tx", PlanType: models.PlanIndividual,
	})
	if err != nil {
		t.Fatalf("CreateMember() error: %v", err)
	}
	practice, err := practiceRepo.CreatePractice(&models.Practice{Name: "Judo", Capacity: 5})
	if err != nil {
		t.Fatalf("CreatePractice() error: %v", err)
	}
	if _, err := enrollmentRepo.Insert(db, member.ID, practice.ID); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	// Run the retirement teardown writes, then roll back instead of committing
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	if _, err := enrollmentRepo.DeactivateAllForPractice(tx, practice.ID); err != nil {
		t.Fatalf("DeactivateAllForPractice() error: %v", err)
	}
	if err := practiceRepo.DeletePractice(tx, practice.ID); err != nil {
		t.Fatalf("DeletePractice() error: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() error: %v", err)
	}

	still, err := practiceRepo.GetPracticeByID(practice.ID)
	if err != nil {
		t.Fatalf("GetPracticeByID() error: %v", err)
	}
	if still == nil {
		t.Error("practice should survive a rolled-back teardown")
	}
	count, err := enrollmentRepo.CountActive(db, practice.ID)
	if err != nil {
		t.Fatalf("CountActive() error: %v", err)
	}
	if count != 1 {
		t.Errorf("active enrollments = %d, want 1 after rollback", count)
	}
}

func TestRecordAttendanceUpserts(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db := setupTestDB(t)
	memberRepo := NewMemberRepository(db)
	practiceRepo := NewPracticeRepository(db)
	enrollmentRepo := NewEnrollmentRepository(db)

	member, err := memberRepo.CreateMember(&models.Member{
		NationalID: "A1", Name: "Attends", PlanType: models.PlanIndividual,
	})
	if err != nil {
		t.Fatalf("CreateMember() error: %v", err)
	}
	practice, err := practiceRepo.CreatePractice(&models.Practice{Name: "Yoga", Capacity: 5})
	if err != nil {
		t.Fatalf("CreatePractice() error: %v", err)
	}
	enrollmentID, err := enrollmentRepo.Insert(db, member.ID, practice.ID)
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	classDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if err := enrollmentRepo.RecordAttendance(enrollmentID, classDate, false); err != nil {
		t.Fatalf("RecordAttendance() error: %v", err)
	}
	// Correcting the same class date replaces the record
	if err := enrollmentRepo.RecordAttendance(enrollmentID, classDate, true); err != nil {
		t.Fatalf("RecordAttendance() correction error: %v", err)
	}

	records, err := enrollmentRepo.GetAttendance(enrollmentID)
	if err != nil {
		t.Fatalf("GetAttendance() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if !records[0].Present {
		t.Error("corrected record should be present")
	}
}
