package repository

import (
	"database/sql"
	"fmt"
	"time"

	"clubmanager/internal/database"
	"clubmanager/internal/models"
)

// EnrollmentRepository handles database operations for enrollments and
// attendance. Methods taking a database.DBTX participate in the caller's
// transaction; the admission and retirement paths depend on that.
type EnrollmentRepository struct {
	db *database.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *database.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// GetEnrollment retrieves the enrollment row for a (member, practice)
// pair, active or not
func (r *EnrollmentRepository) GetEnrollment(q database.DBTX, memberID, practiceID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, member_id, practice_id, active, enrolled_at, updated_at
		FROM enrollments
		WHERE member_id = ? AND practice_id = ?
	`
	enrollment := &models.Enrollment{}
	err := q.QueryRow(query, memberID, practiceID).Scan(
		&enrollment.ID,
		&enrollment.MemberID,
		&enrollment.PracticeID,
		&enrollment.Active,
		&enrollment.EnrolledAt,
		&enrollment.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return enrollment, nil
}

// GetEnrollmentByID retrieves an enrollment row by ID
func (r *EnrollmentRepository) GetEnrollmentByID(enrollmentID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, member_id, practice_id, active, enrolled_at, updated_at
		FROM enrollments
		WHERE id = ?
	`
	enrollment := &models.Enrollment{}
	err := r.db.QueryRow(query, enrollmentID).Scan(
		&enrollment.ID,
		&enrollment.MemberID,
		&enrollment.PracticeID,
		&enrollment.Active,
		&enrollment.EnrolledAt,
		&enrollment.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return enrollment, nil
}

// CountActive counts active enrollments for a practice
func (r *EnrollmentRepository) CountActive(q database.DBTX, practiceID int64) (int, error) {
	query := "SELECT COUNT(*) FROM enrollments WHERE practice_id = ? AND active = ?"
	var count int
	if err := q.QueryRow(query, practiceID, true).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active enrollments: %w", err)
	}
	return count, nil
}

// Insert creates a new active enrollment row and returns its ID.
// The (member_id, practice_id) unique constraint backs this up: the
// caller maps a violation to an already-enrolled result
func (r *EnrollmentRepository) Insert(q database.DBTX, memberID, practiceID int64) (int64, error) {
	query := "INSERT INTO enrollments (member_id, practice_id, active) VALUES (?, ?, ?)"
	return q.ExecReturningID(query, memberID, practiceID, true)
}

// SetActive flips the active flag of one enrollment row
func (r *EnrollmentRepository) SetActive(q database.DBTX, enrollmentID int64, active bool) error {
	query := "UPDATE enrollments SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := q.Exec(query, active, enrollmentID); err != nil {
		return fmt.Errorf("failed to update enrollment: %w", err)
	}
	return nil
}

// DeactivateAllForPractice marks every enrollment of a practice inactive
// inside q and returns the number of rows touched
func (r *EnrollmentRepository) DeactivateAllForPractice(q database.DBTX, practiceID int64) (int64, error) {
	query := "UPDATE enrollments SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE practice_id = ? AND active = ?"
	result, err := q.Exec(query, false, practiceID, true)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate enrollments: %w", err)
	}
	return result.RowsAffected()
}

// GetActiveForPractice retrieves active enrollments of a practice
func (r *EnrollmentRepository) GetActiveForPractice(practiceID int64) ([]models.Enrollment, error) {
	query := `
		SELECT id, member_id, practice_id, active, enrolled_at, updated_at
		FROM enrollments
		WHERE practice_id = ? AND active = ?
		ORDER BY enrolled_at ASC
	`
	return r.queryEnrollments(query, practiceID, true)
}

// GetActiveForMember retrieves a member's active enrollments
func (r *EnrollmentRepository) GetActiveForMember(memberID int64) ([]models.Enrollment, error) {
	query := `
		SELECT id, member_id, practice_id, active, enrolled_at, updated_at
		FROM enrollments
		WHERE member_id = ? AND active = ?
		ORDER BY enrolled_at ASC
	`
	return r.queryEnrollments(query, memberID, true)
}

func (r *EnrollmentRepository) queryEnrollments(query string, args ...interface{}) ([]models.Enrollment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.MemberID, &e.PracticeID, &e.Active, &e.EnrolledAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}

// RecordAttendance upserts presence for one class date
func (r *EnrollmentRepository) RecordAttendance(enrollmentID int64, classDate time.Time, present bool) error {
	// Delete-then-insert keeps the upsert portable across all three engines
	deleteQuery := "DELETE FROM attendance WHERE enrollment_id = ? AND class_date = ?"
	if _, err := r.db.Exec(deleteQuery, enrollmentID, classDate); err != nil {
		return fmt.Errorf("failed to clear attendance: %w", err)
	}

	insertQuery := "INSERT INTO attendance (enrollment_id, class_date, present) VALUES (?, ?, ?)"
	if _, err := r.db.Exec(insertQuery, enrollmentID, classDate, present); err != nil {
		return fmt.Errorf("failed to record attendance: %w", err)
	}
	return nil
}

// GetAttendance retrieves all attendance records of an enrollment
func (r *EnrollmentRepository) GetAttendance(enrollmentID int64) ([]models.Attendance, error) {
	query := `
		SELECT id, enrollment_id, class_date, present
		FROM attendance
		WHERE enrollment_id = ?
		ORDER BY class_date ASC
	`
	rows, err := r.db.Query(query, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.ID, &a.EnrollmentID, &a.ClassDate, &a.Present); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}
