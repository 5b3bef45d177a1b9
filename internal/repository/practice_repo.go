package repository

import (
	"database/sql"
	"fmt"
	"time"

	"clubmanager/internal/database"
	"clubmanager/internal/models"
)

// PracticeRepository handles database operations for practices, their
// schedules and trainer assignments
type PracticeRepository struct {
	db *database.DB
}

// NewPracticeRepository creates a new practice repository
func NewPracticeRepository(db *database.DB) *PracticeRepository {
	return &PracticeRepository{db: db}
}

// CreatePractice inserts a new practice
func (r *PracticeRepository) CreatePractice(p *models.Practice) (*models.Practice, error) {
	query := "INSERT INTO practices (name, capacity, price) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, p.Name, p.Capacity, p.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to create practice: %w", err)
	}

	p.ID = id
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	return p, nil
}

// GetPracticeByID retrieves a practice by ID
func (r *PracticeRepository) GetPracticeByID(practiceID int64) (*models.Practice, error) {
	query := "SELECT id, name, capacity, price, created_at, updated_at FROM practices WHERE id = ?"
	return scanPractice(r.db.QueryRow(query, practiceID))
}

// GetPracticeForUpdate loads a practice inside q, taking a row lock where
// the dialect supports one. This is the serialization point for the
// capacity check: two concurrent admissions cannot both read the count
// while one of them holds this lock
func (r *PracticeRepository) GetPracticeForUpdate(q database.DBTX, practiceID int64) (*models.Practice, error) {
	query := "SELECT id, name, capacity, price, created_at, updated_at FROM practices WHERE id = ?" +
		q.GetDialect().LockingClause()
	return scanPractice(q.QueryRow(query, practiceID))
}

func scanPractice(row *sql.Row) (*models.Practice, error) {
	practice := &models.Practice{}
	err := row.Scan(
		&practice.ID,
		&practice.Name,
		&practice.Capacity,
		&practice.Price,
		&practice.CreatedAt,
		&practice.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get practice: %w", err)
	}

	return practice, nil
}

// AddSchedule adds a weekly time slot to a practice
func (r *PracticeRepository) AddSchedule(s *models.Schedule) (*models.Schedule, error) {
	query := "INSERT INTO schedules (practice_id, weekday, start_time, end_time) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, s.PracticeID, s.Weekday, s.StartTime, s.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to add schedule: %w", err)
	}

	s.ID = id
	return s, nil
}

// GetSchedules retrieves a practice's weekly time slots in order
func (r *PracticeRepository) GetSchedules(practiceID int64) ([]models.Schedule, error) {
	query := `
		SELECT id, practice_id, weekday, start_time, end_time
		FROM schedules
		WHERE practice_id = ?
		ORDER BY weekday ASC, start_time ASC
	`
	rows, err := r.db.Query(query, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []models.Schedule
	for rows.Next() {
		var s models.Schedule
		if err := rows.Scan(&s.ID, &s.PracticeID, &s.Weekday, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	return schedules, rows.Err()
}

// DeleteSchedules removes all schedule rows of a practice inside q
func (r *PracticeRepository) DeleteSchedules(q database.DBTX, practiceID int64) error {
	query := "DELETE FROM schedules WHERE practice_id = ?"
	if _, err := q.Exec(query, practiceID); err != nil {
		return fmt.Errorf("failed to delete schedules: %w", err)
	}
	return nil
}

// DeletePractice removes the practice row inside q
func (r *PracticeRepository) DeletePractice(q database.DBTX, practiceID int64) error {
	query := "DELETE FROM practices WHERE id = ?"
	if _, err := q.Exec(query, practiceID); err != nil {
		return fmt.Errorf("failed to delete practice: %w", err)
	}
	return nil
}

// CreateTrainer inserts a new trainer
func (r *PracticeRepository) CreateTrainer(t *models.Trainer) (*models.Trainer, error) {
	query := "INSERT INTO trainers (name, email) VALUES (?, ?)"
	id, err := r.db.ExecReturningID(query, t.Name, t.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create trainer: %w", err)
	}

	t.ID = id
	return t, nil
}

// AssignTrainer assigns a trainer to a practice
func (r *PracticeRepository) AssignTrainer(practiceID, trainerID int64) error {
	query := "INSERT INTO practice_trainers (practice_id, trainer_id) VALUES (?, ?)"
	if _, err := r.db.Exec(query, practiceID, trainerID); err != nil {
		return fmt.Errorf("failed to assign trainer: %w", err)
	}
	return nil
}

// UnassignTrainer removes a trainer assignment from a practice
func (r *PracticeRepository) UnassignTrainer(practiceID, trainerID int64) error {
	query := "DELETE FROM practice_trainers WHERE practice_id = ? AND trainer_id = ?"
	if _, err := r.db.Exec(query, practiceID, trainerID); err != nil {
		return fmt.Errorf("failed to unassign trainer: %w", err)
	}
	return nil
}

// GetAssignedTrainers retrieves trainers currently assigned to a practice
func (r *PracticeRepository) GetAssignedTrainers(practiceID int64) ([]models.Trainer, error) {
	query := `
		SELECT t.id, t.name, t.email
		FROM trainers t
		INNER JOIN practice_trainers pt ON t.id = pt.trainer_id
		WHERE pt.practice_id = ?
		ORDER BY t.name ASC
	`
	rows, err := r.db.Query(query, practiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned trainers: %w", err)
	}
	defer rows.Close()

	var trainers []models.Trainer
	for rows.Next() {
		var t models.Trainer
		if err := rows.Scan(&t.ID, &t.Name, &t.Email); err != nil {
			return nil, fmt.Errorf("failed to scan trainer: %w", err)
		}
		trainers = append(trainers, t)
	}

	return trainers, rows.Err()
}
