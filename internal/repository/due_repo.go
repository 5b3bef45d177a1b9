package repository

import (
	"database/sql"
	"fmt"
	"time"

	"clubmanager/internal/database"
	"clubmanager/internal/models"
)

// DueRepository handles database operations for monthly dues
type DueRepository struct {
	db *database.DB
}

// NewDueRepository creates a new due repository
func NewDueRepository(db *database.DB) *DueRepository {
	return &DueRepository{db: db}
}

// CreateDue inserts a new due for a member and billing period
func (r *DueRepository) CreateDue(d *models.Due) (*models.Due, error) {
	query := "INSERT INTO dues (member_id, month, year, amount, due_date) VALUES (?, ?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, d.MemberID, d.Month, d.Year, d.Amount, d.DueDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create due: %w", err)
	}

	d.ID = id
	d.CreatedAt = time.Now()
	return d, nil
}

// GetDueByID retrieves a due by ID
func (r *DueRepository) GetDueByID(dueID int64) (*models.Due, error) {
	query := "SELECT id, member_id, month, year, amount, due_date, created_at FROM dues WHERE id = ?"
	due := &models.Due{}
	err := r.db.QueryRow(query, dueID).Scan(
		&due.ID, &due.MemberID, &due.Month, &due.Year, &due.Amount, &due.DueDate, &due.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get due: %w", err)
	}

	return due, nil
}

// GetDuesForMember retrieves all dues billed to a member
func (r *DueRepository) GetDuesForMember(memberID int64) ([]models.Due, error) {
	query := `
		SELECT id, member_id, month, year, amount, due_date, created_at
		FROM dues
		WHERE member_id = ?
		ORDER BY year ASC, month ASC
	`
	rows, err := r.db.Query(query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dues: %w", err)
	}
	defer rows.Close()

	var dues []models.Due
	for rows.Next() {
		var due models.Due
		if err := rows.Scan(&due.ID, &due.MemberID, &due.Month, &due.Year, &due.Amount, &due.DueDate, &due.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan due: %w", err)
		}
		dues = append(dues, due)
	}

	return dues, rows.Err()
}

// HasDueForPeriod checks whether a member is already billed for a period
func (r *DueRepository) HasDueForPeriod(memberID int64, month, year int) (bool, error) {
	query := "SELECT COUNT(*) FROM dues WHERE member_id = ? AND month = ? AND year = ?"
	var count int
	if err := r.db.QueryRow(query, memberID, month, year).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check due period: %w", err)
	}
	return count > 0, nil
}
