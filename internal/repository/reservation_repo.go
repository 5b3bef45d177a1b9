package repository

import (
	"database/sql"
	"fmt"
	"time"

	"clubmanager/internal/database"
	"clubmanager/internal/models"
)

// ErrSlotTaken is returned when a court slot is already reserved
var ErrSlotTaken = fmt.Errorf("court slot already reserved")

// ReservationRepository handles database operations for courts and reservations
type ReservationRepository struct {
	db *database.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *database.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateCourt inserts a new court
func (r *ReservationRepository) CreateCourt(c *models.Court) (*models.Court, error) {
	query := "INSERT INTO courts (name, price) VALUES (?, ?)"
	id, err := r.db.ExecReturningID(query, c.Name, c.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to create court: %w", err)
	}

	c.ID = id
	return c, nil
}

// GetCourtByID retrieves a court by ID
func (r *ReservationRepository) GetCourtByID(courtID int64) (*models.Court, error) {
	query := "SELECT id, name, price FROM courts WHERE id = ?"
	court := &models.Court{}
	err := r.db.QueryRow(query, courtID).Scan(&court.ID, &court.Name, &court.Price)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get court: %w", err)
	}

	return court, nil
}

// CreateReservation books a court slot. The (court, date, start) unique
// constraint decides conflicts; a violation surfaces as ErrSlotTaken
func (r *ReservationRepository) CreateReservation(res *models.Reservation) (*models.Reservation, error) {
	query := "INSERT INTO reservations (court_id, member_id, date, start_time) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, res.CourtID, nullableID(res.MemberID), res.Date, res.StartTime)
	if err != nil {
		if r.db.Dialect.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	res.ID = id
	res.CreatedAt = time.Now()
	return res, nil
}

// GetReservationByID retrieves a reservation by ID
func (r *ReservationRepository) GetReservationByID(reservationID int64) (*models.Reservation, error) {
	query := "SELECT id, court_id, member_id, date, start_time, created_at FROM reservations WHERE id = ?"
	res := &models.Reservation{}
	var memberRef sql.NullInt64
	err := r.db.QueryRow(query, reservationID).Scan(
		&res.ID, &res.CourtID, &memberRef, &res.Date, &res.StartTime, &res.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	res.MemberID = nullInt64Ptr(memberRef)
	return res, nil
}

// GetReservationsForMember retrieves all reservations owned by a member
func (r *ReservationRepository) GetReservationsForMember(memberID int64) ([]models.Reservation, error) {
	query := `
		SELECT id, court_id, member_id, date, start_time, created_at
		FROM reservations
		WHERE member_id = ?
		ORDER BY date ASC, start_time ASC
	`
	rows, err := r.db.Query(query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		var memberRef sql.NullInt64
		if err := rows.Scan(&res.ID, &res.CourtID, &memberRef, &res.Date, &res.StartTime, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		res.MemberID = nullInt64Ptr(memberRef)
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}
