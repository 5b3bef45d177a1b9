package repository

import (
	"database/sql"
	"fmt"
	"time"

	"clubmanager/internal/database"
	"clubmanager/internal/models"
)

// PaymentRepository handles database operations for payment rows.
// Payments are append-only: nothing here updates or deletes.
type PaymentRepository struct {
	db *database.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *database.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePayment appends a payment attempt against its obligation
func (r *PaymentRepository) CreatePayment(p *models.Payment) (*models.Payment, error) {
	query := `
		INSERT INTO payments (due_id, enrollment_id, reservation_id, amount, status, reference)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		nullableID(p.DueID), nullableID(p.EnrollmentID), nullableID(p.ReservationID),
		p.Amount, p.Status, p.Reference)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	p.ID = id
	p.CreatedAt = time.Now()
	return p, nil
}

// GetPaymentsForDue retrieves the payment trail of a due
func (r *PaymentRepository) GetPaymentsForDue(dueID int64) ([]models.Payment, error) {
	return r.queryPayments("due_id", dueID)
}

// GetPaymentsForEnrollment retrieves the payment trail of an enrollment fee
func (r *PaymentRepository) GetPaymentsForEnrollment(enrollmentID int64) ([]models.Payment, error) {
	return r.queryPayments("enrollment_id", enrollmentID)
}

// GetPaymentsForReservation retrieves the payment trail of a reservation fee
func (r *PaymentRepository) GetPaymentsForReservation(reservationID int64) ([]models.Payment, error) {
	return r.queryPayments("reservation_id", reservationID)
}

func (r *PaymentRepository) queryPayments(column string, id int64) ([]models.Payment, error) {
	query := fmt.Sprintf(`
		SELECT id, due_id, enrollment_id, reservation_id, amount, status, reference, created_at
		FROM payments
		WHERE %s = ?
		ORDER BY created_at ASC, id ASC
	`, column)
	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var dueID, enrollmentID, reservationID sql.NullInt64
		if err := rows.Scan(&p.ID, &dueID, &enrollmentID, &reservationID, &p.Amount, &p.Status, &p.Reference, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.DueID = nullInt64Ptr(dueID)
		p.EnrollmentID = nullInt64Ptr(enrollmentID)
		p.ReservationID = nullInt64Ptr(reservationID)
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
