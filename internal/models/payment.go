package models

import "time"

// PaymentStatus is the state of a single payment attempt
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// Payment is one payment attempt against exactly one obligation: a due,
// an enrollment fee, or a court reservation fee. Rows are append-only;
// a PAID payment is never reverted.
type Payment struct {
	ID            int64         `json:"id"`
	DueID         *int64        `json:"due_id,omitempty"`
	EnrollmentID  *int64        `json:"enrollment_id,omitempty"`
	ReservationID *int64        `json:"reservation_id,omitempty"`
	Amount        int64         `json:"amount"`
	Status        PaymentStatus `json:"status"`
	Reference     string        `json:"reference"`
	CreatedAt     time.Time     `json:"created_at"`
}

// IsObligationPaid is the single definition of "paid" in the system:
// an obligation is paid when at least one of its payments has status
// PAID, regardless of earlier pending or declined attempts.
func IsObligationPaid(payments []Payment) bool {
	for _, p := range payments {
		if p.Status == PaymentPaid {
			return true
		}
	}
	return false
}

// ObligationKind identifies the source of a billable item
type ObligationKind string

const (
	ObligationDue         ObligationKind = "due"
	ObligationEnrollment  ObligationKind = "enrollment"
	ObligationReservation ObligationKind = "reservation"
)

// Obligation is the reconciler's projection of any billable item with
// its payment trail collapsed to a status
type Obligation struct {
	ID      int64          `json:"id"`
	Kind    ObligationKind `json:"kind"`
	Concept string         `json:"concept"`
	Amount  int64          `json:"amount"`
	DueDate time.Time      `json:"due_date"`
	Status  PaymentStatus  `json:"status"`
}
