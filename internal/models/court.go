package models

import "time"

// Court represents a bookable court
type Court struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Reservation books a court for one slot on one date. At most one
// reservation may exist per (court, date, start time)
type Reservation struct {
	ID        int64     `json:"id"`
	CourtID   int64     `json:"court_id"`
	MemberID  *int64    `json:"member_id,omitempty"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	CreatedAt time.Time `json:"created_at"`
}
