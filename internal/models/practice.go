package models

import "time"

// Practice represents a sports practice with an enrollment cap
type Practice struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Schedule is a weekly time slot of a practice
type Schedule struct {
	ID         int64  `json:"id"`
	PracticeID int64  `json:"practice_id"`
	Weekday    int    `json:"weekday"` // 0 = Sunday
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// Trainer represents a trainer who can be assigned to practices
type Trainer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
