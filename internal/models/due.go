package models

import "time"

// Due is a monthly membership fee obligation, unique per
// (member, month, year). Family groups are billed through their head
// member only
type Due struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"member_id"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Amount    int64     `json:"amount"`
	DueDate   time.Time `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
}
