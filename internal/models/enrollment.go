package models

import "time"

// Enrollment ties a member to a practice. The (member, practice) pair is
// a stable identity: withdrawal and practice retirement flip Active to
// false, re-enrollment flips it back, the row is never duplicated.
type Enrollment struct {
	ID         int64     `json:"id"`
	MemberID   int64     `json:"member_id"`
	PracticeID int64     `json:"practice_id"`
	Active     bool      `json:"active"`
	EnrolledAt time.Time `json:"enrolled_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Attendance records presence of an enrolled member at one class date
type Attendance struct {
	ID           int64     `json:"id"`
	EnrollmentID int64     `json:"enrollment_id"`
	ClassDate    time.Time `json:"class_date"`
	Present      bool      `json:"present"`
}

// AttendanceRate returns the fraction of recorded classes attended
func AttendanceRate(records []Attendance) float64 {
	if len(records) == 0 {
		return 0
	}
	present := 0
	for _, rec := range records {
		if rec.Present {
			present++
		}
	}
	return float64(present) / float64(len(records))
}
