package models

import "time"

// PlanType identifies how a member is billed
type PlanType string

const (
	PlanIndividual PlanType = "INDIVIDUAL"
	PlanFamily     PlanType = "FAMILY"
)

// Member represents a club member. FAMILY members share a family group;
// the member of the group without a head reference is the head and
// carries the group's consolidated due.
type Member struct {
	ID             int64     `json:"id"`
	NationalID     string    `json:"national_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PlanType       PlanType  `json:"plan_type"`
	FamilyGroupID  *int64    `json:"family_group_id,omitempty"`
	HeadOfFamilyID *int64    `json:"head_of_family_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsFamilyHead reports whether this member heads their family group
func (m *Member) IsFamilyHead() bool {
	return m.PlanType == PlanFamily && m.FamilyGroupID != nil && m.HeadOfFamilyID == nil
}
