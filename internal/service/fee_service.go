package service

import (
	"fmt"
	"math"

	"clubmanager/internal/models"
	"clubmanager/internal/repository"
)

// FamilyDiscountRate is the cascading group discount applied to the
// whole family total before rounding
const FamilyDiscountRate = 0.30

// FeeService computes monthly due amounts. Family groups are billed as
// one discounted total to the head member; non-head members never carry
// a due of their own.
type FeeService struct {
	memberRepo *repository.MemberRepository
	basePrice  int64
}

// NewFeeService creates a new fee service
func NewFeeService(memberRepo *repository.MemberRepository, basePrice int64) *FeeService {
	return &FeeService{
		memberRepo: memberRepo,
		basePrice:  basePrice,
	}
}

// DueComputation is the outcome of computing a member's monthly due
type DueComputation struct {
	MemberID       int64 `json:"member_id"`
	BilledMemberID int64 `json:"billed_member_id"`
	Amount         int64 `json:"amount"`
	GroupSize      int   `json:"group_size"`
	GrossTotal     int64 `json:"gross_total"`
}

// QuotaBreakdown explains a member's monthly quota position
type QuotaBreakdown struct {
	PlanType      models.PlanType `json:"plan_type"`
	Amount        int64           `json:"amount"`
	GroupSize     int             `json:"group_size,omitempty"`
	DiscountRate  float64         `json:"discount_rate,omitempty"`
	GrossTotal    int64           `json:"gross_total,omitempty"`
	NetTotal      int64           `json:"net_total,omitempty"`
	HeadName      string          `json:"head_name,omitempty"`
	PayableByHead bool            `json:"payable_by_head"`
}

// ResolveFamilyHead finds the head of a FAMILY member's group and the
// full group membership. Exactly one member of the group must have no
// head reference; anything else is a data inconsistency that gets
// reported, never guessed at.
func (s *FeeService) ResolveFamilyHead(member *models.Member) (*models.Member, []models.Member, error) {
	if member.PlanType != models.PlanFamily {
		return nil, nil, &models.InconsistentStateError{
			Detail: fmt.Sprintf("member %d is not on a family plan", member.ID),
		}
	}
	if member.FamilyGroupID == nil {
		return nil, nil, &models.InconsistentStateError{
			Detail: fmt.Sprintf("family member %d has no family group", member.ID),
		}
	}

	group, err := s.memberRepo.GetFamilyGroupMembers(*member.FamilyGroupID)
	if err != nil {
		return nil, nil, &models.StoreError{Op: "resolve family head", Err: err}
	}

	var head *models.Member
	for i := range group {
		if group[i].PlanType != models.PlanFamily {
			return nil, nil, &models.InconsistentStateError{
				Detail: fmt.Sprintf("family group %d contains non-family member %d", *member.FamilyGroupID, group[i].ID),
			}
		}
		if group[i].HeadOfFamilyID == nil {
			if head != nil {
				return nil, nil, &models.InconsistentStateError{
					Detail: fmt.Sprintf("family group %d has more than one head", *member.FamilyGroupID),
				}
			}
			head = &group[i]
		}
	}

	if head == nil {
		return nil, nil, &models.InconsistentStateError{
			Detail: fmt.Sprintf("family group %d has no resolvable head", *member.FamilyGroupID),
		}
	}

	return head, group, nil
}

// ComputeDue computes the monthly due amount for a member. For family
// members the whole group total is billed to the head.
func (s *FeeService) ComputeDue(memberID int64) (*DueComputation, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		return nil, &models.StoreError{Op: "compute due", Err: err}
	}
	if member == nil {
		return nil, models.NewNotFoundError("member", memberID)
	}

	if member.PlanType == models.PlanIndividual {
		return &DueComputation{
			MemberID:       member.ID,
			BilledMemberID: member.ID,
			Amount:         s.basePrice,
			GroupSize:      1,
			GrossTotal:     s.basePrice,
		}, nil
	}

	head, group, err := s.ResolveFamilyHead(member)
	if err != nil {
		return nil, err
	}

	gross := s.basePrice * int64(len(group))
	return &DueComputation{
		MemberID:       member.ID,
		BilledMemberID: head.ID,
		Amount:         discountedGroupTotal(s.basePrice, len(group)),
		GroupSize:      len(group),
		GrossTotal:     gross,
	}, nil
}

// GetQuota returns the quota breakdown for a member: the full discounted
// picture for a family head, a pointer to the head for other family
// members, and the base price for individuals
func (s *FeeService) GetQuota(memberID int64) (*QuotaBreakdown, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		return nil, &models.StoreError{Op: "get quota", Err: err}
	}
	if member == nil {
		return nil, models.NewNotFoundError("member", memberID)
	}

	if member.PlanType == models.PlanIndividual {
		return &QuotaBreakdown{
			PlanType: models.PlanIndividual,
			Amount:   s.basePrice,
			NetTotal: s.basePrice,
		}, nil
	}

	head, group, err := s.ResolveFamilyHead(member)
	if err != nil {
		return nil, err
	}

	net := discountedGroupTotal(s.basePrice, len(group))
	if head.ID == member.ID {
		return &QuotaBreakdown{
			PlanType:     models.PlanFamily,
			Amount:       net,
			GroupSize:    len(group),
			DiscountRate: FamilyDiscountRate,
			GrossTotal:   s.basePrice * int64(len(group)),
			NetTotal:     net,
		}, nil
	}

	return &QuotaBreakdown{
		PlanType:      models.PlanFamily,
		Amount:        0,
		GroupSize:     len(group),
		DiscountRate:  FamilyDiscountRate,
		HeadName:      head.Name,
		PayableByHead: true,
	}, nil
}

// discountedGroupTotal applies the family discount to the whole group
// total and rounds once, avoiding per-member rounding drift
func discountedGroupTotal(basePrice int64, groupSize int) int64 {
	gross := float64(basePrice) * float64(groupSize)
	return int64(math.Round(gross * (1 - FamilyDiscountRate)))
}
