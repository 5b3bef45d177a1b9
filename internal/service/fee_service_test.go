package service

import (
	"errors"
	"testing"

	"clubmanager/internal/models"
)

func TestComputeDueIndividual(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)
	member := createIndividual(t, r, "11111111A", "Alice")

	feeService := NewFeeService(r.members, 1000)
	computation, err := feeService.ComputeDue(member.ID)
	if err != nil {
		t.Fatalf("ComputeDue() error: %v", err)
	}

	if computation.Amount != 1000 {
		t.Errorf("Amount = %d, want 1000", computation.Amount)
	}
	if computation.BilledMemberID != member.ID {
		t.Errorf("BilledMemberID = %d, want %d", computation.BilledMemberID, member.ID)
	}
	if computation.GroupSize != 1 {
		t.Errorf("GroupSize = %d, want 1", computation.GroupSize)
	}
}

func TestComputeDueFamilyGroup(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)
	family := createFamily(t, r, 1, "smith", 4)
	head := family[0]

	feeService := NewFeeService(r.members, 1000)

	// 4 x 1000 = 4000 gross, 30% off = 2800, billed to the head no matter
	// which group member is asked about
	for _, member := range family {
		computation, err := feeService.ComputeDue(member.ID)
		if err != nil {
			t.Fatalf("ComputeDue(%d) error: %v", member.ID, err)
		}
		if computation.Amount != 2800 {
			t.Errorf("Amount = %d, want 2800", computation.Amount)
		}
		if computation.BilledMemberID != head.ID {
			t.Errorf("BilledMemberID = %d, want head %d", computation.BilledMemberID, head.ID)
		}
		if computation.GrossTotal != 4000 {
			t.Errorf("GrossTotal = %d, want 4000", computation.GrossTotal)
		}
	}
}

func TestComputeDueRoundsGroupTotalOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)
	family := createFamily(t, r, 2, "jones", 3)

	// 3 x 333 = 999 gross, 999 * 0.7 = 699.3, rounds to 699
	feeService := NewFeeService(r.members, 333)
	computation, err := feeService.ComputeDue(family[0].ID)
	if err != nil {
		t.Fatalf("ComputeDue() error: %v", err)
	}
	if computation.Amount != 699 {
		t.Errorf("Amount = %d, want 699", computation.Amount)
	}
}

func TestComputeDueRoundsHalfUp(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)
	family := createFamily(t, r, 3, "lee", 3)

	// 3 x 15 = 45 gross, 45 * 0.7 = 31.5, rounds to 32
	feeService := NewFeeService(r.members, 15)
	computation, err := feeService.ComputeDue(family[0].ID)
	if err != nil {
		t.Fatalf("ComputeDue() error: %v", err)
	}
	if computation.Amount != 32 {
		t.Errorf("Amount = %d, want 32", computation.Amount)
	}
}

func TestComputeDueUnknownMember(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)
	feeService := NewFeeService(r.members, 1000)

	_, err := feeService.ComputeDue(9999)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveFamilyHeadRejectsTwoHeads(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)
	groupID := int64(5)

	// Two members in the same group, neither referencing a head
	first, err := r.members.CreateMember(&models.Member{
		NationalID: "F1", Name: "First", PlanType: models.PlanFamily, FamilyGroupID: &groupID,
	})
	if err != nil {
		t.Fatalf("Failed to create member: %v", err)
	}
	if _, err := r.members.CreateMember(&models.Member{
		NationalID: "F2", Name: "Second", PlanType: models.PlanFamily, FamilyGroupID: &groupID,
	}); err != nil {
		t.Fatalf("Failed to create member: %v", err)
	}

	feeService := NewFeeService(r.members, 1000)
	_, err = feeService.ComputeDue(first.ID)
	if !errors.Is(err, models.ErrInconsistentState) {
		t.Errorf("expected ErrInconsistentState for two heads, got %v", err)
	}
}

func TestResolveFamilyHeadRejectsMissingGroup(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)

	// FAMILY plan but no family group reference
	orphan, err := r.members.CreateMember(&models.Member{
		NationalID: "F3", Name: "Orphan", PlanType: models.PlanFamily,
	})
	if err != nil {
		t.Fatalf("Failed to create member: %v", err)
	}

	feeService := NewFeeService(r.members, 1000)
	_, err = feeService.ComputeDue(orphan.ID)
	if !errors.Is(err, models.ErrInconsistentState) {
		t.Errorf("expected ErrInconsistentState for missing group, got %v", err)
	}
}

func TestGetQuota(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	_, r := setupTestDB(t)
	individual := createIndividual(t, r, "22222222B", "Bob")
	family := createFamily(t, r, 9, "garcia", 2)
	head, dependent := family[0], family[1]

	feeService := NewFeeService(r.members, 1000)

	t.Run("individual pays base price", func(t *testing.T) {
		quota, err := feeService.GetQuota(individual.ID)
		if err != nil {
			t.Fatalf("GetQuota() error: %v", err)
		}
		if quota.Amount != 1000 || quota.PayableByHead {
			t.Errorf("quota = %+v, want amount 1000 payable by self", quota)
		}
	})

	t.Run("head carries the discounted group total", func(t *testing.T) {
		quota, err := feeService.GetQuota(head.ID)
		if err != nil {
			t.Fatalf("GetQuota() error: %v", err)
		}
		// 2 x 1000 = 2000 gross, 30% off = 1400
		if quota.Amount != 1400 {
			t.Errorf("Amount = %d, want 1400", quota.Amount)
		}
		if quota.GrossTotal != 2000 || quota.NetTotal != 1400 {
			t.Errorf("totals = %d/%d, want 2000/1400", quota.GrossTotal, quota.NetTotal)
		}
		if quota.PayableByHead {
			t.Error("head's own quota should not be marked payable by head")
		}
	})

	t.Run("dependent owes nothing and points at the head", func(t *testing.T) {
		quota, err := feeService.GetQuota(dependent.ID)
		if err != nil {
			t.Fatalf("GetQuota() error: %v", err)
		}
		if quota.Amount != 0 {
			t.Errorf("Amount = %d, want 0", quota.Amount)
		}
		if !quota.PayableByHead {
			t.Error("dependent quota should be payable by head")
		}
		if quota.HeadName != head.Name {
			t.Errorf("HeadName = %q, want %q", quota.HeadName, head.Name)
		}
	})
}
