package repository

import (
	"database/sql"
	"fmt"
	"time"

	"clubmanager/internal/database"
	"clubmanager/internal/models"
)

// MemberRepository handles database operations for members
type MemberRepository struct {
	db *database.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *database.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// CreateMember inserts a new member and returns it with its ID set
func (r *MemberRepository) CreateMember(m *models.Member) (*models.Member, error) {
	query := `
		INSERT INTO members (national_id, name, email, plan_type, family_group_id, head_of_family_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		m.NationalID, m.Name, m.Email, m.PlanType,
		nullableID(m.FamilyGroupID), nullableID(m.HeadOfFamilyID))
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	m.ID = id
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
	return m, nil
}

// GetMemberByID retrieves a member by ID
func (r *MemberRepository) GetMemberByID(memberID int64) (*models.Member, error) {
	query := `
		SELECT id, national_id, name, email, plan_type, family_group_id, head_of_family_id, created_at, updated_at
		FROM members WHERE id = ?
	`
	return r.scanMember(r.db.QueryRow(query, memberID))
}

// GetMemberByNationalID retrieves a member by their unique national ID
func (r *MemberRepository) GetMemberByNationalID(nationalID string) (*models.Member, error) {
	query := `
		SELECT id, national_id, name, email, plan_type, family_group_id, head_of_family_id, created_at, updated_at
		FROM members WHERE national_id = ?
	`
	return r.scanMember(r.db.QueryRow(query, nationalID))
}

// GetFamilyGroupMembers retrieves all members sharing a family group
func (r *MemberRepository) GetFamilyGroupMembers(familyGroupID int64) ([]models.Member, error) {
	query := `
		SELECT id, national_id, name, email, plan_type, family_group_id, head_of_family_id, created_at, updated_at
		FROM members
		WHERE family_group_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, familyGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family group members: %w", err)
	}
	defer rows.Close()

	return scanMemberRows(rows)
}

// GetResponsibleMembers retrieves every member who carries their own due:
// individuals and family heads
func (r *MemberRepository) GetResponsibleMembers() ([]models.Member, error) {
	query := `
		SELECT id, national_id, name, email, plan_type, family_group_id, head_of_family_id, created_at, updated_at
		FROM members
		WHERE plan_type = 'INDIVIDUAL'
		   OR (plan_type = 'FAMILY' AND head_of_family_id IS NULL)
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query responsible members: %w", err)
	}
	defer rows.Close()

	return scanMemberRows(rows)
}

func (r *MemberRepository) scanMember(row *sql.Row) (*models.Member, error) {
	member := &models.Member{}
	var familyGroupID, headOfFamilyID sql.NullInt64
	err := row.Scan(
		&member.ID,
		&member.NationalID,
		&member.Name,
		&member.Email,
		&member.PlanType,
		&familyGroupID,
		&headOfFamilyID,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	member.FamilyGroupID = nullInt64Ptr(familyGroupID)
	member.HeadOfFamilyID = nullInt64Ptr(headOfFamilyID)
	return member, nil
}

func scanMemberRows(rows *sql.Rows) ([]models.Member, error) {
	var members []models.Member
	for rows.Next() {
		var member models.Member
		var familyGroupID, headOfFamilyID sql.NullInt64
		if err := rows.Scan(
			&member.ID,
			&member.NationalID,
			&member.Name,
			&member.Email,
			&member.PlanType,
			&familyGroupID,
			&headOfFamilyID,
			&member.CreatedAt,
			&member.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		member.FamilyGroupID = nullInt64Ptr(familyGroupID)
		member.HeadOfFamilyID = nullInt64Ptr(headOfFamilyID)
		members = append(members, member)
	}

	return members, rows.Err()
}

// nullableID converts an optional ID to a driver-friendly value
func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	value := v.Int64
	return &value
}
