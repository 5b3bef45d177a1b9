package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"clubmanager/internal/models"
	"clubmanager/internal/repository"
	"clubmanager/internal/service"
)

// MemberHandler serves the member endpoints
type MemberHandler struct {
	memberRepo  *repository.MemberRepository
	debtService *service.DebtService
	feeService  *service.FeeService
	validate    *validator.Validate
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(
	memberRepo *repository.MemberRepository,
	debtService *service.DebtService,
	feeService *service.FeeService,
) *MemberHandler {
	return &MemberHandler{
		memberRepo:  memberRepo,
		debtService: debtService,
		feeService:  feeService,
		validate:    validator.New(),
	}
}

type createMemberRequest struct {
	NationalID     string `json:"national_id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	PlanType       string `json:"plan_type" validate:"required,oneof=INDIVIDUAL FAMILY"`
	FamilyGroupID  *int64 `json:"family_group_id"`
	HeadOfFamilyID *int64 `json:"head_of_family_id"`
}

// Create handles POST /api/members
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	if req.PlanType == string(models.PlanFamily) && req.FamilyGroupID == nil {
		respondWithError(w, http.StatusBadRequest, "family members need a family_group_id", "", nil)
		return
	}

	existing, err := h.memberRepo.GetMemberByNationalID(req.NationalID)
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "create member", Err: err})
		return
	}
	if existing != nil {
		respondWithError(w, http.StatusConflict, "national ID already registered", "", nil)
		return
	}

	member, err := h.memberRepo.CreateMember(&models.Member{
		NationalID:     req.NationalID,
		Name:           req.Name,
		Email:          req.Email,
		PlanType:       models.PlanType(req.PlanType),
		FamilyGroupID:  req.FamilyGroupID,
		HeadOfFamilyID: req.HeadOfFamilyID,
	})
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "create member", Err: err})
		return
	}

	respondWithJSON(w, http.StatusCreated, member)
}

// Get handles GET /api/members/{id}
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid member ID", "", nil)
		return
	}

	member, err := h.memberRepo.GetMemberByID(memberID)
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "get member", Err: err})
		return
	}
	if member == nil {
		respondWithDomainError(w, models.NewNotFoundError("member", memberID))
		return
	}

	respondWithJSON(w, http.StatusOK, member)
}

// GetQuota handles GET /api/members/{id}/quota
func (h *MemberHandler) GetQuota(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid member ID", "", nil)
		return
	}

	quota, err := h.feeService.GetQuota(memberID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, quota)
}

// ListDebts handles GET /api/members/{id}/debts
func (h *MemberHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid member ID", "", nil)
		return
	}

	obligations, err := h.debtService.ListDebts(memberID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, obligations)
}
