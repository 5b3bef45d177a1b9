package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"clubmanager/internal/models"
	"clubmanager/internal/repository"
)

// ReservationHandler serves the court and reservation endpoints
type ReservationHandler struct {
	reservationRepo *repository.ReservationRepository
	memberRepo      *repository.MemberRepository
	validate        *validator.Validate
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(
	reservationRepo *repository.ReservationRepository,
	memberRepo *repository.MemberRepository,
) *ReservationHandler {
	return &ReservationHandler{
		reservationRepo: reservationRepo,
		memberRepo:      memberRepo,
		validate:        validator.New(),
	}
}

type createCourtRequest struct {
	Name  string `json:"name" validate:"required"`
	Price int64  `json:"price" validate:"gte=0"`
}

// CreateCourt handles POST /api/courts
func (h *ReservationHandler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	var req createCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	court, err := h.reservationRepo.CreateCourt(&models.Court{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "create court", Err: err})
		return
	}

	respondWithJSON(w, http.StatusCreated, court)
}

type createReservationRequest struct {
	CourtID   int64  `json:"court_id" validate:"required,gt=0"`
	MemberID  *int64 `json:"member_id"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required"`
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	court, err := h.reservationRepo.GetCourtByID(req.CourtID)
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "create reservation", Err: err})
		return
	}
	if court == nil {
		respondWithDomainError(w, models.NewNotFoundError("court", req.CourtID))
		return
	}

	if req.MemberID != nil {
		member, err := h.memberRepo.GetMemberByID(*req.MemberID)
		if err != nil {
			respondWithDomainError(w, &models.StoreError{Op: "create reservation", Err: err})
			return
		}
		if member == nil {
			respondWithDomainError(w, models.NewNotFoundError("member", *req.MemberID))
			return
		}
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	reservation, err := h.reservationRepo.CreateReservation(&models.Reservation{
		CourtID:   req.CourtID,
		MemberID:  req.MemberID,
		Date:      date,
		StartTime: req.StartTime,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			respondWithError(w, http.StatusConflict, "court slot already reserved", "", nil)
			return
		}
		respondWithDomainError(w, &models.StoreError{Op: "create reservation", Err: err})
		return
	}

	respondWithJSON(w, http.StatusCreated, reservation)
}

// ListForMember handles GET /api/members/{id}/reservations
func (h *ReservationHandler) ListForMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid member ID", "", nil)
		return
	}

	reservations, err := h.reservationRepo.GetReservationsForMember(memberID)
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "list reservations", Err: err})
		return
	}

	respondWithJSON(w, http.StatusOK, reservations)
}
