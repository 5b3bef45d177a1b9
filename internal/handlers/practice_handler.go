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

// PracticeHandler serves the practice catalog endpoints
type PracticeHandler struct {
	practiceRepo      *repository.PracticeRepository
	retirementService *service.RetirementService
	validate          *validator.Validate
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(
	practiceRepo *repository.PracticeRepository,
	retirementService *service.RetirementService,
) *PracticeHandler {
	return &PracticeHandler{
		practiceRepo:      practiceRepo,
		retirementService: retirementService,
		validate:          validator.New(),
	}
}

type createPracticeRequest struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
	Price    int64  `json:"price" validate:"gte=0"`
}

// Create handles POST /api/practices
func (h *PracticeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPracticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	practice, err := h.practiceRepo.CreatePractice(&models.Practice{
		Name:     req.Name,
		Capacity: req.Capacity,
		Price:    req.Price,
	})
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "create practice", Err: err})
		return
	}

	respondWithJSON(w, http.StatusCreated, practice)
}

// Get handles GET /api/practices/{id}
func (h *PracticeHandler) Get(w http.ResponseWriter, r *http.Request) {
	practiceID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid practice ID", "", nil)
		return
	}

	practice, err := h.practiceRepo.GetPracticeByID(practiceID)
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "get practice", Err: err})
		return
	}
	if practice == nil {
		respondWithDomainError(w, models.NewNotFoundError("practice", practiceID))
		return
	}

	respondWithJSON(w, http.StatusOK, practice)
}

type addScheduleRequest struct {
	Weekday   int    `json:"weekday" validate:"gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// AddSchedule handles POST /api/practices/{id}/schedules
func (h *PracticeHandler) AddSchedule(w http.ResponseWriter, r *http.Request) {
	practiceID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid practice ID", "", nil)
		return
	}

	var req addScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	practice, err := h.practiceRepo.GetPracticeByID(practiceID)
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "add schedule", Err: err})
		return
	}
	if practice == nil {
		respondWithDomainError(w, models.NewNotFoundError("practice", practiceID))
		return
	}

	schedule, err := h.practiceRepo.AddSchedule(&models.Schedule{
		PracticeID: practiceID,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "add schedule", Err: err})
		return
	}

	respondWithJSON(w, http.StatusCreated, schedule)
}

type createTrainerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// CreateTrainer handles POST /api/trainers
func (h *PracticeHandler) CreateTrainer(w http.ResponseWriter, r *http.Request) {
	var req createTrainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	trainer, err := h.practiceRepo.CreateTrainer(&models.Trainer{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "create trainer", Err: err})
		return
	}

	respondWithJSON(w, http.StatusCreated, trainer)
}

// AssignTrainer handles POST /api/practices/{id}/trainers/{trainerId}
func (h *PracticeHandler) AssignTrainer(w http.ResponseWriter, r *http.Request) {
	practiceID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid practice ID", "", nil)
		return
	}
	trainerID, err := strconv.ParseInt(r.PathValue("trainerId"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid trainer ID", "", nil)
		return
	}

	if err := h.practiceRepo.AssignTrainer(practiceID, trainerID); err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "assign trainer", Err: err})
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}

// UnassignTrainer handles DELETE /api/practices/{id}/trainers/{trainerId}
func (h *PracticeHandler) UnassignTrainer(w http.ResponseWriter, r *http.Request) {
	practiceID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid practice ID", "", nil)
		return
	}
	trainerID, err := strconv.ParseInt(r.PathValue("trainerId"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid trainer ID", "", nil)
		return
	}

	if err := h.practiceRepo.UnassignTrainer(practiceID, trainerID); err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "unassign trainer", Err: err})
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}

// Retire handles DELETE /api/practices/{id}
func (h *PracticeHandler) Retire(w http.ResponseWriter, r *http.Request) {
	practiceID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid practice ID", "", nil)
		return
	}

	result, err := h.retirementService.Retire(r.Context(), practiceID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
