package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"clubmanager/internal/models"
	"clubmanager/internal/repository"
	"clubmanager/internal/service"
)

// EnrollmentHandler serves the enrollment and attendance endpoints
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
	enrollmentRepo    *repository.EnrollmentRepository
	validate          *validator.Validate
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(
	enrollmentService *service.EnrollmentService,
	enrollmentRepo *repository.EnrollmentRepository,
) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		enrollmentRepo:    enrollmentRepo,
		validate:          validator.New(),
	}
}

type enrollRequest struct {
	MemberID   int64 `json:"member_id" validate:"required,gt=0"`
	PracticeID int64 `json:"practice_id" validate:"required,gt=0"`
}

// Enroll handles POST /api/enrollments
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	result, err := h.enrollmentService.Enroll(req.MemberID, req.PracticeID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Status == service.StatusAlreadyEnrolled {
		status = http.StatusOK
	}
	respondWithJSON(w, status, result)
}

// Withdraw handles DELETE /api/enrollments, keyed by member and practice
func (h *EnrollmentHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	result, err := h.enrollmentService.Withdraw(req.MemberID, req.PracticeID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type attendanceRequest struct {
	ClassDate string `json:"class_date" validate:"required,datetime=2006-01-02"`
	Present   bool   `json:"present"`
}

// RecordAttendance handles POST /api/enrollments/{id}/attendance
func (h *EnrollmentHandler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	enrollmentID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid enrollment ID", "", nil)
		return
	}

	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	enrollment, err := h.enrollmentRepo.GetEnrollmentByID(enrollmentID)
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "record attendance", Err: err})
		return
	}
	if enrollment == nil {
		respondWithDomainError(w, models.NewNotFoundError("enrollment", enrollmentID))
		return
	}

	classDate, _ := time.Parse("2006-01-02", req.ClassDate)
	if err := h.enrollmentRepo.RecordAttendance(enrollmentID, classDate, req.Present); err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "record attendance", Err: err})
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}

// GetAttendance handles GET /api/enrollments/{id}/attendance
func (h *EnrollmentHandler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	enrollmentID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid enrollment ID", "", nil)
		return
	}

	records, err := h.enrollmentRepo.GetAttendance(enrollmentID)
	if err != nil {
		respondWithDomainError(w, &models.StoreError{Op: "get attendance", Err: err})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records":         records,
		"attendance_rate": models.AttendanceRate(records),
	})
}
