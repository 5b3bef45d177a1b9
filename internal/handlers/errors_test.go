package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clubmanager/internal/models"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, 418, "Teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] != "Teapot" {
		t.Fatalf("expected error 'Teapot', got %q", body["error"])
	}
}

func TestRespondWithDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "not found maps to 404",
			err:      models.NewNotFoundError("member", 42),
			expected: http.StatusNotFound,
		},
		{
			name:     "capacity maps to 409",
			err:      &models.CapacityError{PracticeID: 1, Capacity: 10, ActiveCount: 10},
			expected: http.StatusConflict,
		},
		{
			name:     "trainer assigned maps to 409",
			err:      &models.TrainerAssignedError{PracticeID: 1, Trainers: []string{"Ana"}},
			expected: http.StatusConflict,
		},
		{
			name:     "inconsistent state maps to 500",
			err:      &models.InconsistentStateError{Detail: "two heads"},
			expected: http.StatusInternalServerError,
		},
		{
			name:     "store failure maps to 503",
			err:      &models.StoreError{Op: "enroll", Err: errors.New("disk full")},
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "unknown error maps to 500",
			err:      errors.New("surprise"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondWithDomainError(recorder, tt.err)
			if recorder.Code != tt.expected {
				t.Errorf("status = %d, want %d", recorder.Code, tt.expected)
			}
		})
	}
}

func TestCapacityErrorResponseCarriesOccupancy(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondWithDomainError(recorder, &models.CapacityError{PracticeID: 7, Capacity: 20, ActiveCount: 20})

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if !strings.Contains(body["error"], "20/20") {
		t.Errorf("error = %q, want the occupancy detail", body["error"])
	}
}
