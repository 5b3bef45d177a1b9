package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"clubmanager/internal/gateway"
	"clubmanager/internal/service"
)

// PaymentHandler serves the payment endpoints
type PaymentHandler struct {
	paymentService *service.PaymentService
	validate       *validator.Validate
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validate:       validator.New(),
	}
}

type cardRequest struct {
	Number   string `json:"number" validate:"required,numeric,min=12,max=19"`
	Holder   string `json:"holder" validate:"required"`
	ExpMonth int    `json:"exp_month" validate:"required,gte=1,lte=12"`
	ExpYear  int    `json:"exp_year" validate:"required,gte=2020"`
	CVV      string `json:"cvv" validate:"required,numeric,len=3"`
}

type payRequest struct {
	ObligationKind string      `json:"obligation_kind" validate:"required,oneof=due enrollment reservation"`
	ObligationID   int64       `json:"obligation_id" validate:"required,gt=0"`
	Card           cardRequest `json:"card" validate:"required"`
}

// Pay handles POST /api/payments
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	card := gateway.Card{
		Number:   req.Card.Number,
		Holder:   req.Card.Holder,
		ExpMonth: req.Card.ExpMonth,
		ExpYear:  req.Card.ExpYear,
		CVV:      req.Card.CVV,
	}

	var (
		payment interface{}
		err     error
	)
	switch req.ObligationKind {
	case "due":
		payment, err = h.paymentService.PayDue(r.Context(), req.ObligationID, card)
	case "enrollment":
		payment, err = h.paymentService.PayEnrollment(r.Context(), req.ObligationID, card)
	case "reservation":
		payment, err = h.paymentService.PayReservation(r.Context(), req.ObligationID, card)
	}
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, payment)
}
