package gateway

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Card carries the card details of a charge attempt
type Card struct {
	Number   string
	Holder   string
	ExpMonth int
	ExpYear  int
	CVV      string
}

// Result is the gateway's answer to a charge attempt
type Result struct {
	Approved      bool
	TransactionID string
	Reason        string
}

// Gateway charges cards. The production integration lives outside this
// service; the engine only needs approve/decline.
type Gateway interface {
	Charge(ctx context.Context, card Card, amount int64) (*Result, error)
}

// StubGateway approves every charge except cards ending in the decline
// suffix, which keeps decline paths testable without a real provider
type StubGateway struct {
	declineSuffix string
}

// NewStubGateway creates a stub gateway. An empty suffix defaults to "0000"
func NewStubGateway(declineSuffix string) *StubGateway {
	if declineSuffix == "" {
		declineSuffix = "0000"
	}
	return &StubGateway{declineSuffix: declineSuffix}
}

// Charge approves or declines the card and returns a transaction reference
func (g *StubGateway) Charge(ctx context.Context, card Card, amount int64) (*Result, error) {
	if strings.HasSuffix(card.Number, g.declineSuffix) {
		return &Result{
			Approved: false,
			Reason:   "card declined",
		}, nil
	}

	return &Result{
		Approved:      true,
		TransactionID: uuid.NewString(),
	}, nil
}
