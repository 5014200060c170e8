package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/fatflowers/hotspot/pkg/types"
)

// ErrProviderNotConfigured is returned by Initiate when required
// credentials are missing. No provider call is ever attempted with
// partial configuration.
var ErrProviderNotConfigured = errors.New("payment provider is not configured")

type InitiateRequest struct {
	MSISDN    string
	AmountUGX int64
	// Reference is the order's provider transaction reference; the
	// provider must echo it back in its callback.
	Reference string
}

type InitiateResult struct {
	ProviderReference string `json:"provider_reference"`
	Message           string `json:"message"`
}

// CallbackVerification is the structured result of verifying an inbound
// webhook. VerifyCallback never returns an error; any parse or crypto
// failure yields OK=false, Status=FAILED, Reference="".
type CallbackVerification struct {
	OK            bool
	Reference     string
	Status        types.PaymentStatus
	TransactionID string
	Amount        *int64
}

func failedVerification() CallbackVerification {
	return CallbackVerification{OK: false, Reference: "", Status: types.PaymentStatusFailed}
}

// Provider is one mobile-money integration. The set of implementations
// is closed: MTN and Airtel.
type Provider interface {
	Name() types.PaymentProvider
	// Initiate asks the provider to prompt the subscriber for payment.
	Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error)
	// VerifyCallback authenticates a webhook against the raw request
	// bytes (the signature covers the raw representation, so the body
	// must not be re-serialized before verification).
	VerifyCallback(headers http.Header, rawBody []byte) CallbackVerification
}

// callbackBody is the provider payload shape shared by both providers.
type callbackBody struct {
	Reference     string `json:"reference"`
	ExternalID    string `json:"externalId"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
	Amount        *int64 `json:"amount"`
}

func (b *callbackBody) reference() string {
	if b.Reference != "" {
		return b.Reference
	}
	return b.ExternalID
}
