package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	cfgpkg "github.com/fatflowers/hotspot/pkg/config"
	"github.com/fatflowers/hotspot/pkg/tool"
	"github.com/fatflowers/hotspot/pkg/types"
)

const mtnSignatureHeader = "X-MTN-Signature"

// MTNProvider integrates MTN MoMo Collections.
type MTNProvider struct {
	cfg cfgpkg.MTNConfig
}

func NewMTNProvider(cfg cfgpkg.MTNConfig) *MTNProvider {
	return &MTNProvider{cfg: cfg}
}

func (p *MTNProvider) Name() types.PaymentProvider { return types.PaymentProviderMTN }

func (p *MTNProvider) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	if p.cfg.BaseURL == "" || p.cfg.PrimaryKey == "" {
		return nil, ErrProviderNotConfigured
	}

	// In production this calls the MoMo Collections request-to-pay API.
	return &InitiateResult{
		ProviderReference: "MTN-" + tool.GenerateUUIDV4(),
		Message:           "MTN MoMo prompt has been sent to your phone. Complete the payment to continue.",
	}, nil
}

// VerifyCallback checks the HMAC-SHA256 of the raw body against the
// X-MTN-Signature header (hex encoded, keyed with the collection
// primary key) and normalizes the provider status vocabulary.
func (p *MTNProvider) VerifyCallback(headers http.Header, rawBody []byte) CallbackVerification {
	signature := headers.Get(mtnSignatureHeader)
	if signature == "" {
		return failedVerification()
	}

	mac := hmac.New(sha256.New, []byte(p.cfg.PrimaryKey))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	// Signature length is protocol-fixed, not secret-dependent, so the
	// length check before the constant-time compare leaks nothing.
	if len(signature) != len(expected) {
		return failedVerification()
	}
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return failedVerification()
	}

	var body callbackBody
	if err := json.Unmarshal(rawBody, &body); err != nil {
		return failedVerification()
	}

	status := types.PaymentStatusPending
	switch strings.ToUpper(body.Status) {
	case "SUCCESSFUL":
		status = types.PaymentStatusPaid
	case "FAILED":
		status = types.PaymentStatusFailed
	}

	return CallbackVerification{
		OK:            true,
		Reference:     body.reference(),
		Status:        status,
		TransactionID: body.TransactionID,
		Amount:        body.Amount,
	}
}
