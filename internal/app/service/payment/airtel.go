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

const (
	airtelSignatureHeader = "X-Airtel-Signature"
	airtelTimestampHeader = "X-Airtel-Timestamp"
)

// AirtelProvider integrates Airtel Money.
type AirtelProvider struct {
	cfg cfgpkg.AirtelConfig
}

func NewAirtelProvider(cfg cfgpkg.AirtelConfig) *AirtelProvider {
	return &AirtelProvider{cfg: cfg}
}

func (p *AirtelProvider) Name() types.PaymentProvider { return types.PaymentProviderAirtel }

func (p *AirtelProvider) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	if p.cfg.BaseURL == "" || p.cfg.ClientID == "" {
		return nil, ErrProviderNotConfigured
	}

	// In production this calls the Airtel Money collections API.
	return &InitiateResult{
		ProviderReference: "ATL-" + tool.GenerateUUIDV4(),
		Message:           "Airtel Money prompt has been initiated. Complete the payment to continue.",
	}, nil
}

// VerifyCallback checks HMAC-SHA256 over "<timestamp>.<raw body>"
// against the X-Airtel-Signature header, keyed with the client secret.
func (p *AirtelProvider) VerifyCallback(headers http.Header, rawBody []byte) CallbackVerification {
	signature := headers.Get(airtelSignatureHeader)
	timestamp := headers.Get(airtelTimestampHeader)
	if signature == "" || timestamp == "" {
		return failedVerification()
	}

	mac := hmac.New(sha256.New, []byte(p.cfg.ClientSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

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
	case "SUCCESS":
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
