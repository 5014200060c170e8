package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cfgpkg "github.com/fatflowers/hotspot/pkg/config"
	"github.com/fatflowers/hotspot/pkg/types"
)

func hexHMAC(secret string, parts ...string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	for _, p := range parts {
		mac.Write([]byte(p))
	}
	return hex.EncodeToString(mac.Sum(nil))
}

func TestMTNVerifyCallback_RejectsMissingSignature(t *testing.T) {
	p := NewMTNProvider(cfgpkg.MTNConfig{PrimaryKey: "secret"})
	res := p.VerifyCallback(http.Header{}, []byte(`{"reference":"ref","status":"SUCCESSFUL"}`))
	require.False(t, res.OK)
	require.Equal(t, types.PaymentStatusFailed, res.Status)
	require.Empty(t, res.Reference)
}

func TestMTNVerifyCallback_RejectsCorruptedSignature(t *testing.T) {
	p := NewMTNProvider(cfgpkg.MTNConfig{PrimaryKey: "secret"})
	body := []byte(`{"reference":"ref-123","status":"SUCCESSFUL","amount":1000}`)
	sig := hexHMAC("secret", string(body))
	corrupted := "0" + sig[1:]
	if corrupted == sig {
		corrupted = "1" + sig[1:]
	}

	h := http.Header{}
	h.Set("X-MTN-Signature", corrupted)
	res := p.VerifyCallback(h, body)
	require.False(t, res.OK)
}

func TestMTNVerifyCallback_RejectsWrongLengthSignature(t *testing.T) {
	p := NewMTNProvider(cfgpkg.MTNConfig{PrimaryKey: "secret"})
	body := []byte(`{"reference":"ref-123","status":"SUCCESSFUL"}`)

	h := http.Header{}
	h.Set("X-MTN-Signature", "deadbeef")
	res := p.VerifyCallback(h, body)
	require.False(t, res.OK)
}

func TestMTNVerifyCallback_AcceptsValidSignature(t *testing.T) {
	p := NewMTNProvider(cfgpkg.MTNConfig{PrimaryKey: "secret"})
	body := []byte(`{"reference":"ref-123","status":"SUCCESSFUL","transactionId":"TX1","amount":1000}`)

	h := http.Header{}
	h.Set("X-MTN-Signature", hexHMAC("secret", string(body)))
	res := p.VerifyCallback(h, body)
	require.True(t, res.OK)
	require.Equal(t, types.PaymentStatusPaid, res.Status)
	require.Equal(t, "ref-123", res.Reference)
	require.Equal(t, "TX1", res.TransactionID)
	require.NotNil(t, res.Amount)
	require.EqualValues(t, 1000, *res.Amount)
}

func TestMTNVerifyCallback_NormalizesStatuses(t *testing.T) {
	p := NewMTNProvider(cfgpkg.MTNConfig{PrimaryKey: "secret"})
	cases := map[string]types.PaymentStatus{
		"SUCCESSFUL": types.PaymentStatusPaid,
		"successful": types.PaymentStatusPaid,
		"FAILED":     types.PaymentStatusFailed,
		"ONGOING":    types.PaymentStatusPending,
		"":           types.PaymentStatusPending,
	}
	for raw, want := range cases {
		body := []byte(`{"reference":"r","status":"` + raw + `"}`)
		h := http.Header{}
		h.Set("X-MTN-Signature", hexHMAC("secret", string(body)))
		res := p.VerifyCallback(h, body)
		require.True(t, res.OK, raw)
		require.Equal(t, want, res.Status, raw)
	}
}

func TestMTNVerifyCallback_FallsBackToExternalID(t *testing.T) {
	p := NewMTNProvider(cfgpkg.MTNConfig{PrimaryKey: "secret"})
	body := []byte(`{"externalId":"ext-9","status":"SUCCESSFUL"}`)
	h := http.Header{}
	h.Set("X-MTN-Signature", hexHMAC("secret", string(body)))
	res := p.VerifyCallback(h, body)
	require.True(t, res.OK)
	require.Equal(t, "ext-9", res.Reference)
}

func TestMTNVerifyCallback_RejectsMalformedBody(t *testing.T) {
	p := NewMTNProvider(cfgpkg.MTNConfig{PrimaryKey: "secret"})
	body := []byte(`not json`)
	h := http.Header{}
	h.Set("X-MTN-Signature", hexHMAC("secret", string(body)))
	res := p.VerifyCallback(h, body)
	require.False(t, res.OK)
	require.Equal(t, types.PaymentStatusFailed, res.Status)
}

func TestMTNInitiate_RequiresConfiguration(t *testing.T) {
	p := NewMTNProvider(cfgpkg.MTNConfig{})
	_, err := p.Initiate(context.Background(), InitiateRequest{MSISDN: "256772123456", AmountUGX: 5000, Reference: "ref"})
	require.ErrorIs(t, err, ErrProviderNotConfigured)
}

func TestMTNInitiate_ReturnsPromptMessage(t *testing.T) {
	p := NewMTNProvider(cfgpkg.MTNConfig{BaseURL: "https://momo.example", PrimaryKey: "k"})
	res, err := p.Initiate(context.Background(), InitiateRequest{MSISDN: "256772123456", AmountUGX: 5000, Reference: "ref"})
	require.NoError(t, err)
	require.Contains(t, res.ProviderReference, "MTN-")
	require.NotEmpty(t, res.Message)
}

func TestAirtelVerifyCallback_AcceptsValidSignature(t *testing.T) {
	p := NewAirtelProvider(cfgpkg.AirtelConfig{ClientSecret: "airsecret"})
	body := []byte(`{"reference":"ref-456","status":"SUCCESS","amount":5000}`)
	ts := time.Now().UTC().Format(time.RFC3339)

	h := http.Header{}
	h.Set("X-Airtel-Signature", hexHMAC("airsecret", ts, ".", string(body)))
	h.Set("X-Airtel-Timestamp", ts)
	res := p.VerifyCallback(h, body)
	require.True(t, res.OK)
	require.Equal(t, types.PaymentStatusPaid, res.Status)
	require.Equal(t, "ref-456", res.Reference)
}

func TestAirtelVerifyCallback_RejectsMissingTimestamp(t *testing.T) {
	p := NewAirtelProvider(cfgpkg.AirtelConfig{ClientSecret: "airsecret"})
	body := []byte(`{"reference":"ref-456","status":"SUCCESS"}`)
	h := http.Header{}
	h.Set("X-Airtel-Signature", hexHMAC("airsecret", string(body)))
	res := p.VerifyCallback(h, body)
	require.False(t, res.OK)
}

func TestAirtelVerifyCallback_SignatureCoversTimestamp(t *testing.T) {
	p := NewAirtelProvider(cfgpkg.AirtelConfig{ClientSecret: "airsecret"})
	body := []byte(`{"reference":"ref-456","status":"SUCCESS"}`)
	ts := time.Now().UTC().Format(time.RFC3339)

	h := http.Header{}
	h.Set("X-Airtel-Signature", hexHMAC("airsecret", ts, ".", string(body)))
	h.Set("X-Airtel-Timestamp", "2001-01-01T00:00:00Z")
	res := p.VerifyCallback(h, body)
	require.False(t, res.OK)
}

func TestServiceVerifyCallback_UnsupportedProvider(t *testing.T) {
	svc := NewService(&cfgpkg.Config{}, zapNop())
	res := svc.VerifyCallback(types.PaymentProvider("VODAFONE"), http.Header{}, []byte(`{}`))
	require.False(t, res.OK)
}

func TestServiceInitiate_DispatchesByTag(t *testing.T) {
	cfg := &cfgpkg.Config{}
	cfg.Providers.Airtel = cfgpkg.AirtelConfig{BaseURL: "https://airtel.example", ClientID: "cid"}
	svc := NewService(cfg, zapNop())

	res, err := svc.Initiate(context.Background(), types.PaymentProviderAirtel, InitiateRequest{Reference: "r"})
	require.NoError(t, err)
	require.Contains(t, res.ProviderReference, "ATL-")

	_, err = svc.Initiate(context.Background(), types.PaymentProviderMTN, InitiateRequest{Reference: "r"})
	require.ErrorIs(t, err, ErrProviderNotConfigured)
}
