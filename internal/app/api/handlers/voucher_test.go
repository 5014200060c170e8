package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	vouchersvc "github.com/fatflowers/hotspot/internal/app/service/voucher"
	"github.com/fatflowers/hotspot/internal/models"
	"github.com/fatflowers/hotspot/pkg/response"
	"github.com/fatflowers/hotspot/pkg/types"
)

type stubVouchers struct {
	voucher     *models.Voucher
	verifyErr   error
	redeemErr   error
	redeemCalls int
}

func (s *stubVouchers) Verify(_ context.Context, _ string) (*models.Voucher, error) {
	return s.voucher, s.verifyErr
}

func (s *stubVouchers) Redeem(_ context.Context, _ string) (*models.Voucher, error) {
	s.redeemCalls++
	return s.voucher, s.redeemErr
}

func TestApiVerifyVoucher_ReturnsViewWithoutConsuming(t *testing.T) {
	gin.SetMode(gin.TestMode)
	vouchers := &stubVouchers{voucher: &models.Voucher{
		Code:      "AD-W7K2-M9QX",
		Status:    types.VoucherStatusUnused,
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	r := gin.New()
	RegisterVoucherRoutes(r.Group("/api/v1"), vouchers)

	w := postJSON(t, r, "/api/v1/vouchers/verify", map[string]any{"code": "AD-W7K2-M9QX"})
	require.Equal(t, http.StatusOK, w.Code)

	code, data := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, code)
	require.Contains(t, string(data), "AD-W7K2-M9QX")
	require.Zero(t, vouchers.redeemCalls)
}

func TestApiVerifyVoucher_UsedCodeIsBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	vouchers := &stubVouchers{verifyErr: vouchersvc.ErrAlreadyUsed}
	r := gin.New()
	RegisterVoucherRoutes(r.Group("/api/v1"), vouchers)

	w := postJSON(t, r, "/api/v1/vouchers/verify", map[string]any{"code": "AD-W7K2-M9QX"})

	code, _ := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeBadRequest, code)
}

func TestApiRedeemVoucher_ConsumesCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	vouchers := &stubVouchers{voucher: &models.Voucher{
		Code:      "AD-W7K2-M9QX",
		Status:    types.VoucherStatusUnused,
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	r := gin.New()
	RegisterVoucherRoutes(r.Group("/api/v1"), vouchers)

	w := postJSON(t, r, "/api/v1/vouchers/redeem", map[string]any{"code": "AD-W7K2-M9QX"})

	code, _ := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, code)
	require.Equal(t, 1, vouchers.redeemCalls)
}

func TestApiRedeemVoucher_ExpiredNeverReachesRedeem(t *testing.T) {
	gin.SetMode(gin.TestMode)
	vouchers := &stubVouchers{verifyErr: vouchersvc.ErrExpired}
	r := gin.New()
	RegisterVoucherRoutes(r.Group("/api/v1"), vouchers)

	w := postJSON(t, r, "/api/v1/vouchers/redeem", map[string]any{"code": "AD-W7K2-M9QX"})

	code, _ := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeBadRequest, code)
	require.Zero(t, vouchers.redeemCalls)
}

func TestApiVerifyVoucher_ShortCodeRejectedByBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterVoucherRoutes(r.Group("/api/v1"), &stubVouchers{})

	w := postJSON(t, r, "/api/v1/vouchers/verify", map[string]any{"code": "AD"})

	code, _ := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeBadRequest, code)
}
