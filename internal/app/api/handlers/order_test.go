package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	ordersvc "github.com/fatflowers/hotspot/internal/app/service/order"
	"github.com/fatflowers/hotspot/internal/app/service/payment"
	"github.com/fatflowers/hotspot/internal/models"
	"github.com/fatflowers/hotspot/pkg/response"
	"github.com/fatflowers/hotspot/pkg/types"
)

type stubOrders struct {
	created   *models.Order
	createErr error
	order     *models.Order
	voucher   *models.Voucher
	getErr    error
}

func (s *stubOrders) CreatePending(_ context.Context, _ ordersvc.CreatePendingRequest) (*models.Order, error) {
	return s.created, s.createErr
}

func (s *stubOrders) GetWithVoucher(_ context.Context, _ string) (*models.Order, *models.Voucher, error) {
	return s.order, s.voucher, s.getErr
}

type stubInitiator struct {
	result *payment.InitiateResult
	err    error
	calls  int
}

func (s *stubInitiator) Initiate(_ context.Context, _ types.PaymentProvider, _ payment.InitiateRequest) (*payment.InitiateResult, error) {
	s.calls++
	return s.result, s.err
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (response.APIResponseCode, json.RawMessage) {
	t.Helper()
	var env struct {
		Code response.APIResponseCode `json:"code"`
		Data json.RawMessage          `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Code, env.Data
}

func TestApiCreateOrder_ReturnsPendingOrderAndPrompt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	orders := &stubOrders{created: &models.Order{
		ID:            "ord-1",
		Status:        types.OrderStatusPending,
		MSISDN:        "256701234567",
		AmountUGX:     5000,
		ProviderTxRef: "ref-1",
	}}
	payments := &stubInitiator{result: &payment.InitiateResult{Message: "approve the prompt on your phone"}}

	r := gin.New()
	RegisterOrderRoutes(r.Group("/api/v1"), orders, payments)

	w := postJSON(t, r, "/api/v1/orders", map[string]any{
		"package_id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		"msisdn":     "0701234567",
		"provider":   "MTN",
	})
	require.Equal(t, http.StatusOK, w.Code)

	code, data := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, code)

	var resp CreateOrderResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Equal(t, "ord-1", resp.OrderID)
	require.Equal(t, "PENDING", resp.Status)
	require.Equal(t, "ref-1", resp.ProviderTxRef)
	require.Equal(t, "/api/v1/orders/ord-1", resp.PollURL)
	require.Equal(t, 1, payments.calls)
}

func TestApiCreateOrder_RejectsUnknownProvider(t *testing.T) {
	gin.SetMode(gin.TestMode)
	payments := &stubInitiator{}
	r := gin.New()
	RegisterOrderRoutes(r.Group("/api/v1"), &stubOrders{}, payments)

	w := postJSON(t, r, "/api/v1/orders", map[string]any{
		"package_id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		"msisdn":     "0701234567",
		"provider":   "VISA",
	})
	require.Equal(t, http.StatusOK, w.Code)

	code, _ := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeBadRequest, code)
	require.Zero(t, payments.calls)
}

func TestApiCreateOrder_InactivePackageIsBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	orders := &stubOrders{createErr: ordersvc.ErrPackageNotFound}
	r := gin.New()
	RegisterOrderRoutes(r.Group("/api/v1"), orders, &stubInitiator{})

	w := postJSON(t, r, "/api/v1/orders", map[string]any{
		"package_id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		"msisdn":     "0701234567",
		"provider":   "AIRTEL",
	})

	code, _ := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeBadRequest, code)
}

func TestApiCreateOrder_InitiateFailureKeepsGenericError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	orders := &stubOrders{created: &models.Order{ID: "ord-2", Status: types.OrderStatusPending}}
	payments := &stubInitiator{err: errors.New("momo upstream timeout")}
	r := gin.New()
	RegisterOrderRoutes(r.Group("/api/v1"), orders, payments)

	w := postJSON(t, r, "/api/v1/orders", map[string]any{
		"package_id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		"msisdn":     "0701234567",
		"provider":   "MTN",
	})

	code, data := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeError, code)
	// Upstream detail must not leak to the client.
	require.NotContains(t, string(data), "upstream")
}

func TestApiGetOrder_IncludesVoucherCodeOncePaid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	orders := &stubOrders{
		order: &models.Order{
			ID:        "ord-3",
			Status:    types.OrderStatusPaid,
			MSISDN:    "256701234567",
			Provider:  types.PaymentProviderMTN,
			AmountUGX: 2000,
		},
		voucher: &models.Voucher{Code: "AD-W7K2-M9QX"},
	}
	r := gin.New()
	RegisterOrderRoutes(r.Group("/api/v1"), orders, &stubInitiator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/ord-3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	code, data := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, code)

	var resp OrderStatusResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Equal(t, "PAID", resp.Status)
	require.NotNil(t, resp.VoucherCode)
	require.Equal(t, "AD-W7K2-M9QX", *resp.VoucherCode)
}

func TestApiGetOrder_PendingHasNoVoucher(t *testing.T) {
	gin.SetMode(gin.TestMode)
	orders := &stubOrders{order: &models.Order{ID: "ord-4", Status: types.OrderStatusPending}}
	r := gin.New()
	RegisterOrderRoutes(r.Group("/api/v1"), orders, &stubInitiator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/ord-4", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	code, data := decodeEnvelope(t, w)
	require.Equal(t, response.APIResponseCodeOK, code)

	var resp OrderStatusResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Nil(t, resp.VoucherCode)
}
