package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ordersvc "github.com/fatflowers/hotspot/internal/app/service/order"
	"github.com/fatflowers/hotspot/internal/app/service/payment"
	"github.com/fatflowers/hotspot/internal/models"
	"github.com/fatflowers/hotspot/pkg/msisdn"
	"github.com/fatflowers/hotspot/pkg/response"
	"github.com/fatflowers/hotspot/pkg/types"
)

// OrderService is the slice of the order service the HTTP layer uses.
type OrderService interface {
	CreatePending(ctx context.Context, req ordersvc.CreatePendingRequest) (*models.Order, error)
	GetWithVoucher(ctx context.Context, orderID string) (*models.Order, *models.Voucher, error)
}

// PaymentInitiator triggers the provider-side payment prompt.
type PaymentInitiator interface {
	Initiate(ctx context.Context, name types.PaymentProvider, req payment.InitiateRequest) (*payment.InitiateResult, error)
}

type CreateOrderRequest struct {
	PackageID string `json:"package_id" binding:"required,uuid"`
	MSISDN    string `json:"msisdn" binding:"required"`
	Provider  string `json:"provider" binding:"required"`
}

type CreateOrderResponse struct {
	OrderID       string `json:"order_id"`
	Status        string `json:"status"`
	ProviderTxRef string `json:"provider_tx_ref"`
	PollURL       string `json:"poll_url"`
	Message       string `json:"message"`
}

type OrderStatusResponse struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	VoucherCode *string         `json:"voucher_code"`
	AmountUGX   int64           `json:"amount_ugx"`
	MSISDN      string          `json:"msisdn"`
	Provider    string          `json:"provider"`
	Package     *models.Package `json:"package,omitempty"`
}

// @Summary      Create order
// @Description  Creates a PENDING order and triggers the mobile-money prompt.
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        payload body handlers.CreateOrderRequest true "Order request"
// @Success      200  {object}  response.APIResponse[handlers.CreateOrderResponse]
// @Router       /api/v1/orders [post]
func ApiCreateOrder(orders OrderService, payments PaymentInitiator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		provider := types.PaymentProvider(req.Provider)
		if !provider.Valid() {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "unsupported provider"))
			return
		}

		o, err := orders.CreatePending(c.Request.Context(), ordersvc.CreatePendingRequest{
			PackageID: req.PackageID,
			MSISDN:    req.MSISDN,
			Provider:  provider,
		})
		if err != nil {
			code := response.APIResponseCodeError
			if errors.Is(err, ordersvc.ErrPackageNotFound) || errors.Is(err, msisdn.ErrInvalid) {
				code = response.APIResponseCodeBadRequest
			}
			c.JSON(http.StatusOK, response.ErrorT[any](code, err.Error()))
			return
		}

		res, err := payments.Initiate(c.Request.Context(), provider, payment.InitiateRequest{
			MSISDN:    o.MSISDN,
			AmountUGX: o.AmountUGX,
			Reference: o.ProviderTxRef,
		})
		if err != nil {
			// The order stays PENDING; it can only be resolved later by
			// an incoming webhook.
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, "failed to initiate payment"))
			return
		}

		c.JSON(http.StatusOK, response.OKT(CreateOrderResponse{
			OrderID:       o.ID,
			Status:        string(o.Status),
			ProviderTxRef: o.ProviderTxRef,
			PollURL:       "/api/v1/orders/" + o.ID,
			Message:       res.Message,
		}))
	}
}

// @Summary      Order status
// @Description  Returns current order status and voucher code once minted.
// @Tags         Order
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200  {object}  response.APIResponse[handlers.OrderStatusResponse]
// @Router       /api/v1/orders/{id} [get]
func ApiGetOrder(orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, v, err := orders.GetWithVoucher(c.Request.Context(), c.Param("id"))
		if err != nil {
			code := response.APIResponseCodeError
			if errors.Is(err, ordersvc.ErrOrderNotFound) {
				code = response.APIResponseCodeBadRequest
			}
			c.JSON(http.StatusOK, response.ErrorT[any](code, err.Error()))
			return
		}

		resp := OrderStatusResponse{
			ID:        o.ID,
			Status:    string(o.Status),
			AmountUGX: o.AmountUGX,
			MSISDN:    o.MSISDN,
			Provider:  string(o.Provider),
			Package:   o.Package,
		}
		if v != nil {
			resp.VoucherCode = &v.Code
		}
		c.JSON(http.StatusOK, response.OKT(resp))
	}
}

func RegisterOrderRoutes(r gin.IRouter, orders OrderService, payments PaymentInitiator) {
	r.POST("/orders", ApiCreateOrder(orders, payments))
	r.GET("/orders/:id", ApiGetOrder(orders))
}
