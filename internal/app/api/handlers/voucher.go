package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	vouchersvc "github.com/fatflowers/hotspot/internal/app/service/voucher"
	"github.com/fatflowers/hotspot/internal/models"
	"github.com/fatflowers/hotspot/pkg/response"
)

// VoucherService is the manual verify/redeem surface of the registry.
type VoucherService interface {
	Verify(ctx context.Context, code string) (*models.Voucher, error)
	Redeem(ctx context.Context, code string) (*models.Voucher, error)
}

type VoucherCodeRequest struct {
	Code string `json:"code" binding:"required,min=6"`
}

type VoucherView struct {
	Code      string          `json:"code"`
	Status    string          `json:"status"`
	ExpiresAt time.Time       `json:"expires_at"`
	Package   *models.Package `json:"package,omitempty"`
}

func voucherErrorCode(err error) response.APIResponseCode {
	if errors.Is(err, vouchersvc.ErrNotFound) ||
		errors.Is(err, vouchersvc.ErrAlreadyUsed) ||
		errors.Is(err, vouchersvc.ErrExpired) {
		return response.APIResponseCodeBadRequest
	}
	return response.APIResponseCodeError
}

// @Summary      Verify voucher
// @Description  Checks a voucher code without consuming it.
// @Tags         Voucher
// @Accept       json
// @Produce      json
// @Param        payload body handlers.VoucherCodeRequest true "Voucher code"
// @Success      200  {object}  response.APIResponse[handlers.VoucherView]
// @Router       /api/v1/vouchers/verify [post]
func ApiVerifyVoucher(vouchers VoucherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VoucherCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		v, err := vouchers.Verify(c.Request.Context(), req.Code)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](voucherErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(VoucherView{
			Code:      v.Code,
			Status:    string(v.Status),
			ExpiresAt: v.ExpiresAt,
			Package:   v.EffectivePackage(),
		}))
	}
}

// @Summary      Redeem voucher
// @Description  Consumes a voucher code; exactly one caller can win.
// @Tags         Voucher
// @Accept       json
// @Produce      json
// @Param        payload body handlers.VoucherCodeRequest true "Voucher code"
// @Success      200  {object}  response.APIResponse[string]
// @Router       /api/v1/vouchers/redeem [post]
func ApiRedeemVoucher(vouchers VoucherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VoucherCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if _, err := vouchers.Verify(c.Request.Context(), req.Code); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](voucherErrorCode(err), err.Error()))
			return
		}
		if _, err := vouchers.Redeem(c.Request.Context(), req.Code); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](voucherErrorCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT("voucher redeemed"))
	}
}

func RegisterVoucherRoutes(r gin.IRouter, vouchers VoucherService) {
	r.POST("/vouchers/verify", ApiVerifyVoucher(vouchers))
	r.POST("/vouchers/redeem", ApiRedeemVoucher(vouchers))
}
