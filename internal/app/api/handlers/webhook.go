package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/hotspot/pkg/logctx"
	"github.com/fatflowers/hotspot/pkg/response"
	"github.com/fatflowers/hotspot/pkg/types"
)

// WebhookIngester runs the ingestion pipeline on the raw request bytes.
type WebhookIngester interface {
	Handle(ctx context.Context, provider types.PaymentProvider, headers http.Header, rawBody []byte) error
}

// apiProviderWebhook handles one provider's callback endpoint. The body
// is captured before any parsing because the provider signature covers
// the exact raw bytes. The response is deliberately uniform: forged or
// unmatched callbacks learn nothing from it.
func apiProviderWebhook(ingester WebhookIngester, provider types.PaymentProvider, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawBody, err := c.GetRawData()
		if err != nil {
			// Nothing was audited; let the provider retry the delivery.
			logctx.FromGin(c, log).Errorw("webhook_body_read_error", "provider", provider, "error", err.Error())
			c.JSON(http.StatusBadGateway, response.ErrorT[any](response.APIResponseCodeError, "acknowledged"))
			return
		}

		logctx.FromGin(c, log).Infow("webhook_received", "provider", provider)
		if err := ingester.Handle(c.Request.Context(), provider, c.Request.Header, rawBody); err != nil {
			// Audit or enqueue failure: the event is not durably stored
			// yet, so a 5xx status makes the provider redeliver.
			logctx.FromGin(c, log).Errorw("webhook_handle_error", "provider", provider, "error", err.Error())
			c.JSON(http.StatusBadGateway, response.ErrorT[any](response.APIResponseCodeError, "acknowledged"))
			return
		}
		c.JSON(http.StatusOK, response.OKT("acknowledged"))
	}
}

// @Summary      MTN MoMo webhook
// @Description  Handles MTN payment callbacks. The body must be the raw signed payload.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.APIResponse[string]
// @Router       /api/v1/webhooks/mtn [post]
func ApiMTNWebhook(ingester WebhookIngester, log *zap.SugaredLogger) gin.HandlerFunc {
	return apiProviderWebhook(ingester, types.PaymentProviderMTN, log)
}

// @Summary      Airtel Money webhook
// @Description  Handles Airtel payment callbacks. The body must be the raw signed payload.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.APIResponse[string]
// @Router       /api/v1/webhooks/airtel [post]
func ApiAirtelWebhook(ingester WebhookIngester, log *zap.SugaredLogger) gin.HandlerFunc {
	return apiProviderWebhook(ingester, types.PaymentProviderAirtel, log)
}

func RegisterWebhookRoutes(r gin.IRouter, ingester WebhookIngester, log *zap.SugaredLogger) {
	r.POST("/webhooks/mtn", ApiMTNWebhook(ingester, log))
	r.POST("/webhooks/airtel", ApiAirtelWebhook(ingester, log))
}
