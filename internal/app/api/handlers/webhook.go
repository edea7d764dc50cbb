package handlers

import (
	"net/http"

	"github.com/agentprompts/backend/internal/app/service/webhookproc"
	"github.com/agentprompts/backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary      Payment webhook
// @Description  Receives provider webhook deliveries. The signature covers the raw body bytes.
// @Tags         Webhook
// @Accept       json
// @Success      202
// @Failure      403
// @Router       /api/v1/payments/webhook [post]
func ApiPaymentWebhook(proc *webhookproc.Processor) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The signature is computed over the exact bytes on the wire, so the
		// body must be read raw before any JSON binding.
		rawBody, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorMsg(response.APIResponseCodeBadRequest, "unreadable body"))
			return
		}

		outcome := proc.Process(c.Request.Context(), rawBody, c.Request.Header)
		c.Status(outcome.HTTPStatus())
	}
}

func RegisterWebhookRoutes(r gin.IRouter, proc *webhookproc.Processor) {
	r.POST("/payments/webhook", ApiPaymentWebhook(proc))
}
