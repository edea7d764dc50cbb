package handlers

import (
	"net/http"
	"time"

	"github.com/agentprompts/backend/internal/app/api/middleware"
	"github.com/agentprompts/backend/internal/app/service/analytics"
	"github.com/agentprompts/backend/internal/app/service/catalog"
	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/internal/models"
	"github.com/agentprompts/backend/internal/platform/provider"
	"github.com/agentprompts/backend/pkg/config"
	"github.com/agentprompts/backend/pkg/logctx"
	"github.com/agentprompts/backend/pkg/metrics"
	"github.com/agentprompts/backend/pkg/response"
	"github.com/agentprompts/backend/pkg/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreateCheckoutRequest struct {
	ProductType types.ProductType `json:"productType"`
	// StackSlug selects the stack for individual_stack purchases.
	StackSlug string `json:"stackSlug,omitempty"`
	// Embed requests an embeddable checkout; the origin is derived from the
	// public base URL.
	Embed bool `json:"embed,omitempty"`
}

type CreateCheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
	SessionID   string `json:"sessionId"`
}

// @Summary      Create checkout
// @Description  Creates a hosted checkout session for the authenticated user.
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        request body handlers.CreateCheckoutRequest true "checkout request"
// @Success      200  {object}  handlers.RespCreateCheckout
// @Router       /api/v1/payments/create-checkout [post]
func ApiCreateCheckout(cfg *config.Config, client *provider.Client, cat *catalog.Service, track *analytics.Dispatcher, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorMsg(response.APIResponseCodeBadRequest, "invalid request body"))
			return
		}
		if !req.ProductType.Valid() {
			c.JSON(http.StatusBadRequest, response.ErrorMsg(response.APIResponseCodeBadRequest, "invalid productType"))
			return
		}

		var stackProductID string
		if req.ProductType == types.ProductTypeIndividualStack {
			stack := cat.StackBySlug(req.StackSlug)
			if stack == nil || stack.ProviderProductID == "" {
				c.JSON(http.StatusBadRequest, response.ErrorMsg(response.APIResponseCodeBadRequest, "unknown stackSlug"))
				return
			}
			stackProductID = stack.ProviderProductID
		}

		productID := cfg.CheckoutProductID(req.ProductType, stackProductID)
		if productID == "" {
			logctx.FromGin(c, log).Errorw("checkout_not_configured", "product_type", req.ProductType)
			c.JSON(http.StatusInternalServerError, response.ErrorMsg(response.APIResponseCodeError, "payments not configured"))
			return
		}

		userID := middleware.UserID(c)
		createReq := &provider.CreateCheckoutRequest{
			ProductID:     productID,
			CustomerEmail: middleware.UserEmail(c),
			SuccessURL:    cfg.PublicBaseURL + "/purchase/success?checkout_id=" + provider.CheckoutIDPlaceholder,
			Metadata: provider.Metadata{
				UserID:      userID,
				UserEmail:   middleware.UserEmail(c),
				ProductType: string(req.ProductType),
				ProductID:   stackProductID,
			},
		}
		if req.Embed {
			createReq.EmbedOrigin = cfg.PublicBaseURL
		}

		session, err := client.CreateCheckoutSession(c.Request.Context(), createReq)
		if err != nil {
			logctx.FromGin(c, log).Errorw("checkout_create_failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.ErrorMsg(response.APIResponseCodeError, "failed to create checkout"))
			return
		}

		metrics.CheckoutsCreated.Inc()
		track.Track("checkout_created", userID, map[string]any{"product_type": req.ProductType})

		c.JSON(http.StatusOK, response.OKT(CreateCheckoutResponse{
			CheckoutURL: session.URL,
			SessionID:   session.ID,
		}))
	}
}

type VerifyCheckoutResponse struct {
	CheckoutID    string           `json:"checkoutId"`
	Status        string           `json:"status"`
	Amount        string           `json:"amount"`
	Currency      string           `json:"currency"`
	CustomerEmail string           `json:"customerEmail"`
	CreatedAt     time.Time        `json:"createdAt"`
	Purchase      *models.Purchase `json:"purchase"`
	HasAccount    bool             `json:"hasAccount"`
	IsLoggedIn    bool             `json:"isLoggedIn"`
}

// @Summary      Verify checkout
// @Description  Reports the provider-side state of a checkout plus the local purchase record, for success-page polling.
// @Tags         Payments
// @Produce      json
// @Param        checkout_id query string true "checkout session ID"
// @Success      200  {object}  handlers.RespVerifyCheckout
// @Router       /api/v1/payments/verify [get]
func ApiVerifyCheckout(client *provider.Client, purchases *purchase.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		checkoutID := c.Query("checkout_id")
		if checkoutID == "" {
			c.JSON(http.StatusBadRequest, response.ErrorMsg(response.APIResponseCodeBadRequest, "missing checkout_id"))
			return
		}

		session, err := client.GetCheckoutSession(c.Request.Context(), checkoutID)
		if err != nil {
			// absence is a provider-side anomaly here, not a client error
			logctx.FromGin(c, log).Errorw("checkout_verify_failed", "checkout_id", checkoutID, "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.ErrorMsg(response.APIResponseCodeError, "failed to verify checkout"))
			return
		}

		rec, err := purchases.FindByPaymentID(c.Request.Context(), checkoutID)
		if err != nil {
			logctx.FromGin(c, log).Errorw("purchase_lookup_failed", "checkout_id", checkoutID, "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.ErrorMsg(response.APIResponseCodeError, "failed to verify checkout"))
			return
		}

		out := VerifyCheckoutResponse{
			CheckoutID:    checkoutID,
			Status:        session.Status,
			Amount:        minorUnitsToAmount(session.TotalAmount),
			Currency:      session.Currency,
			CustomerEmail: session.CustomerEmail,
			CreatedAt:     session.CreatedAt,
			Purchase:      rec,
			HasAccount:    session.Metadata.UserID != "" || (rec != nil && rec.UserID != nil),
			IsLoggedIn:    middleware.UserID(c) != "",
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func minorUnitsToAmount(cents int64) string {
	p := models.Purchase{AmountCents: cents}
	return p.Amount()
}

func RegisterPaymentRoutes(authed, optional gin.IRouter, cfg *config.Config, client *provider.Client, cat *catalog.Service, purchases *purchase.Service, track *analytics.Dispatcher, log *zap.SugaredLogger) {
	authed.POST("/payments/create-checkout", ApiCreateCheckout(cfg, client, cat, track, log))
	optional.GET("/payments/verify", ApiVerifyCheckout(client, purchases, log))
}
