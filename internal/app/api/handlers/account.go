package handlers

import (
	"net/http"

	"github.com/agentprompts/backend/internal/app/api/middleware"
	"github.com/agentprompts/backend/internal/app/service/analytics"
	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/internal/models"
	"github.com/agentprompts/backend/pkg/logctx"
	"github.com/agentprompts/backend/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LinkPurchaseRequest struct {
	CheckoutID string `json:"checkoutId"`
	// UserID is optional; when present it must match the session. Guest
	// account-creation flows send it for explicitness.
	UserID string `json:"userId,omitempty"`
}

// @Summary      Link purchase
// @Description  Attaches a guest purchase to the authenticated account. Linking someone else's purchase is rejected.
// @Tags         Account
// @Accept       json
// @Produce      json
// @Param        request body handlers.LinkPurchaseRequest true "link request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/auth/link-purchase [post]
func ApiLinkPurchase(purchases *purchase.Service, track *analytics.Dispatcher, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LinkPurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.CheckoutID == "" {
			c.JSON(http.StatusBadRequest, response.ErrorMsg(response.APIResponseCodeBadRequest, "missing checkoutId"))
			return
		}

		userID := middleware.UserID(c)
		if req.UserID != "" && req.UserID != userID {
			// a user must not link purchases into someone else's account
			c.JSON(http.StatusForbidden, response.ErrorMsg(response.APIResponseCodeForbidden, "userId does not match session"))
			return
		}

		outcome, err := purchases.LinkToUser(c.Request.Context(), req.CheckoutID, userID)
		if err != nil {
			logctx.FromGin(c, log).Errorw("link_purchase_failed", "checkout_id", req.CheckoutID, "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.ErrorMsg(response.APIResponseCodeError, "failed to link purchase"))
			return
		}

		switch outcome {
		case purchase.LinkOutcomeLinked:
			track.Track("purchase_linked", userID, map[string]any{"checkout_id": req.CheckoutID})
			c.JSON(http.StatusOK, response.OKT(gin.H{"message": "purchase linked"}))
		case purchase.LinkOutcomeAlreadyLinkedSame:
			c.JSON(http.StatusOK, response.OKT(gin.H{"message": "purchase already linked"}))
		case purchase.LinkOutcomeNotFound:
			c.JSON(http.StatusNotFound, response.ErrorMsg(response.APIResponseCodeNotFound, "purchase not found"))
		case purchase.LinkOutcomeConflict:
			// shouldn't happen with a well-behaved client; indicates an
			// upstream auth-flow bug rather than a normal branch
			logctx.FromGin(c, log).Warnw("link_purchase_conflict", "checkout_id", req.CheckoutID, "user_id", userID)
			c.JSON(http.StatusConflict, response.ErrorMsg(response.APIResponseCodeConflict, "purchase linked to another account"))
		}
	}
}

type UserPurchasesResponse struct {
	HasFullAccess    bool               `json:"hasFullAccess"`
	UnlockedStackIDs []string           `json:"unlockedStackIds"`
	Purchases        []*models.Purchase `json:"purchases"`
}

// @Summary      List own purchases
// @Description  Returns the authenticated user's purchases and entitlement.
// @Tags         Account
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/user/purchases [get]
func ApiUserPurchases(purchases *purchase.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		rows, err := purchases.FindByUser(c.Request.Context(), userID, nil)
		if err != nil {
			logctx.FromGin(c, log).Errorw("user_purchases_failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.ErrorMsg(response.APIResponseCodeError, "failed to load purchases"))
			return
		}
		hasAccess, err := purchases.HasFullAccess(c.Request.Context(), userID)
		if err != nil {
			logctx.FromGin(c, log).Errorw("user_entitlement_failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.ErrorMsg(response.APIResponseCodeError, "failed to load purchases"))
			return
		}
		unlocked, err := purchases.UnlockedStackIDs(c.Request.Context(), userID)
		if err != nil {
			logctx.FromGin(c, log).Errorw("user_unlocked_stacks_failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.ErrorMsg(response.APIResponseCodeError, "failed to load purchases"))
			return
		}

		c.JSON(http.StatusOK, response.OKT(UserPurchasesResponse{
			HasFullAccess:    hasAccess,
			UnlockedStackIDs: unlocked,
			Purchases:        rows,
		}))
	}
}

func RegisterAccountRoutes(r gin.IRouter, purchases *purchase.Service, track *analytics.Dispatcher, log *zap.SugaredLogger) {
	r.POST("/auth/link-purchase", ApiLinkPurchase(purchases, track, log))
	r.GET("/user/purchases", ApiUserPurchases(purchases, log))
}
