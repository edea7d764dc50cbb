package handlers

import (
	"net/http"
	"strconv"

	"github.com/agentprompts/backend/internal/app/service/eventlog"
	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/pkg/response"
	"github.com/agentprompts/backend/pkg/types"

	"github.com/gin-gonic/gin"
)

type ListPurchasesRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

// @Summary      List Purchases (Admin)
// @Description  Retrieves a paginated and filterable list of all purchases.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body handlers.ListPurchasesRequest true "List purchases request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespListPurchases
// @Router       /api/v1/admin/list_purchases [post]
func ApiListPurchases(purchases *purchase.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListPurchasesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := purchases.Scan(c.Request.Context(), &purchase.ScanRequest{
			Filters:   req.Filters,
			From:      req.From,
			Size:      req.Size,
			SortBy:    req.SortBy,
			SortOrder: req.SortOrder,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      List Webhook Events (Admin)
// @Description  Retrieves the newest webhook audit entries, optionally narrowed to one status.
// @Tags         Admin
// @Produce      json
// @Param        status query string false "status filter (received/processed/ignored/rejected/failed)"
// @Param        limit  query int    false "max entries, default 50"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/webhook_events [get]
func ApiListWebhookEvents(events *eventlog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		rows, err := events.Recent(c.Request.Context(), c.Query("status"), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

func RegisterAdminRoutes(r gin.IRouter, purchases *purchase.Service, events *eventlog.Service) {
	r.POST("/list_purchases", ApiListPurchases(purchases))
	r.GET("/webhook_events", ApiListWebhookEvents(events))
}
