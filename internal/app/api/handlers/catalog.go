package handlers

import (
	"net/http"

	"github.com/agentprompts/backend/internal/app/api/middleware"
	"github.com/agentprompts/backend/internal/app/service/catalog"
	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/pkg/logctx"
	"github.com/agentprompts/backend/pkg/response"
	"github.com/agentprompts/backend/pkg/types"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

func premiumFlag(c *gin.Context) *bool {
	switch c.Query("premium") {
	case "true":
		return lo.ToPtr(true)
	case "false":
		return lo.ToPtr(false)
	}
	return nil
}

// @Summary      List stacks
// @Description  Returns catalog stacks, optionally filtered by query, technology, or premium flag.
// @Tags         Catalog
// @Produce      json
// @Param        q          query  string  false  "free-text search"
// @Param        technology query  string  false  "technology filter"
// @Param        premium    query  bool    false  "premium filter"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/stacks [get]
func ApiListStacks(cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stacks := cat.Stacks(catalog.StackFilter{
			Query:      c.Query("q"),
			Technology: c.Query("technology"),
			Premium:    premiumFlag(c),
		})
		c.JSON(http.StatusOK, response.OKT(stacks))
	}
}

// @Summary      List agents
// @Description  Returns catalog agents. Premium prompt bodies are included only for entitled users.
// @Tags         Catalog
// @Produce      json
// @Param        q        query  string  false  "free-text search"
// @Param        category query  string  false  "category filter"
// @Param        premium  query  bool    false  "premium filter"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/agents [get]
func ApiListAgents(cat *catalog.Service, purchases *purchase.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		agents := cat.Agents(catalog.AgentFilter{
			Query:    c.Query("q"),
			Category: c.Query("category"),
			Premium:  premiumFlag(c),
		})

		entitled := false
		if userID := middleware.UserID(c); userID != "" {
			ok, err := purchases.HasFullAccess(c.Request.Context(), userID)
			if err != nil {
				// catalog browsing stays available; premium bodies just stay hidden
				logctx.FromGin(c, log).Errorw("entitlement_check_failed", "error", err.Error())
			}
			entitled = ok
		}

		if !entitled {
			agents = lo.Map(agents, func(a *types.Agent, _ int) *types.Agent {
				return catalog.RedactAgent(a)
			})
		}
		c.JSON(http.StatusOK, response.OKT(agents))
	}
}

// @Summary      Catalog stats
// @Description  Returns aggregate catalog counts.
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/stats [get]
func ApiCatalogStats(cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OKT(cat.Stats()))
	}
}

func RegisterCatalogRoutes(r gin.IRouter, cat *catalog.Service, purchases *purchase.Service, log *zap.SugaredLogger) {
	r.GET("/stacks", ApiListStacks(cat))
	r.GET("/agents", ApiListAgents(cat, purchases, log))
	r.GET("/stats", ApiCatalogStats(cat))
}
