package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1")
	RegisterCatalogRoutes(g, nil, nil, nil)
	RegisterPaymentRoutes(g, g, nil, nil, nil, nil, nil, nil)
	RegisterAccountRoutes(g, nil, nil, nil)
	RegisterWebhookRoutes(g, nil)
	RegisterAdminRoutes(g.Group("/admin"), nil, nil)
	RegisterHealthRoutes(r)

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	require.True(t, contains("GET /api/v1/stacks"))
	require.True(t, contains("GET /api/v1/agents"))
	require.True(t, contains("GET /api/v1/stats"))
	require.True(t, contains("POST /api/v1/payments/create-checkout"))
	require.True(t, contains("GET /api/v1/payments/verify"))
	require.True(t, contains("POST /api/v1/payments/webhook"))
	require.True(t, contains("POST /api/v1/auth/link-purchase"))
	require.True(t, contains("GET /api/v1/user/purchases"))
	require.True(t, contains("POST /api/v1/admin/list_purchases"))
	require.True(t, contains("GET /api/v1/admin/webhook_events"))
	require.True(t, contains("GET /healthz"))
}
