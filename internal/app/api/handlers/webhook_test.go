package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/internal/app/service/webhookproc"
	"github.com/agentprompts/backend/internal/platform/provider"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func webhookRouter(ev *provider.Event, repo *memPurchaseRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()
	purchases := purchase.NewService(repo, log)
	proc := webhookproc.New(&fakeVerifier{event: ev}, purchases, nopRecorder{}, log)

	r := gin.New()
	RegisterWebhookRoutes(r.Group("/api/v1"), proc)
	return r
}

func paidEvent(paymentID, userID string) *provider.Event {
	return &provider.Event{
		ID:   "evt_1",
		Type: provider.EventTypeOrderPaid,
		Data: provider.OrderData{
			ID:            paymentID,
			Status:        "paid",
			TotalAmount:   1900,
			Currency:      "USD",
			CustomerEmail: "buyer@example.com",
			CreatedAt:     time.Now(),
			Metadata:      provider.Metadata{UserID: userID, ProductType: "full_access"},
		},
	}
}

func deliver(r *gin.Engine, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(`{"type":"order.paid"}`))
	if signature != "" {
		req.Header.Set("webhook-signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookEndpoint_PaidOrderAccepted(t *testing.T) {
	repo := newMemPurchaseRepo()
	r := webhookRouter(paidEvent("chk_123", "u1"), repo)

	w := deliver(r, "valid")
	require.Equal(t, http.StatusAccepted, w.Code)

	rec, err := repo.FindByPaymentID(context.Background(), "chk_123")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "u1", *rec.UserID)
}

func TestWebhookEndpoint_BadSignatureForbidden(t *testing.T) {
	repo := newMemPurchaseRepo()
	r := webhookRouter(paidEvent("chk_123", "u1"), repo)

	w := deliver(r, "forged")
	require.Equal(t, http.StatusForbidden, w.Code)

	rec, err := repo.FindByPaymentID(context.Background(), "chk_123")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestWebhookEndpoint_RedeliveryAccepted(t *testing.T) {
	repo := newMemPurchaseRepo()
	r := webhookRouter(paidEvent("chk_123", "u1"), repo)

	require.Equal(t, http.StatusAccepted, deliver(r, "valid").Code)
	require.Equal(t, http.StatusAccepted, deliver(r, "valid").Code)
}

func TestWebhookEndpoint_MissingUserMetadataAccepted(t *testing.T) {
	repo := newMemPurchaseRepo()
	r := webhookRouter(paidEvent("chk_guest", ""), repo)

	// Acknowledged so the provider stops redelivering, but no record is made.
	w := deliver(r, "valid")
	require.Equal(t, http.StatusAccepted, w.Code)

	rec, err := repo.FindByPaymentID(context.Background(), "chk_guest")
	require.NoError(t, err)
	require.Nil(t, rec)
}
