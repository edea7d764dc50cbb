package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/internal/models"
	"github.com/agentprompts/backend/internal/platform/provider"
	"github.com/agentprompts/backend/pkg/types"
)

// memPurchaseRepo is an in-memory purchase.Repository mirroring the database
// semantics the gorm implementation relies on.
type memPurchaseRepo struct {
	mu        sync.Mutex
	byPayment map[string]*models.Purchase
}

func newMemPurchaseRepo() *memPurchaseRepo {
	return &memPurchaseRepo{byPayment: make(map[string]*models.Purchase)}
}

func (m *memPurchaseRepo) FindByPaymentID(ctx context.Context, paymentID string) (*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byPayment[paymentID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPurchaseRepo) FindByUser(ctx context.Context, userID string, status *types.PurchaseStatus) ([]*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []*models.Purchase
	for _, p := range m.byPayment {
		if p.UserID == nil || *p.UserID != userID {
			continue
		}
		if status != nil && p.Status != *status {
			continue
		}
		cp := *p
		rows = append(rows, &cp)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PurchasedAt.After(rows[j].PurchasedAt) })
	return rows, nil
}

func (m *memPurchaseRepo) Insert(ctx context.Context, p *models.Purchase) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byPayment[p.PaymentID]; exists {
		return false, nil
	}
	cp := *p
	m.byPayment[p.PaymentID] = &cp
	return true, nil
}

func (m *memPurchaseRepo) UpdateUserID(ctx context.Context, paymentID, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byPayment[paymentID]
	if !ok {
		return 0, nil
	}
	if p.UserID != nil && *p.UserID != userID {
		return 0, nil
	}
	uid := userID
	p.UserID = &uid
	return 1, nil
}

func (m *memPurchaseRepo) Scan(ctx context.Context, req *purchase.ScanRequest) (*purchase.ScanResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []*models.Purchase
	for _, p := range m.byPayment {
		cp := *p
		rows = append(rows, &cp)
	}
	return &purchase.ScanResponse{Items: rows, Total: int64(len(rows))}, nil
}

// fakeVerifier accepts deliveries carrying "webhook-signature: valid" and
// returns the configured event; anything else fails signature verification.
type fakeVerifier struct {
	event *provider.Event
}

func (f *fakeVerifier) VerifyWebhook(rawBody []byte, headers http.Header) (*provider.Event, error) {
	if headers.Get("webhook-signature") != "valid" {
		return nil, provider.ErrSignatureInvalid
	}
	return f.event, nil
}

// nopRecorder discards audit entries.
type nopRecorder struct{}

func (nopRecorder) Save(ctx context.Context, entry *models.WebhookEventLog) {}
