package webhookproc

import (
	"context"
	"sync"

	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/internal/models"
	"github.com/agentprompts/backend/pkg/types"
)

// memPurchaseRepo implements purchase.Repository for processor tests.
type memPurchaseRepo struct {
	mu        sync.Mutex
	byPayment map[string]*models.Purchase
	insertErr error
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
		if p.UserID != nil && *p.UserID == userID {
			cp := *p
			rows = append(rows, &cp)
		}
	}
	return rows, nil
}

func (m *memPurchaseRepo) Insert(ctx context.Context, p *models.Purchase) (bool, error) {
	if m.insertErr != nil {
		return false, m.insertErr
	}
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
	if !ok || (p.UserID != nil && *p.UserID != userID) {
		return 0, nil
	}
	uid := userID
	p.UserID = &uid
	return 1, nil
}

func (m *memPurchaseRepo) Scan(ctx context.Context, req *purchase.ScanRequest) (*purchase.ScanResponse, error) {
	return &purchase.ScanResponse{}, nil
}

func (m *memPurchaseRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byPayment)
}
