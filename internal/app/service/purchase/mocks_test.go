package purchase

import (
	"context"
	"sort"
	"sync"

	"github.com/agentprompts/backend/internal/models"
	"github.com/agentprompts/backend/pkg/types"
)

// memRepository is an in-memory Repository used by unit tests. It mirrors
// the database semantics the gorm implementation relies on: a unique index
// on payment_id and an atomic conditional update for user_id.
type memRepository struct {
	mu        sync.Mutex
	byPayment map[string]*models.Purchase
	insertErr error
	updateErr error
}

func newMemRepository() *memRepository {
	return &memRepository{byPayment: make(map[string]*models.Purchase)}
}

func (m *memRepository) FindByPaymentID(ctx context.Context, paymentID string) (*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byPayment[paymentID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memRepository) FindByUser(ctx context.Context, userID string, status *types.PurchaseStatus) ([]*models.Purchase, error) {
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

func (m *memRepository) Insert(ctx context.Context, p *models.Purchase) (bool, error) {
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

func (m *memRepository) UpdateUserID(ctx context.Context, paymentID, userID string) (int64, error) {
	if m.updateErr != nil {
		return 0, m.updateErr
	}
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

func (m *memRepository) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []*models.Purchase
	for _, p := range m.byPayment {
		cp := *p
		rows = append(rows, &cp)
	}
	return &ScanResponse{Items: rows, Total: int64(len(rows))}, nil
}

func (m *memRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byPayment)
}
