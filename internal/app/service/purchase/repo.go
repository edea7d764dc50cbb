package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentprompts/backend/internal/models"
	"github.com/agentprompts/backend/pkg/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the persistence boundary for purchase records. The gorm
// implementation relies on the payment_id unique index and conditional
// updates for concurrency correctness; no application-level locks.
type Repository interface {
	FindByPaymentID(ctx context.Context, paymentID string) (*models.Purchase, error)
	// FindByUser returns the user's purchases ordered by purchased_at
	// descending. A nil status matches every status.
	FindByUser(ctx context.Context, userID string, status *types.PurchaseStatus) ([]*models.Purchase, error)
	// Insert persists a new record. Returns false without error when a row
	// with the same payment_id already exists (conflict suppressed).
	Insert(ctx context.Context, p *models.Purchase) (bool, error)
	// UpdateUserID atomically assigns user_id where it is currently NULL or
	// already the given user. Returns the number of rows changed.
	UpdateUserID(ctx context.Context, paymentID, userID string) (int64, error)
	// Scan is the admin listing with CommonFilter expressions.
	Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error)
}

type ScanRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanResponse struct {
	Items []*models.Purchase `json:"items"`
	Total int64              `json:"total"`
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByPaymentID(ctx context.Context, paymentID string) (*models.Purchase, error) {
	var p models.Purchase
	err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase by payment id: %w", err)
	}
	return &p, nil
}

func (r *gormRepository) FindByUser(ctx context.Context, userID string, status *types.PurchaseStatus) ([]*models.Purchase, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var rows []*models.Purchase
	if err := q.Order("purchased_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return rows, nil
}

// Insert uses ON CONFLICT DO NOTHING on the payment_id unique index, so two
// concurrent deliveries of the same order race safely; exactly one wins.
func (r *gormRepository) Insert(ctx context.Context, p *models.Purchase) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "payment_id"}}, DoNothing: true}).
		Create(p)
	if res.Error != nil {
		return false, fmt.Errorf("failed to insert purchase: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) UpdateUserID(ctx context.Context, paymentID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("payment_id = ? AND (user_id IS NULL OR user_id = ?)", paymentID, userID).
		Update("user_id", userID)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to link purchase: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

func (r *gormRepository) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := r.db.WithContext(ctx).Model(&models.Purchase{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count purchases: %w", err)
	}

	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy == "" {
		req.SortBy = "purchased_at"
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})

	var rows []*models.Purchase
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return &ScanResponse{Items: rows, Total: total}, nil
}
