package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agentprompts/backend/internal/models"
	"github.com/agentprompts/backend/internal/platform/provider"
	"github.com/agentprompts/backend/pkg/logctx"
	"github.com/agentprompts/backend/pkg/metrics"
	"github.com/agentprompts/backend/pkg/tool"
	"github.com/agentprompts/backend/pkg/types"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ErrMissingUserMetadata marks an order.paid event delivered without a
// userId. This is a data-contract violation on the provider side, not a
// transient failure: redelivery would carry the same missing field, so
// callers log it and acknowledge instead of soliciting a retry.
var ErrMissingUserMetadata = errors.New("order metadata has no userId")

// LinkOutcome is the result of attempting to attach a purchase to a user.
type LinkOutcome string

const (
	LinkOutcomeLinked            LinkOutcome = "linked"
	LinkOutcomeAlreadyLinkedSame LinkOutcome = "already_linked_same_user"
	LinkOutcomeConflict          LinkOutcome = "conflict_different_user"
	LinkOutcomeNotFound          LinkOutcome = "not_found"
)

type Service struct {
	repo Repository
	log  *zap.SugaredLogger
}

func NewService(repo Repository, log *zap.SugaredLogger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) FindByPaymentID(ctx context.Context, paymentID string) (*models.Purchase, error) {
	return s.repo.FindByPaymentID(ctx, paymentID)
}

func (s *Service) FindByUser(ctx context.Context, userID string, status *types.PurchaseStatus) ([]*models.Purchase, error) {
	return s.repo.FindByUser(ctx, userID, status)
}

func (s *Service) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	return s.repo.Scan(ctx, req)
}

// CreateFromPaidOrder records a paid order exactly once. The order ID is the
// idempotency key: a redelivered event returns the existing record unchanged
// with created=false. The stored status is always COMPLETED because
// order.paid semantically means the order settled.
func (s *Service) CreateFromPaidOrder(ctx context.Context, order *provider.OrderData) (*models.Purchase, bool, error) {
	if order == nil || order.ID == "" {
		return nil, false, fmt.Errorf("invalid paid order")
	}
	if order.Metadata.UserID == "" {
		return nil, false, ErrMissingUserMetadata
	}

	productType := types.ProductType(order.Metadata.ProductType)
	if !productType.Valid() {
		productType = types.ProductTypeFullAccess
	}

	purchasedAt := order.CreatedAt
	if purchasedAt.IsZero() {
		purchasedAt = time.Now()
	}

	p := &models.Purchase{
		ID:              tool.GenerateUUIDV7(),
		PaymentID:       order.ID,
		UserID:          lo.ToPtr(order.Metadata.UserID),
		ProductType:     productType,
		AmountCents:     order.TotalAmount,
		Currency:        order.Currency,
		PaymentProvider: types.PaymentProviderCreem,
		Status:          types.PurchaseStatusCompleted,
		CustomerEmail:   order.CustomerEmail,
		PurchasedAt:     purchasedAt,
	}
	if order.Metadata.ProductID != "" {
		p.ProductID = lo.ToPtr(order.Metadata.ProductID)
	}

	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, false, err
	}
	if created {
		metrics.PurchasesCreated.WithLabelValues(string(productType)).Inc()
		return p, true, nil
	}

	// Lost the insert race or the event is a redelivery: fetch the row the
	// first delivery created and return it unchanged.
	existing, err := s.repo.FindByPaymentID(ctx, order.ID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("purchase %s vanished after duplicate insert", order.ID)
	}
	metrics.DuplicateWebhooks.Inc()
	logctx.FromCtx(ctx, s.log).Warnw("duplicate_webhook_suppressed", "payment_id", order.ID)
	return existing, false, nil
}

// LinkToUser attaches an unowned purchase to userID. It is the only mutation
// path for user_id after creation. The conditional UPDATE closes the
// check-then-act race: two concurrent link attempts for the same payment ID
// both resolve to a consistent outcome.
//
// Authorization is the caller's job; this is a pure conditional update.
func (s *Service) LinkToUser(ctx context.Context, paymentID, userID string) (LinkOutcome, error) {
	existing, err := s.repo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return LinkOutcomeNotFound, nil
	}
	if existing.OwnedBy(userID) {
		return LinkOutcomeAlreadyLinkedSame, nil
	}
	if existing.UserID != nil {
		return LinkOutcomeConflict, nil
	}

	rows, err := s.repo.UpdateUserID(ctx, paymentID, userID)
	if err != nil {
		return "", err
	}
	if rows > 0 {
		return LinkOutcomeLinked, nil
	}

	// Zero rows means a concurrent linker won between our read and update;
	// re-read to report who owns it now.
	current, err := s.repo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return "", err
	}
	switch {
	case current == nil:
		return LinkOutcomeNotFound, nil
	case current.OwnedBy(userID):
		return LinkOutcomeAlreadyLinkedSame, nil
	default:
		return LinkOutcomeConflict, nil
	}
}

// HasFullAccess reports whether the user holds at least one COMPLETED
// full-access purchase. Deliberately uncached: a client polling right after
// the webhook lands must observe the new record.
func (s *Service) HasFullAccess(ctx context.Context, userID string) (bool, error) {
	rows, err := s.repo.FindByUser(ctx, userID, lo.ToPtr(types.PurchaseStatusCompleted))
	if err != nil {
		return false, err
	}
	return lo.ContainsBy(rows, func(p *models.Purchase) bool {
		return p.ProductType == types.ProductTypeFullAccess
	}), nil
}

// UnlockedStackIDs returns the provider product IDs of individually
// purchased stacks.
func (s *Service) UnlockedStackIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.repo.FindByUser(ctx, userID, lo.ToPtr(types.PurchaseStatusCompleted))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, p := range rows {
		if p.ProductType == types.ProductTypeIndividualStack && p.ProductID != nil {
			ids = append(ids, *p.ProductID)
		}
	}
	return lo.Uniq(ids), nil
}
