package purchase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agentprompts/backend/internal/platform/provider"
	"github.com/agentprompts/backend/pkg/types"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(repo Repository) *Service {
	return NewService(repo, zap.NewNop().Sugar())
}

func paidOrder(paymentID, userID string) *provider.OrderData {
	return &provider.OrderData{
		ID:            paymentID,
		Status:        "paid",
		TotalAmount:   1900,
		Currency:      "usd",
		CustomerEmail: "buyer@example.com",
		CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Metadata:      provider.Metadata{UserID: userID, ProductType: "full_access"},
	}
}

func TestCreateFromPaidOrder(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)

	p, created, err := svc.CreateFromPaidOrder(context.Background(), paidOrder("chk_123", "u1"))
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "chk_123", p.PaymentID)
	require.Equal(t, "u1", *p.UserID)
	require.Equal(t, types.PurchaseStatusCompleted, p.Status)
	require.Equal(t, types.ProductTypeFullAccess, p.ProductType)
	require.Equal(t, int64(1900), p.AmountCents)
	require.Equal(t, "19.00", p.Amount())
}

func TestCreateFromPaidOrder_Idempotent(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)

	first, created, err := svc.CreateFromPaidOrder(context.Background(), paidOrder("chk_123", "u1"))
	require.NoError(t, err)
	require.True(t, created)

	// Redelivery with different amounts must not overwrite the first row.
	redelivery := paidOrder("chk_123", "u1")
	redelivery.TotalAmount = 9999
	second, created, err := svc.CreateFromPaidOrder(context.Background(), redelivery)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, int64(1900), second.AmountCents)
	require.Equal(t, 1, repo.count())
}

func TestCreateFromPaidOrder_ConcurrentDuplicates(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)

	const n = 16
	var wg sync.WaitGroup
	createdCnt := make(chan bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := svc.CreateFromPaidOrder(context.Background(), paidOrder("chk_123", "u1"))
			assert.NoError(t, err)
			createdCnt <- created
		}()
	}
	wg.Wait()
	close(createdCnt)

	wins := 0
	for c := range createdCnt {
		if c {
			wins++
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, repo.count())
}

func TestCreateFromPaidOrder_MissingUserMetadata(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)

	order := paidOrder("chk_123", "")
	_, _, err := svc.CreateFromPaidOrder(context.Background(), order)
	require.True(t, errors.Is(err, ErrMissingUserMetadata))
	require.Equal(t, 0, repo.count())
}

func TestCreateFromPaidOrder_IndividualStack(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)

	order := paidOrder("chk_stack", "u1")
	order.Metadata.ProductType = "individual_stack"
	order.Metadata.ProductID = "prod_stack_1"

	p, created, err := svc.CreateFromPaidOrder(context.Background(), order)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, types.ProductTypeIndividualStack, p.ProductType)
	require.Equal(t, "prod_stack_1", *p.ProductID)
}

func TestAmountConversion_Exact(t *testing.T) {
	repo := newMemRepository()
	svc := newTestService(repo)

	cases := map[int64]string{
		1900:   "19.00",
		1:      "0.01",
		100:    "1.00",
		12345:  "123.45",
		999999: "9999.99",
	}
	for cents, want := range cases {
		order := paidOrder("chk_amount_"+want, "u1")
		order.TotalAmount = cents
		p, _, err := svc.CreateFromPaidOrder(context.Background(), order)
		require.NoError(t, err)
		assert.Equal(t, want, p.Amount(), "cents=%d", cents)
	}
}

func TestLinkToUser_Outcomes(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newMemRepository())
		out, err := svc.LinkToUser(ctx, "chk_missing", "u1")
		require.NoError(t, err)
		require.Equal(t, LinkOutcomeNotFound, out)
	})

	t.Run("links unowned purchase", func(t *testing.T) {
		repo := newMemRepository()
		svc := newTestService(repo)
		order := paidOrder("chk_guest", "u1")
		_, _, err := svc.CreateFromPaidOrder(ctx, order)
		require.NoError(t, err)
		// simulate a guest record: clear the owner
		repo.byPayment["chk_guest"].UserID = nil

		out, err := svc.LinkToUser(ctx, "chk_guest", "u2")
		require.NoError(t, err)
		require.Equal(t, LinkOutcomeLinked, out)

		p, err := svc.FindByPaymentID(ctx, "chk_guest")
		require.NoError(t, err)
		require.Equal(t, "u2", *p.UserID)
	})

	t.Run("already linked to same user is a no-op", func(t *testing.T) {
		svc := newTestService(newMemRepository())
		_, _, err := svc.CreateFromPaidOrder(ctx, paidOrder("chk_1", "u1"))
		require.NoError(t, err)

		out, err := svc.LinkToUser(ctx, "chk_1", "u1")
		require.NoError(t, err)
		require.Equal(t, LinkOutcomeAlreadyLinkedSame, out)
	})

	t.Run("linked to different user conflicts and does not mutate", func(t *testing.T) {
		svc := newTestService(newMemRepository())
		_, _, err := svc.CreateFromPaidOrder(ctx, paidOrder("chk_1", "uA"))
		require.NoError(t, err)

		out, err := svc.LinkToUser(ctx, "chk_1", "uB")
		require.NoError(t, err)
		require.Equal(t, LinkOutcomeConflict, out)

		p, err := svc.FindByPaymentID(ctx, "chk_1")
		require.NoError(t, err)
		require.Equal(t, "uA", *p.UserID)
	})

	t.Run("concurrent double-submit settles on one owner", func(t *testing.T) {
		repo := newMemRepository()
		svc := newTestService(repo)
		_, _, err := svc.CreateFromPaidOrder(ctx, paidOrder("chk_guest", "u1"))
		require.NoError(t, err)
		repo.byPayment["chk_guest"].UserID = nil

		var wg sync.WaitGroup
		outcomes := make(chan LinkOutcome, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out, err := svc.LinkToUser(ctx, "chk_guest", "u9")
				assert.NoError(t, err)
				outcomes <- out
			}()
		}
		wg.Wait()
		close(outcomes)

		for out := range outcomes {
			require.Contains(t, []LinkOutcome{LinkOutcomeLinked, LinkOutcomeAlreadyLinkedSame}, out)
		}
		p, err := svc.FindByPaymentID(ctx, "chk_guest")
		require.NoError(t, err)
		require.Equal(t, "u9", *p.UserID)
	})
}

func TestHasFullAccess(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	svc := newTestService(repo)

	ok, err := svc.HasFullAccess(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)

	// an individual-stack purchase alone must not grant full access
	order := paidOrder("chk_stack", "u1")
	order.Metadata.ProductType = "individual_stack"
	order.Metadata.ProductID = "prod_stack_1"
	_, _, err = svc.CreateFromPaidOrder(ctx, order)
	require.NoError(t, err)

	ok, err = svc.HasFullAccess(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = svc.CreateFromPaidOrder(ctx, paidOrder("chk_full", "u1"))
	require.NoError(t, err)

	ok, err = svc.HasFullAccess(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)

	// refunded purchases do not count
	repo.byPayment["chk_full"].Status = types.PurchaseStatusRefunded
	ok, err = svc.HasFullAccess(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUnlockedStackIDs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemRepository())

	order := paidOrder("chk_stack", "u1")
	order.Metadata.ProductType = "individual_stack"
	order.Metadata.ProductID = "prod_stack_1"
	_, _, err := svc.CreateFromPaidOrder(ctx, order)
	require.NoError(t, err)
	_, _, err = svc.CreateFromPaidOrder(ctx, paidOrder("chk_full", "u1"))
	require.NoError(t, err)

	ids, err := svc.UnlockedStackIDs(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"prod_stack_1"}, ids)
}

func TestFindByUser_OrderedByPurchasedAtDesc(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemRepository())

	older := paidOrder("chk_old", "u1")
	older.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := paidOrder("chk_new", "u1")
	newer.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, _, err := svc.CreateFromPaidOrder(ctx, older)
	require.NoError(t, err)
	_, _, err = svc.CreateFromPaidOrder(ctx, newer)
	require.NoError(t, err)

	rows, err := svc.FindByUser(ctx, "u1", lo.ToPtr(types.PurchaseStatusCompleted))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "chk_new", rows[0].PaymentID)
	require.Equal(t, "chk_old", rows[1].PaymentID)
}
