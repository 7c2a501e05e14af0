package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"
	"receipt-ledger/internal/core/ports/mocks"
	"receipt-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupLedger(t *testing.T) (ports.LedgerService, *mocks.MockLedgerStore, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockLedgerStore(ctrl)
	svc := NewLedgerService(store, zerolog.Nop())
	return svc, store, ctrl
}

func TestLedgerService_Load_EmptyStore(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store.EXPECT().LoadSnapshot(ctx).Return(nil, nil)

	require.NoError(t, svc.Load(ctx))
	assert.Empty(t, svc.Receipts())
	assert.Empty(t, svc.Products())
	assert.Nil(t, svc.Profile())

	progress := svc.Progress()
	require.Len(t, progress, 3)
	for _, p := range progress {
		assert.Zero(t, p.CurrentCount)
		assert.False(t, p.IsCompleted)
	}
}

func TestLedgerService_Load_RatchetsStoredCompletion(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store.EXPECT().LoadSnapshot(ctx).Return(&domain.Snapshot{
		Progress: []domain.ChallengeProgress{
			{ChallengeID: "Eco Shopper", CurrentCount: 3, IsCompleted: true, LastUpdated: time.Now()},
		},
	}, nil)

	require.NoError(t, svc.Load(ctx))

	eco := progressFor(t, svc.Progress(), "Eco Shopper")
	assert.True(t, eco.IsCompleted, "stored completion survives a snapshot without matching receipts")
}

func TestLedgerService_Load_StoreFailure(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store.EXPECT().LoadSnapshot(ctx).Return(nil, errors.New("connection refused"))

	err := svc.Load(ctx)
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SYS_002", appErr.Code)
}

func TestLedgerService_Add_HeadInsertOrder(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store.EXPECT().SaveReceipt(ctx, gomock.Any()).Return(nil).Times(2)
	store.EXPECT().SaveProgress(ctx, gomock.Any()).Return(nil).Times(2)

	first := testReceipt(domain.CategoryCafe, time.Now())
	second := testReceipt(domain.CategorySnacks, time.Now())

	_, err := svc.Add(ctx, first)
	require.NoError(t, err)
	_, err = svc.Add(ctx, second)
	require.NoError(t, err)

	receipts := svc.Receipts()
	require.Len(t, receipts, 2)
	assert.Equal(t, second.ID, receipts[0].ID, "newest receipt sits at the head")
	assert.Equal(t, first.ID, receipts[1].ID)
}

func TestLedgerService_Add_AdvancesProgress(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store.EXPECT().SaveReceipt(ctx, gomock.Any()).Return(nil)
	store.EXPECT().SaveProgress(ctx, gomock.Any()).Return(nil)

	_, err := svc.Add(ctx, testReceipt(domain.CategoryTransport, time.Now()))
	require.NoError(t, err)

	assert.Equal(t, 1, progressFor(t, svc.Progress(), "Green Commuter").CurrentCount)
}

func TestLedgerService_Add_StoreFailureLeavesStateUnchanged(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store.EXPECT().SaveReceipt(ctx, gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.Add(ctx, testReceipt(domain.CategoryTransport, time.Now()))
	require.Error(t, err)

	assert.Empty(t, svc.Receipts())
	assert.Zero(t, progressFor(t, svc.Progress(), "Green Commuter").CurrentCount)
}

func TestLedgerService_Receipt_NotFound(t *testing.T) {
	svc, _, ctrl := setupLedger(t)
	defer ctrl.Finish()

	_, err := svc.Receipt(uuid.New())
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "LED_404", appErr.Code)
}

func TestLedgerService_Delete_IgnoresMissingIDs(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store.EXPECT().SaveReceipt(ctx, gomock.Any()).Return(nil)
	store.EXPECT().SaveProgress(ctx, gomock.Any()).Return(nil)
	r, err := svc.Add(ctx, testReceipt(domain.CategoryCafe, time.Now()))
	require.NoError(t, err)

	// Only the existing id triggers a store write.
	store.EXPECT().DeleteReceipts(ctx, []uuid.UUID{r.ID}).Return(nil)
	store.EXPECT().SaveProgress(ctx, gomock.Any()).Return(nil)

	removed, err := svc.Delete(ctx, []uuid.UUID{r.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Empty(t, svc.Receipts())

	// Deleting the same ids again is a no-op.
	removed, err = svc.Delete(ctx, []uuid.UUID{r.ID})
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestLedgerService_Delete_CompletionSurvives(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store.EXPECT().SaveReceipt(ctx, gomock.Any()).Return(nil).Times(3)
	store.EXPECT().SaveProgress(ctx, gomock.Any()).Return(nil).Times(3)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		r, err := svc.Add(ctx, testReceipt(domain.CategoryGroceries, time.Now()))
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}
	require.True(t, progressFor(t, svc.Progress(), "Eco Shopper").IsCompleted)

	store.EXPECT().DeleteReceipts(ctx, gomock.Any()).Return(nil)
	store.EXPECT().SaveProgress(ctx, gomock.Any()).Return(nil)

	removed, err := svc.Delete(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	eco := progressFor(t, svc.Progress(), "Eco Shopper")
	assert.True(t, eco.IsCompleted, "completion is permanent for the session")
	assert.Zero(t, eco.CurrentCount, "count reflects the surviving receipts")
}

func TestLedgerService_Products(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store.EXPECT().SaveProduct(ctx, gomock.Any()).Return(nil)

	p, err := svc.AddProduct(ctx, domain.Product{
		Name:     "Reusable Cup",
		Price:    decimal.RequireFromString("12.90"),
		Category: domain.CategoryOther,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	require.Len(t, svc.Products(), 1)

	store.EXPECT().DeleteProduct(ctx, p.ID).Return(nil)
	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	assert.Empty(t, svc.Products())

	// Absent id: no store call, no error.
	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
}

func TestLedgerService_Profile(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	assert.Nil(t, svc.Profile())

	store.EXPECT().SaveProfile(ctx, gomock.Any()).Return(nil)
	profile := domain.MerchantProfile{
		ID:              uuid.New(),
		MerchantName:    "Green Grocer",
		DefaultCurrency: domain.CurrencySGD,
		GreenTags:       []domain.GreenTag{domain.GreenTagZeroWaste},
	}
	require.NoError(t, svc.SetProfile(ctx, profile))

	got := svc.Profile()
	require.NotNil(t, got)
	assert.Equal(t, "Green Grocer", got.MerchantName)

	// Mutating the returned copy does not leak into the ledger.
	got.MerchantName = "Changed"
	assert.Equal(t, "Green Grocer", svc.Profile().MerchantName)
}

func TestLedgerService_Subscribe(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	events, cancel := svc.Subscribe(4)
	defer cancel()

	store.EXPECT().SaveReceipt(ctx, gomock.Any()).Return(nil)
	store.EXPECT().SaveProgress(ctx, gomock.Any()).Return(nil)
	r, err := svc.Add(ctx, testReceipt(domain.CategoryCafe, time.Now()))
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, ports.EventReceiptAdded, ev.Type)
		assert.Equal(t, []uuid.UUID{r.ID}, ev.ReceiptIDs)
	case <-time.After(time.Second):
		t.Fatal("expected a receipt_added event")
	}
}

func TestLedgerService_Subscribe_SlowConsumerDoesNotBlock(t *testing.T) {
	svc, store, ctrl := setupLedger(t)
	defer ctrl.Finish()

	ctx := context.Background()
	_, cancel := svc.Subscribe(1)
	defer cancel()

	store.EXPECT().SaveReceipt(ctx, gomock.Any()).Return(nil).Times(3)
	store.EXPECT().SaveProgress(ctx, gomock.Any()).Return(nil).Times(3)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			_, err := svc.Add(ctx, testReceipt(domain.CategoryCafe, time.Now()))
			assert.NoError(t, err)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mutations blocked on a full subscriber buffer")
	}
}
