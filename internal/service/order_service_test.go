package service

import (
	"context"
	"errors"
	"testing"

	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"
	"receipt-ledger/internal/core/ports/mocks"
	"receipt-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupOrder(t *testing.T) (ports.OrderService, *mocks.MockLedgerService, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	ledger := mocks.NewMockLedgerService(ctrl)
	return NewOrderService(ledger), ledger, ctrl
}

func checkoutProfile() *domain.MerchantProfile {
	location := "Tanjong Pagar"
	return &domain.MerchantProfile{
		ID:              uuid.New(),
		MerchantName:    "Green Grocer",
		Location:        &location,
		DefaultCurrency: domain.CurrencySGD,
	}
}

func TestOrderService_Checkout(t *testing.T) {
	svc, ledger, ctrl := setupOrder(t)
	defer ctrl.Finish()

	ctx := context.Background()
	apples := domain.Product{ID: uuid.New(), Name: "Apples", Price: decimal.RequireFromString("3.50"), Category: domain.CategoryGroceries}
	bread := domain.Product{ID: uuid.New(), Name: "Bread", Price: decimal.RequireFromString("2.00"), Category: domain.CategoryGroceries}

	ledger.EXPECT().Profile().Return(checkoutProfile())
	ledger.EXPECT().Products().Return([]domain.Product{apples, bread})
	ledger.EXPECT().Add(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, r domain.Receipt) (*domain.Receipt, error) {
			return &r, nil
		})

	r, err := svc.Checkout(ctx, ports.CheckoutRequest{
		Lines: []ports.CheckoutLine{
			{ProductID: apples.ID, Qty: 2},
			{ProductID: bread.ID, Qty: 1},
		},
		Payment: domain.PaymentQR,
	})
	require.NoError(t, err)

	assert.Equal(t, "Green Grocer", r.Merchant)
	assert.Equal(t, domain.CurrencySGD, r.Currency)
	assert.Equal(t, domain.CategoryGroceries, r.Category)
	assert.True(t, r.Amount.Equal(decimal.RequireFromString("9.00")), "amount is the sum of line subtotals, got %s", r.Amount)

	require.Len(t, r.Items, 2)
	assert.Equal(t, "Apples", r.Items[0].Name)
	assert.Equal(t, 2, r.Items[0].Qty)
	assert.True(t, r.Items[0].Price.Equal(apples.Price), "unit price is snapshotted")
	assert.NotEmpty(t, r.Items[0].ID)
}

func TestOrderService_Checkout_EmptyOrder(t *testing.T) {
	svc, _, ctrl := setupOrder(t)
	defer ctrl.Finish()

	_, err := svc.Checkout(context.Background(), ports.CheckoutRequest{Payment: domain.PaymentCash})
	require.Error(t, err)
	assertCode(t, err, "VAL_001")
}

func TestOrderService_Checkout_NoProfile(t *testing.T) {
	svc, ledger, ctrl := setupOrder(t)
	defer ctrl.Finish()

	ledger.EXPECT().Profile().Return(nil)

	_, err := svc.Checkout(context.Background(), ports.CheckoutRequest{
		Lines:   []ports.CheckoutLine{{ProductID: uuid.New(), Qty: 1}},
		Payment: domain.PaymentCash,
	})
	require.Error(t, err)
	assertCode(t, err, "LED_001")
}

func TestOrderService_Checkout_UnknownProduct(t *testing.T) {
	svc, ledger, ctrl := setupOrder(t)
	defer ctrl.Finish()

	ledger.EXPECT().Profile().Return(checkoutProfile())
	ledger.EXPECT().Products().Return(nil)

	_, err := svc.Checkout(context.Background(), ports.CheckoutRequest{
		Lines:   []ports.CheckoutLine{{ProductID: uuid.New(), Qty: 1}},
		Payment: domain.PaymentCash,
	})
	require.Error(t, err)
	assertCode(t, err, "LED_002")
}

func TestOrderService_Checkout_BadQuantity(t *testing.T) {
	svc, ledger, ctrl := setupOrder(t)
	defer ctrl.Finish()

	ledger.EXPECT().Profile().Return(checkoutProfile())
	ledger.EXPECT().Products().Return(nil)

	_, err := svc.Checkout(context.Background(), ports.CheckoutRequest{
		Lines:   []ports.CheckoutLine{{ProductID: uuid.New(), Qty: 0}},
		Payment: domain.PaymentCash,
	})
	require.Error(t, err)
	assertCode(t, err, "VAL_004")
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}
