package codec

import (
	"strings"
	"testing"
	"time"

	"receipt-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCSV_Empty(t *testing.T) {
	out, err := EncodeCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "Merchant,Amount,Currency,Date,Category,Payment,Tags\n", out)
}

func TestEncodeCSV_TwoReceipts(t *testing.T) {
	receipts := []domain.Receipt{
		{
			ID:       uuid.New(),
			Merchant: "Kopitiam",
			Amount:   decimal.NewFromInt(5),
			Date:     time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
			Category: domain.CategoryCafe,
			Payment:  domain.PaymentCash,
			Currency: domain.CurrencySGD,
			Tags:     []string{"BYO", "Lunch"},
		},
		{
			ID:       uuid.New(),
			Merchant: "FairPrice",
			Amount:   decimal.NewFromInt(10),
			Date:     time.Date(2025, 9, 2, 18, 30, 0, 0, time.UTC),
			Category: domain.CategoryGroceries,
			Payment:  domain.PaymentCard,
			Currency: domain.CurrencySGD,
		},
	}

	out, err := EncodeCSV(receipts)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3, "header plus one row per receipt")
	assert.Equal(t, "Merchant,Amount,Currency,Date,Category,Payment,Tags", lines[0])
	assert.Equal(t, "Kopitiam,5,SGD,2025-09-01T12:00:00Z,Cafe,Cash,BYO;Lunch", lines[1])
	assert.Equal(t, "FairPrice,10,SGD,2025-09-02T18:30:00Z,Groceries,Card,", lines[2])
}

func TestEncodeCSV_QuotesEmbeddedCommas(t *testing.T) {
	receipts := []domain.Receipt{
		{
			ID:       uuid.New(),
			Merchant: "Tan, Lim & Sons",
			Amount:   decimal.RequireFromString("3.50"),
			Date:     time.Date(2025, 9, 3, 9, 0, 0, 0, time.UTC),
			Category: domain.CategorySnacks,
			Payment:  domain.PaymentQR,
			Currency: domain.CurrencySGD,
		},
	}

	out, err := EncodeCSV(receipts)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Tan, Lim & Sons",3.50,SGD,2025-09-03T09:00:00Z,Snacks,QR,`, lines[1])
}
