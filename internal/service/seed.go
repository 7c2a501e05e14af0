package service

import (
	"context"
	"time"

	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Seed loads a small demo dataset into an empty ledger. A ledger that
// already holds receipts or products is left untouched.
func Seed(ctx context.Context, ledger ports.LedgerService, log zerolog.Logger) error {
	if len(ledger.Receipts()) > 0 || len(ledger.Products()) > 0 {
		log.Debug().Msg("ledger not empty, skipping seed")
		return nil
	}

	now := time.Now().UTC()
	day := 24 * time.Hour

	receipts := []domain.Receipt{
		{
			Merchant: "Ya Kun Kaya Toast",
			Amount:   decimal.RequireFromString("6.40"),
			Date:     now.Add(-2 * time.Hour),
			Category: domain.CategoryCafe,
			Payment:  domain.PaymentQR,
			Currency: domain.CurrencySGD,
			Tags:     []string{"Breakfast", "QR"},
		},
		{
			Merchant: "NTUC FairPrice",
			Amount:   decimal.RequireFromString("48.35"),
			Date:     now.Add(-1 * day),
			Category: domain.CategoryGroceries,
			Payment:  domain.PaymentCard,
			Currency: domain.CurrencySGD,
			Tags:     []string{"Weekly Run", "BYO"},
		},
		{
			Merchant: "SBS Transit",
			Amount:   decimal.RequireFromString("1.70"),
			Date:     now.Add(-1*day - 3*time.Hour),
			Category: domain.CategoryTransport,
			Payment:  domain.PaymentCard,
			Currency: domain.CurrencySGD,
			Tags:     []string{"Bus"},
		},
		{
			Merchant: "Old Chang Kee",
			Amount:   decimal.RequireFromString("3.20"),
			Date:     now.Add(-2 * day),
			Category: domain.CategorySnacks,
			Payment:  domain.PaymentCash,
			Currency: domain.CurrencySGD,
			Tags:     []string{},
		},
		{
			Merchant: "Toast Box",
			Amount:   decimal.RequireFromString("5.90"),
			Date:     now.Add(-3 * day),
			Category: domain.CategoryCafe,
			Payment:  domain.PaymentWallet,
			Currency: domain.CurrencySGD,
			Tags:     []string{"BYO Cup"},
		},
	}
	// Oldest first so the ledger head ends up on the newest receipt.
	for i := len(receipts) - 1; i >= 0; i-- {
		if _, err := ledger.Add(ctx, receipts[i]); err != nil {
			return err
		}
	}

	products := []domain.Product{
		{Name: "Kopi", Price: decimal.RequireFromString("1.80"), Category: domain.CategoryCafe},
		{Name: "Teh C", Price: decimal.RequireFromString("1.90"), Category: domain.CategoryCafe},
		{Name: "Kaya Toast Set", Price: decimal.RequireFromString("5.60"), Category: domain.CategoryCafe},
		{Name: "Curry Puff", Price: decimal.RequireFromString("1.60"), Category: domain.CategorySnacks},
	}
	for _, p := range products {
		if _, err := ledger.AddProduct(ctx, p); err != nil {
			return err
		}
	}

	log.Info().
		Int("receipts", len(receipts)).
		Int("products", len(products)).
		Msg("seeded demo data")
	return nil
}
