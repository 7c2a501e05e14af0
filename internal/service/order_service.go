package service

import (
	"context"
	"time"

	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"
	"receipt-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// orderService implements ports.OrderService.
type orderService struct {
	ledger ports.LedgerService
}

// NewOrderService creates the point-of-sale order builder.
func NewOrderService(ledger ports.LedgerService) ports.OrderService {
	return &orderService{ledger: ledger}
}

// Checkout snapshots the selected catalog products into receipt line items
// and inserts the finished receipt into the ledger. Name, quantity, and unit
// price are copied at build time, so later catalog edits or deletions never
// rewrite an issued receipt. The receipt amount is the sum of line subtotals,
// the merchant identity and currency come from the profile, and the category
// is taken from the first line's product.
func (s *orderService) Checkout(ctx context.Context, req ports.CheckoutRequest) (*domain.Receipt, error) {
	if len(req.Lines) == 0 {
		return nil, apperror.Validation("Order must contain at least one line")
	}

	profile := s.ledger.Profile()
	if profile == nil {
		return nil, apperror.ErrProfileNotSet()
	}

	catalog := s.ledger.Products()
	byID := make(map[uuid.UUID]*domain.Product, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = &catalog[i]
	}

	items := make([]domain.ReceiptItem, 0, len(req.Lines))
	amount := decimal.Zero
	var category domain.Category
	for _, line := range req.Lines {
		if line.Qty <= 0 {
			return nil, apperror.ErrInvalidQuantity()
		}
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, apperror.ErrUnknownProduct(line.ProductID.String())
		}
		item := domain.ReceiptItem{
			ID:    uuid.NewString(),
			Name:  product.Name,
			Qty:   line.Qty,
			Price: product.Price,
		}
		items = append(items, item)
		amount = amount.Add(item.Subtotal())
		if category == "" {
			category = product.Category
		}
	}

	r := domain.Receipt{
		ID:       uuid.New(),
		Merchant: profile.MerchantName,
		Location: profile.Location,
		Amount:   amount,
		Date:     time.Now().UTC(),
		Category: category,
		Payment:  req.Payment,
		Currency: profile.DefaultCurrency,
		Tags:     req.Tags,
		Items:    items,
		Notes:    req.Notes,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if err := r.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	return s.ledger.Add(ctx, r)
}
