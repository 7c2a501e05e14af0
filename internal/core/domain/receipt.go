package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies what a receipt was for.
type Category string

const (
	CategorySnacks    Category = "Snacks"
	CategoryGroceries Category = "Groceries"
	CategoryCafe      Category = "Cafe"
	CategoryTransport Category = "Transport"
	CategoryOther     Category = "Other"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategorySnacks, CategoryGroceries, CategoryCafe, CategoryTransport, CategoryOther}
}

// ParseCategory validates a category value against the closed set.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategorySnacks, CategoryGroceries, CategoryCafe, CategoryTransport, CategoryOther:
		return Category(s), nil
	}
	return "", &UnknownEnumError{Kind: "category", Value: s}
}

// PaymentMethod is how a receipt was paid.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentQR     PaymentMethod = "QR"
	PaymentWallet PaymentMethod = "Apple Pay" // contactless wallet
	PaymentOther  PaymentMethod = "Other"
)

// ParsePaymentMethod validates a payment method against the closed set.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentQR, PaymentWallet, PaymentOther:
		return PaymentMethod(s), nil
	}
	return "", &UnknownEnumError{Kind: "payment method", Value: s}
}

// UnknownEnumError reports a value outside a closed enum set.
type UnknownEnumError struct {
	Kind  string
	Value string
}

func (e *UnknownEnumError) Error() string {
	return "unknown " + e.Kind + " \"" + e.Value + "\""
}

// ReceiptItem is one line item on a receipt. Name, quantity, and price are
// snapshotted at time of sale and stay valid after catalog changes.
type ReceiptItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Qty   int             `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

// Subtotal returns qty × price.
func (i ReceiptItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Receipt is a single recorded transaction. Once created it is never mutated
// in place, only replaced or removed by id.
type Receipt struct {
	ID       uuid.UUID       `json:"id"`
	Merchant string          `json:"merchant"`
	Location *string         `json:"location,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Category Category        `json:"category"`
	Payment  PaymentMethod   `json:"payment"`
	Currency Currency        `json:"currency"`
	Tags     []string        `json:"tags"`
	Items    []ReceiptItem   `json:"items"`
	Notes    *string         `json:"notes,omitempty"`
}

// Validate checks construction invariants. The recorded amount is allowed to
// differ from the item subtotal: amount-only receipts carry no line items.
func (r *Receipt) Validate() error {
	if strings.TrimSpace(r.Merchant) == "" {
		return &ValidationError{Field: "merchant", Reason: "must not be empty"}
	}
	if r.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if _, err := ParseCategory(string(r.Category)); err != nil {
		return &ValidationError{Field: "category", Reason: err.Error()}
	}
	if _, err := ParsePaymentMethod(string(r.Payment)); err != nil {
		return &ValidationError{Field: "payment", Reason: err.Error()}
	}
	if !r.Currency.Valid() {
		return &ValidationError{Field: "currency", Reason: "unknown currency \"" + string(r.Currency) + "\""}
	}
	for _, item := range r.Items {
		if item.Qty <= 0 {
			return &ValidationError{Field: "items", Reason: "quantity must be positive"}
		}
		if strings.TrimSpace(item.Name) == "" {
			return &ValidationError{Field: "items", Reason: "item name must not be empty"}
		}
	}
	return nil
}

// ValidationError reports a malformed receipt or product field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// HasTag reports whether the receipt carries the tag, case-insensitively.
func (r *Receipt) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// AddTag appends a tag unless an equal tag (case-insensitive) is already
// present. Tag order is preserved for display; matching ignores order.
func (r *Receipt) AddTag(tag string) {
	if r.HasTag(tag) {
		return
	}
	r.Tags = append(r.Tags, tag)
}

// ItemSubtotal sums qty × price over all line items. Independent of the
// recorded Amount.
func (r *Receipt) ItemSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range r.Items {
		sum = sum.Add(item.Subtotal())
	}
	return sum
}

// Money returns the recorded total as a currency-tagged value.
func (r *Receipt) Money() Money {
	return Money{Amount: r.Amount, Currency: r.Currency}
}
