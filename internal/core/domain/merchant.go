package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GreenTag marks a sustainability practice a merchant advertises.
// Presentation (icons etc.) is looked up in the transport layer, not here.
type GreenTag string

const (
	GreenTagBYOFriendly          GreenTag = "BYO Friendly"
	GreenTagZeroWaste            GreenTag = "Zero Waste Store"
	GreenTagSustainablePackaging GreenTag = "Sustainable Packaging"
	GreenTagLocalProduce         GreenTag = "Supports Local Produce"
	GreenTagPlantBased           GreenTag = "Plant-Based Options"
)

// GreenTags lists every green tag in display order.
func GreenTags() []GreenTag {
	return []GreenTag{
		GreenTagBYOFriendly,
		GreenTagZeroWaste,
		GreenTagSustainablePackaging,
		GreenTagLocalProduce,
		GreenTagPlantBased,
	}
}

// ParseGreenTag validates a green tag against the closed set.
func ParseGreenTag(s string) (GreenTag, error) {
	for _, gt := range GreenTags() {
		if GreenTag(s) == gt {
			return gt, nil
		}
	}
	return "", &UnknownEnumError{Kind: "green tag", Value: s}
}

// MerchantProfile describes the single merchant operating this ledger.
// Setting it is a full overwrite, never a merge.
type MerchantProfile struct {
	ID              uuid.UUID  `json:"id"`
	MerchantName    string     `json:"merchant_name"`
	Location        *string    `json:"location,omitempty"`
	Address         *string    `json:"address,omitempty"`
	Logo            []byte     `json:"-"` // opaque binary, optional
	DefaultCurrency Currency   `json:"default_currency"`
	GreenTags       []GreenTag `json:"green_tags"`
}

// Validate checks profile construction invariants.
func (p *MerchantProfile) Validate() error {
	if strings.TrimSpace(p.MerchantName) == "" {
		return &ValidationError{Field: "merchant_name", Reason: "must not be empty"}
	}
	if !p.DefaultCurrency.Valid() {
		return &ValidationError{Field: "default_currency", Reason: "unknown currency \"" + string(p.DefaultCurrency) + "\""}
	}
	for _, gt := range p.GreenTags {
		if _, err := ParseGreenTag(string(gt)); err != nil {
			return &ValidationError{Field: "green_tags", Reason: err.Error()}
		}
	}
	return nil
}

// Product is a catalog entry used to build orders in merchant mode.
// Receipts never reference products by id; checkout snapshots name, qty,
// and price into receipt items.
type Product struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category Category        `json:"category"`
}

// Validate checks product construction invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return &ValidationError{Field: "category", Reason: err.Error()}
	}
	return nil
}
