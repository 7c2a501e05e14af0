package ports

import (
	"context"
	"time"

	"receipt-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEventType identifies a ledger mutation for subscribers.
type LedgerEventType string

const (
	EventReceiptAdded    LedgerEventType = "receipt_added"
	EventReceiptsDeleted LedgerEventType = "receipts_deleted"
	EventProductAdded    LedgerEventType = "product_added"
	EventProductDeleted  LedgerEventType = "product_deleted"
	EventProfileUpdated  LedgerEventType = "profile_updated"
)

// LedgerEvent notifies subscribers of a completed mutation.
type LedgerEvent struct {
	Type       LedgerEventType
	ReceiptIDs []uuid.UUID
	At         time.Time
}

// LedgerService owns the authoritative in-memory collection of receipts,
// products, and challenge progress. Mutations are serialized internally;
// reads return copies.
type LedgerService interface {
	// Load populates the ledger from the snapshot store. An empty store
	// yields an empty ledger with zeroed challenge progress.
	Load(ctx context.Context) error

	// Receipts returns the collection in most-recent-first order.
	Receipts() []domain.Receipt
	Receipt(id uuid.UUID) (*domain.Receipt, error)
	// Add inserts a receipt at the head and runs the incremental challenge
	// update. The receipt must already be validated at the boundary.
	Add(ctx context.Context, r domain.Receipt) (*domain.Receipt, error)
	// Delete removes every receipt whose id is in ids and runs a full
	// challenge recompute. Missing ids are ignored (idempotent deletion).
	// Returns the number of receipts actually removed.
	Delete(ctx context.Context, ids []uuid.UUID) (int, error)

	Products() []domain.Product
	AddProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	// DeleteProduct is a no-op when the id is absent.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	Profile() *domain.MerchantProfile
	// SetProfile replaces the profile wholesale; there is no merge.
	SetProfile(ctx context.Context, profile domain.MerchantProfile) error

	Progress() []domain.ChallengeProgress

	// Subscribe registers a mutation listener. The returned cancel func
	// must be called to release the subscription. Slow consumers miss
	// events rather than blocking mutations.
	Subscribe(buffer int) (<-chan LedgerEvent, func())
}

// CheckoutLine references a catalog product when building an order.
type CheckoutLine struct {
	ProductID uuid.UUID
	Qty       int
}

// CheckoutRequest holds validated input for finalizing a point-of-sale order.
type CheckoutRequest struct {
	Lines   []CheckoutLine
	Payment domain.PaymentMethod
	Tags    []string
	Notes   *string
}

// OrderService turns catalog selections into finalized receipts.
type OrderService interface {
	// Checkout snapshots the selected products into receipt items, sums
	// their subtotals into the receipt amount, and adds the receipt to the
	// ledger.
	Checkout(ctx context.Context, req CheckoutRequest) (*domain.Receipt, error)
}

// RevenueBucket is one time-windowed aggregation point.
type RevenueBucket struct {
	Start time.Time       `json:"start"`
	Total decimal.Decimal `json:"total"`
}

// CategoryRevenue is the per-category sum for the filtered window.
type CategoryRevenue struct {
	Category domain.Category `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// TopSeller is one ranked line-item name with its total quantity sold.
type TopSeller struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// RevenueReport bundles every revenue aggregate for one timeframe and one
// currency. Receipts in other currencies are excluded, never converted.
type RevenueReport struct {
	Timeframe    domain.Timeframe  `json:"timeframe"`
	Currency     domain.Currency   `json:"currency"`
	TotalRevenue decimal.Decimal   `json:"total_revenue"`
	TotalSales   int               `json:"total_sales"`
	AverageSale  decimal.Decimal   `json:"average_sale"`
	Series       []RevenueBucket   `json:"series"`
	ByCategory   []CategoryRevenue `json:"by_category"`
	TopSellers   []TopSeller       `json:"top_sellers"`
}

// EcoReport holds the environmental-impact proxies derived from receipt
// counts.
type EcoReport struct {
	CO2AvoidedKg float64 `json:"co2_avoided_kg"`
	WaterSavedL  float64 `json:"water_saved_l"`
	TreesSaved   float64 `json:"trees_saved"`
}

// AnalyticsService derives spending and impact metrics from the ledger.
// All methods are synchronous, pure functions over the current snapshot.
type AnalyticsService interface {
	Revenue(tf domain.Timeframe, currency domain.Currency, now time.Time) *RevenueReport
	Eco(now time.Time) EcoReport
}

// RegisterRequest holds validated input for account registration.
type RegisterRequest struct {
	Username string
	Password string
	Role     domain.Role
}

// LoginResult is a successful authentication outcome.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Role      domain.Role
}

// AuthService resolves credentials into a session role. The ledger core
// never authenticates; it only consumes the resolved role.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// HashService handles password hashing.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenClaims holds the parsed session token claims.
type TokenClaims struct {
	UserID uuid.UUID
	Role   domain.Role
}

// TokenService handles session token operations.
type TokenService interface {
	Generate(userID uuid.UUID, role domain.Role) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}
