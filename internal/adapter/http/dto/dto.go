package dto

import (
	"time"

	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"
)

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role" binding:"required,oneof=consumer merchant"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
	Role   string `json:"role"`
}

// ReceiptItemRequest is one line item on a manually entered receipt.
type ReceiptItemRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Qty   int    `json:"qty" binding:"required,gt=0"`
	Price string `json:"price" binding:"required,decimal_amount"`
}

// CreateReceiptRequest is the request body for manual receipt entry.
// Amount and prices travel as strings so no precision is lost in transit.
type CreateReceiptRequest struct {
	Merchant string               `json:"merchant" binding:"required,max=200"`
	Location *string              `json:"location,omitempty" binding:"omitempty,max=200"`
	Amount   string               `json:"amount" binding:"required,decimal_amount"`
	Date     string               `json:"date" binding:"required"`
	Category string               `json:"category" binding:"required,receipt_category"`
	Payment  string               `json:"payment" binding:"required,payment_method"`
	Currency string               `json:"currency" binding:"omitempty,currency_code"`
	Tags     []string             `json:"tags,omitempty" binding:"omitempty,dive,max=50"`
	Items    []ReceiptItemRequest `json:"items,omitempty" binding:"omitempty,dive"`
	Notes    *string              `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// ScanRequest is the request body for raw payload ingestion.
type ScanRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// DeleteReceiptsRequest is the request body for bulk deletion.
type DeleteReceiptsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// ReceiptItemResponse is one line item in a receipt response.
type ReceiptItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Qty      int    `json:"qty"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
}

// ReceiptResponse is the wire shape of one receipt.
type ReceiptResponse struct {
	ID       string                `json:"id"`
	Merchant string                `json:"merchant"`
	Location *string               `json:"location,omitempty"`
	Amount   string                `json:"amount"`
	Date     string                `json:"date"`
	Category string                `json:"category"`
	Payment  string                `json:"payment"`
	Currency string                `json:"currency"`
	Tags     []string              `json:"tags"`
	Items    []ReceiptItemResponse `json:"items,omitempty"`
	Notes    *string               `json:"notes,omitempty"`
}

// ToReceiptResponse converts a domain receipt to its wire shape.
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ID:       r.ID.String(),
		Merchant: r.Merchant,
		Location: r.Location,
		Amount:   r.Amount.String(),
		Date:     r.Date.UTC().Format(time.RFC3339),
		Category: string(r.Category),
		Payment:  string(r.Payment),
		Currency: string(r.Currency),
		Tags:     r.Tags,
		Notes:    r.Notes,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, ReceiptItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Qty:      item.Qty,
			Price:    item.Price.String(),
			Subtotal: item.Subtotal().String(),
		})
	}
	return resp
}

// ToReceiptListResponse converts a receipt slice, preserving order.
func ToReceiptListResponse(receipts []domain.Receipt) []ReceiptResponse {
	out := make([]ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		out = append(out, ToReceiptResponse(&receipts[i]))
	}
	return out
}

// DeleteReceiptsResponse reports how many receipts a bulk delete removed.
type DeleteReceiptsResponse struct {
	Removed int `json:"removed"`
}

// QRPayloadResponse carries the canonical payload string for one receipt.
type QRPayloadResponse struct {
	Payload string `json:"payload"`
}

// ChallengeStatusResponse merges a catalog challenge with its progress.
type ChallengeStatusResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	TargetCount  int    `json:"target_count"`
	Icon         string `json:"icon"`
	CurrentCount int    `json:"current_count"`
	IsCompleted  bool   `json:"is_completed"`
	LastUpdated  string `json:"last_updated"`
}

// ProductRequest is the request body for adding a catalog product.
type ProductRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Price    string `json:"price" binding:"required,decimal_amount"`
	Category string `json:"category" binding:"required,receipt_category"`
}

// ProductResponse is the wire shape of one catalog product.
type ProductResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

// ToProductResponse converts a domain product to its wire shape.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		Price:    p.Price.String(),
		Category: string(p.Category),
	}
}

// ProfileRequest is the request body for replacing the merchant profile.
type ProfileRequest struct {
	MerchantName    string   `json:"merchant_name" binding:"required,max=200"`
	Location        *string  `json:"location,omitempty" binding:"omitempty,max=200"`
	Address         *string  `json:"address,omitempty" binding:"omitempty,max=500"`
	DefaultCurrency string   `json:"default_currency" binding:"required,currency_code"`
	GreenTags       []string `json:"green_tags,omitempty" binding:"omitempty,dive,green_tag"`
}

// GreenTagResponse pairs a green tag with its display icon.
type GreenTagResponse struct {
	Tag  string `json:"tag"`
	Icon string `json:"icon"`
}

// ProfileResponse is the wire shape of the merchant profile.
type ProfileResponse struct {
	ID              string             `json:"id"`
	MerchantName    string             `json:"merchant_name"`
	Location        *string            `json:"location,omitempty"`
	Address         *string            `json:"address,omitempty"`
	DefaultCurrency string             `json:"default_currency"`
	GreenTags       []GreenTagResponse `json:"green_tags"`
}

// greenTagIcons maps each green tag to its display symbol.
var greenTagIcons = map[domain.GreenTag]string{
	domain.GreenTagBYOFriendly:          "cup",
	domain.GreenTagZeroWaste:            "recycle",
	domain.GreenTagSustainablePackaging: "box",
	domain.GreenTagLocalProduce:         "sprout",
	domain.GreenTagPlantBased:           "leaf",
}

// ToProfileResponse converts the domain profile to its wire shape.
func ToProfileResponse(p *domain.MerchantProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:              p.ID.String(),
		MerchantName:    p.MerchantName,
		Location:        p.Location,
		Address:         p.Address,
		DefaultCurrency: string(p.DefaultCurrency),
		GreenTags:       []GreenTagResponse{},
	}
	for _, tag := range p.GreenTags {
		resp.GreenTags = append(resp.GreenTags, GreenTagResponse{
			Tag:  string(tag),
			Icon: greenTagIcons[tag],
		})
	}
	return resp
}

// CheckoutLineRequest selects one catalog product and a quantity.
type CheckoutLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Qty       int    `json:"qty" binding:"required,gt=0"`
}

// CheckoutRequest is the request body for finalizing an order.
type CheckoutRequest struct {
	Lines   []CheckoutLineRequest `json:"lines" binding:"required,min=1,dive"`
	Payment string                `json:"payment" binding:"required,payment_method"`
	Tags    []string              `json:"tags,omitempty" binding:"omitempty,dive,max=50"`
	Notes   *string               `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// RevenueBucketResponse is one series point in a revenue report.
type RevenueBucketResponse struct {
	Start string `json:"start"`
	Total string `json:"total"`
}

// CategoryRevenueResponse is one category line in a revenue report.
type CategoryRevenueResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// TopSellerResponse is one ranked line-item name.
type TopSellerResponse struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// RevenueReportResponse is the wire shape of a revenue report.
type RevenueReportResponse struct {
	Timeframe    string                    `json:"timeframe"`
	Currency     string                    `json:"currency"`
	TotalRevenue string                    `json:"total_revenue"`
	TotalSales   int                       `json:"total_sales"`
	AverageSale  string                    `json:"average_sale"`
	Series       []RevenueBucketResponse   `json:"series"`
	ByCategory   []CategoryRevenueResponse `json:"by_category"`
	TopSellers   []TopSellerResponse       `json:"top_sellers"`
}

// ToRevenueReportResponse converts a revenue report to its wire shape.
func ToRevenueReportResponse(r *ports.RevenueReport) RevenueReportResponse {
	resp := RevenueReportResponse{
		Timeframe:    string(r.Timeframe),
		Currency:     string(r.Currency),
		TotalRevenue: r.TotalRevenue.String(),
		TotalSales:   r.TotalSales,
		AverageSale:  r.AverageSale.String(),
		Series:       []RevenueBucketResponse{},
		ByCategory:   []CategoryRevenueResponse{},
		TopSellers:   []TopSellerResponse{},
	}
	for _, b := range r.Series {
		resp.Series = append(resp.Series, RevenueBucketResponse{
			Start: b.Start.UTC().Format(time.RFC3339),
			Total: b.Total.String(),
		})
	}
	for _, c := range r.ByCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryRevenueResponse{
			Category: string(c.Category),
			Total:    c.Total.String(),
		})
	}
	for _, s := range r.TopSellers {
		resp.TopSellers = append(resp.TopSellers, TopSellerResponse{Name: s.Name, Qty: s.Qty})
	}
	return resp
}

// EcoReportResponse is the wire shape of the eco impact report.
type EcoReportResponse struct {
	CO2AvoidedKg float64 `json:"co2_avoided_kg"`
	WaterSavedL  float64 `json:"water_saved_l"`
	TreesSaved   float64 `json:"trees_saved"`
}
