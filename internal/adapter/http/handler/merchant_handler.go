package handler

import (
	"receipt-ledger/internal/adapter/http/dto"
	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"
	"receipt-ledger/pkg/apperror"
	"receipt-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MerchantHandler handles the merchant mode endpoints: the product catalog,
// point-of-sale checkout, and the shop profile.
type MerchantHandler struct {
	ledger   ports.LedgerService
	orderSvc ports.OrderService
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(ledger ports.LedgerService, orderSvc ports.OrderService) *MerchantHandler {
	return &MerchantHandler{ledger: ledger, orderSvc: orderSvc}
}

// ListProducts handles GET /api/v1/merchant/products.
func (h *MerchantHandler) ListProducts(c *gin.Context) {
	products := h.ledger.Products()
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, dto.ToProductResponse(&products[i]))
	}
	response.OK(c, out)
}

// AddProduct handles POST /api/v1/merchant/products.
func (h *MerchantHandler) AddProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStruct(&req)

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	p := domain.Product{
		ID:       uuid.New(),
		Name:     req.Name,
		Price:    price,
		Category: category,
	}
	if err := p.Validate(); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	added, err := h.ledger.AddProduct(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToProductResponse(added))
}

// DeleteProduct handles DELETE /api/v1/merchant/products/:id. Deleting an
// unknown id succeeds; issued receipts keep their snapshotted line items.
func (h *MerchantHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid product id"))
		return
	}

	if err := h.ledger.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": id.String()})
}

// Checkout handles POST /api/v1/merchant/orders/checkout.
func (h *MerchantHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStruct(&req)

	payment, err := domain.ParsePaymentMethod(req.Payment)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	lines := make([]ports.CheckoutLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		productID, err := uuid.Parse(l.ProductID)
		if err != nil {
			response.Error(c, apperror.Validation("invalid product id: "+l.ProductID))
			return
		}
		lines = append(lines, ports.CheckoutLine{ProductID: productID, Qty: l.Qty})
	}

	r, err := h.orderSvc.Checkout(c.Request.Context(), ports.CheckoutRequest{
		Lines:   lines,
		Payment: payment,
		Tags:    req.Tags,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToReceiptResponse(r))
}

// GetProfile handles GET /api/v1/merchant/profile.
func (h *MerchantHandler) GetProfile(c *gin.Context) {
	profile := h.ledger.Profile()
	if profile == nil {
		response.Error(c, apperror.ErrProfileNotSet())
		return
	}
	response.OK(c, dto.ToProfileResponse(profile))
}

// SetProfile handles PUT /api/v1/merchant/profile. The profile is replaced
// wholesale; there is no field-level merge.
func (h *MerchantHandler) SetProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStruct(&req)

	currency, err := domain.ParseCurrency(req.DefaultCurrency)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	tags := make([]domain.GreenTag, 0, len(req.GreenTags))
	for _, raw := range req.GreenTags {
		tag, err := domain.ParseGreenTag(raw)
		if err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		tags = append(tags, tag)
	}

	existing := h.ledger.Profile()
	id := uuid.New()
	if existing != nil {
		id = existing.ID
	}

	profile := domain.MerchantProfile{
		ID:              id,
		MerchantName:    req.MerchantName,
		Location:        req.Location,
		Address:         req.Address,
		DefaultCurrency: currency,
		GreenTags:       tags,
	}
	if err := profile.Validate(); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.ledger.SetProfile(c.Request.Context(), profile); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToProfileResponse(&profile))
}
