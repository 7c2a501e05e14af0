package handler

import (
	"net/http"
	"time"

	"receipt-ledger/internal/adapter/http/dto"
	"receipt-ledger/internal/codec"
	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"
	"receipt-ledger/pkg/apperror"
	"receipt-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptHandler handles the receipt collection endpoints.
type ReceiptHandler struct {
	ledger          ports.LedgerService
	defaultCurrency domain.Currency
}

// NewReceiptHandler creates a new ReceiptHandler. Manual entries without a
// currency fall back to defaultCurrency.
func NewReceiptHandler(ledger ports.LedgerService, defaultCurrency domain.Currency) *ReceiptHandler {
	return &ReceiptHandler{ledger: ledger, defaultCurrency: defaultCurrency}
}

// List handles GET /api/v1/receipts. Receipts come back most recent first.
func (h *ReceiptHandler) List(c *gin.Context) {
	response.OK(c, dto.ToReceiptListResponse(h.ledger.Receipts()))
}

// Create handles POST /api/v1/receipts.
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStruct(&req)

	r, err := h.buildReceipt(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	added, err := h.ledger.Add(c.Request.Context(), *r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToReceiptResponse(added))
}

// Scan handles POST /api/v1/receipts/scan. A failed decode changes nothing.
func (h *ReceiptHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	r, err := codec.DecodePayload(req.Payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	added, err := h.ledger.Add(c.Request.Context(), *r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToReceiptResponse(added))
}

// Delete handles POST /api/v1/receipts/delete. Unknown ids are ignored.
func (h *ReceiptHandler) Delete(c *gin.Context) {
	var req dto.DeleteReceiptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.Validation("invalid receipt id: "+raw))
			return
		}
		ids = append(ids, id)
	}

	removed, err := h.ledger.Delete(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.DeleteReceiptsResponse{Removed: removed})
}

// QRPayload handles GET /api/v1/receipts/:id/qr, returning the canonical
// payload string for the receipt. Rendering the code is the client's job.
func (h *ReceiptHandler) QRPayload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid receipt id"))
		return
	}

	r, err := h.ledger.Receipt(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload, err := codec.EncodePayload(r)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.QRPayloadResponse{Payload: payload})
}

// ExportCSV handles GET /api/v1/receipts/export.
func (h *ReceiptHandler) ExportCSV(c *gin.Context) {
	out, err := codec.EncodeCSV(h.ledger.Receipts())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipts.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
}

func (h *ReceiptHandler) buildReceipt(req *dto.CreateReceiptRequest) (*domain.Receipt, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, apperror.ErrInvalidAmount()
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, apperror.Validation("date must be RFC 3339")
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	payment, err := domain.ParsePaymentMethod(req.Payment)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	currency := h.defaultCurrency
	if req.Currency != "" {
		currency, err = domain.ParseCurrency(req.Currency)
		if err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}

	r := domain.Receipt{
		ID:       uuid.New(),
		Merchant: req.Merchant,
		Location: req.Location,
		Amount:   amount,
		Date:     date,
		Category: category,
		Payment:  payment,
		Currency: currency,
		Tags:     req.Tags,
		Notes:    req.Notes,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	for _, item := range req.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, apperror.ErrInvalidAmount()
		}
		r.Items = append(r.Items, domain.ReceiptItem{
			ID:    uuid.NewString(),
			Name:  item.Name,
			Qty:   item.Qty,
			Price: price,
		})
	}

	if err := r.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	return &r, nil
}
