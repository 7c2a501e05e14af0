// Package codec implements the canonical serialization formats for receipts:
// the compact payload string carried inside a QR code, and the flat CSV
// export format.
package codec

import (
	"encoding/json"
	"strings"
	"time"

	"receipt-ledger/internal/core/domain"
	"receipt-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QRTag is the tag stamped onto receipts ingested from a QR-paid payload.
const QRTag = "QR"

// jsonDecimal marshals as a bare JSON number. The default shopspring
// encoding quotes decimals, but the payload contract requires numeric
// literals.
type jsonDecimal struct {
	decimal.Decimal
}

func (d jsonDecimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// Payload field names are declared in alphabetical order so the encoded
// key order is canonical: encoding the same logical receipt twice yields
// byte-identical output.
type qrPayload struct {
	Amount   jsonDecimal `json:"amount"`
	Category string      `json:"category"`
	Currency string      `json:"currency"`
	Date     string      `json:"date"`
	Items    []qrItem    `json:"items"`
	Location *string     `json:"location,omitempty"`
	Merchant string      `json:"merchant"`
	Notes    *string     `json:"notes,omitempty"`
	Payment  string      `json:"payment"`
	Tags     []string    `json:"tags"`
}

type qrItem struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price jsonDecimal `json:"price"`
	Qty   int         `json:"qty"`
}

// EncodePayload produces the canonical payload string for one receipt.
// The receipt id is deliberately omitted: decoders always assign a fresh
// id, so the id carries no information in transit. Dates are normalized
// to UTC RFC 3339.
func EncodePayload(r *domain.Receipt) (string, error) {
	p := qrPayload{
		Amount:   jsonDecimal{r.Amount},
		Category: string(r.Category),
		Currency: string(r.Currency),
		Date:     r.Date.UTC().Format(time.RFC3339),
		Items:    make([]qrItem, 0, len(r.Items)),
		Location: r.Location,
		Merchant: r.Merchant,
		Notes:    r.Notes,
		Payment:  string(r.Payment),
		Tags:     r.Tags,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	for _, item := range r.Items {
		p.Items = append(p.Items, qrItem{
			ID:    item.ID,
			Name:  item.Name,
			Price: jsonDecimal{item.Price},
			Qty:   item.Qty,
		})
	}

	out, err := json.Marshal(p)
	if err != nil {
		return "", apperror.InternalError(err)
	}
	return string(out), nil
}

// rawPayload uses pointers so missing required fields are distinguishable
// from zero values.
type rawPayload struct {
	Amount   *jsonDecimal `json:"amount"`
	Category *string      `json:"category"`
	Currency *string      `json:"currency"`
	Date     *string      `json:"date"`
	Items    []qrItem     `json:"items"`
	Location *string      `json:"location"`
	Merchant *string      `json:"merchant"`
	Notes    *string      `json:"notes"`
	Payment  *string      `json:"payment"`
	Tags     []string     `json:"tags"`
}

// DecodePayload parses a scanned payload back into a receipt.
//
// The decoded receipt always gets a freshly generated id; an id embedded
// in the payload is never trusted or reused. When the payment method is QR
// the receipt is force-tagged with QRTag; the tag set semantics make this
// idempotent, so re-decoding an already-tagged payload does not duplicate
// the tag. A failed decode returns an error and nothing else: malformed
// payloads never produce partial receipts.
func DecodePayload(text string) (*domain.Receipt, error) {
	var raw rawPayload
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, apperror.DecodeWrap("Payload is not valid JSON", err)
	}

	if raw.Merchant == nil || strings.TrimSpace(*raw.Merchant) == "" {
		return nil, apperror.DecodeMissingField("merchant")
	}
	if raw.Amount == nil {
		return nil, apperror.DecodeMissingField("amount")
	}
	if raw.Date == nil {
		return nil, apperror.DecodeMissingField("date")
	}
	if raw.Category == nil {
		return nil, apperror.DecodeMissingField("category")
	}
	if raw.Payment == nil {
		return nil, apperror.DecodeMissingField("payment")
	}

	date, err := time.Parse(time.RFC3339, *raw.Date)
	if err != nil {
		return nil, apperror.DecodeBadField("date", *raw.Date)
	}
	category, err := domain.ParseCategory(*raw.Category)
	if err != nil {
		return nil, apperror.DecodeBadField("category", *raw.Category)
	}
	payment, err := domain.ParsePaymentMethod(*raw.Payment)
	if err != nil {
		return nil, apperror.DecodeBadField("payment", *raw.Payment)
	}

	// Currency is optional in the payload; absent means SGD.
	currency := domain.CurrencySGD
	if raw.Currency != nil {
		currency, err = domain.ParseCurrency(*raw.Currency)
		if err != nil {
			return nil, apperror.DecodeBadField("currency", *raw.Currency)
		}
	}

	r := domain.Receipt{
		ID:       uuid.New(),
		Merchant: *raw.Merchant,
		Location: raw.Location,
		Amount:   raw.Amount.Decimal,
		Date:     date,
		Category: category,
		Payment:  payment,
		Currency: currency,
		Tags:     raw.Tags,
		Notes:    raw.Notes,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	for _, item := range raw.Items {
		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}
		r.Items = append(r.Items, domain.ReceiptItem{
			ID:    id,
			Name:  item.Name,
			Qty:   item.Qty,
			Price: item.Price.Decimal,
		})
	}

	if err := r.Validate(); err != nil {
		return nil, apperror.Decode(err.Error())
	}

	if r.Payment == domain.PaymentQR {
		r.AddTag(QRTag)
	}

	return &r, nil
}
