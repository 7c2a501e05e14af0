package codec

import (
	"encoding/csv"
	"strings"
	"time"

	"receipt-ledger/internal/core/domain"
)

// csvHeader is the fixed export column set.
var csvHeader = []string{"Merchant", "Amount", "Currency", "Date", "Category", "Payment", "Tags"}

// EncodeCSV renders receipts as a flat export: one header row plus one row
// per receipt. Multi-valued tags are ";"-joined inside a single column,
// amounts are plain decimals without grouping separators, and dates are
// UTC RFC 3339. Fields containing commas or quotes get standard CSV
// quoting.
func EncodeCSV(receipts []domain.Receipt) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for i := range receipts {
		r := &receipts[i]
		row := []string{
			r.Merchant,
			r.Amount.String(),
			string(r.Currency),
			r.Date.UTC().Format(time.RFC3339),
			string(r.Category),
			string(r.Payment),
			strings.Join(r.Tags, ";"),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
