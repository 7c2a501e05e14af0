package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input   string
		want    Currency
		wantErr bool
	}{
		{"USD", CurrencyUSD, false},
		{"SGD", CurrencySGD, false},
		{"JPY", CurrencyJPY, false},
		{"CNY", CurrencyCNY, false},
		{"KRW", CurrencyKRW, false},
		{"EUR", "", true},
		{"usd", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_Add(t *testing.T) {
	a := NewMoney(decimal.NewFromFloat(5.20), CurrencySGD)
	b := NewMoney(decimal.NewFromFloat(10.30), CurrencySGD)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount.Equal(decimal.NewFromFloat(15.50)))
	assert.Equal(t, CurrencySGD, sum.Currency)
}

func TestReceipt_Money(t *testing.T) {
	r := Receipt{
		Amount:   decimal.RequireFromString("12.40"),
		Currency: CurrencySGD,
	}

	m := r.Money()
	assert.True(t, m.Amount.Equal(r.Amount))
	assert.Equal(t, CurrencySGD, m.Currency)
}

func TestMoney_Add_CurrencyMismatch(t *testing.T) {
	a := NewMoney(decimal.NewFromInt(5), CurrencySGD)
	b := NewMoney(decimal.NewFromInt(10), CurrencyUSD)

	_, err := a.Add(b)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "currency mismatch")
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("Lunch")
	assert.Error(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	for _, p := range []PaymentMethod{PaymentCash, PaymentCard, PaymentQR, PaymentWallet, PaymentOther} {
		got, err := ParsePaymentMethod(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePaymentMethod("Cheque")
	assert.Error(t, err)
}

func TestReceiptItem_Subtotal(t *testing.T) {
	item := ReceiptItem{Name: "Broccoli", Qty: 2, Price: decimal.NewFromFloat(4.40)}
	assert.True(t, item.Subtotal().Equal(decimal.NewFromFloat(8.80)))
}

func validReceipt() Receipt {
	return Receipt{
		Merchant: "The Green Pot",
		Amount:   decimal.NewFromFloat(21.00),
		Date:     time.Now(),
		Category: CategoryCafe,
		Payment:  PaymentCard,
		Currency: CurrencySGD,
	}
}

func TestReceipt_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Receipt)
		wantErr string
	}{
		{"valid", func(r *Receipt) {}, ""},
		{"empty merchant", func(r *Receipt) { r.Merchant = "  " }, "merchant"},
		{"negative amount", func(r *Receipt) { r.Amount = decimal.NewFromInt(-1) }, "amount"},
		{"bad category", func(r *Receipt) { r.Category = "Lunch" }, "category"},
		{"bad payment", func(r *Receipt) { r.Payment = "Cheque" }, "payment"},
		{"bad currency", func(r *Receipt) { r.Currency = "EUR" }, "currency"},
		{"zero qty item", func(r *Receipt) {
			r.Items = []ReceiptItem{{Name: "Latte", Qty: 0, Price: decimal.NewFromInt(6)}}
		}, "items"},
		{"unnamed item", func(r *Receipt) {
			r.Items = []ReceiptItem{{Name: " ", Qty: 1, Price: decimal.NewFromInt(6)}}
		}, "items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReceipt()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReceipt_AmountIndependentOfItems(t *testing.T) {
	r := validReceipt()
	r.Items = []ReceiptItem{{Name: "Avocado Toast", Qty: 1, Price: decimal.NewFromFloat(14.50)}}

	// The recorded amount is not required to equal the item subtotal.
	require.NoError(t, r.Validate())
	assert.False(t, r.Amount.Equal(r.ItemSubtotal()))
}

func TestReceipt_AddTag_Idempotent(t *testing.T) {
	r := validReceipt()
	r.Tags = []string{"Breakfast"}

	r.AddTag("QR")
	r.AddTag("QR")
	r.AddTag("qr") // case-insensitive duplicate

	assert.Equal(t, []string{"Breakfast", "QR"}, r.Tags)
}

func TestReceipt_HasTag_CaseInsensitive(t *testing.T) {
	r := validReceipt()
	r.Tags = []string{"BYO Discount"}

	assert.True(t, r.HasTag("byo discount"))
	assert.False(t, r.HasTag("BYO"))
}

func TestReceipt_ItemSubtotal(t *testing.T) {
	r := validReceipt()
	r.Items = []ReceiptItem{
		{Name: "Avocado Toast", Qty: 1, Price: decimal.NewFromFloat(14.50)},
		{Name: "Iced Latte", Qty: 2, Price: decimal.NewFromFloat(6.50)},
	}

	assert.True(t, r.ItemSubtotal().Equal(decimal.NewFromFloat(27.50)))
}

func TestChallenge_Matches(t *testing.T) {
	transport := Challenge{Type: ChallengeTransport}
	groceries := Challenge{Type: ChallengeGroceries}
	byo := Challenge{Type: ChallengeBYO}

	tests := []struct {
		name      string
		challenge Challenge
		receipt   Receipt
		want      bool
	}{
		{"transport matches transport", transport, Receipt{Category: CategoryTransport}, true},
		{"transport ignores cafe", transport, Receipt{Category: CategoryCafe}, false},
		{"groceries matches groceries", groceries, Receipt{Category: CategoryGroceries}, true},
		{"groceries ignores snacks", groceries, Receipt{Category: CategorySnacks}, false},
		{"byo exact tag", byo, Receipt{Tags: []string{"BYO"}}, true},
		{"byo substring tag", byo, Receipt{Tags: []string{"BYO Discount"}}, true},
		{"byo case-insensitive", byo, Receipt{Tags: []string{"byo cup"}}, true},
		{"byo no tags", byo, Receipt{Tags: nil}, false},
		{"byo unrelated tags", byo, Receipt{Tags: []string{"Lunch"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.challenge.Matches(&tt.receipt))
		})
	}
}

func TestChallengeCatalog_Fixed(t *testing.T) {
	catalog := ChallengeCatalog()
	require.Len(t, catalog, 3)

	assert.Equal(t, "Green Commuter", catalog[0].ID)
	assert.Equal(t, 5, catalog[0].TargetCount)
	assert.Equal(t, ChallengeTransport, catalog[0].Type)

	assert.Equal(t, "Eco Shopper", catalog[1].ID)
	assert.Equal(t, 3, catalog[1].TargetCount)
	assert.Equal(t, ChallengeGroceries, catalog[1].Type)

	assert.Equal(t, "BYO Champion", catalog[2].ID)
	assert.Equal(t, 4, catalog[2].TargetCount)
	assert.Equal(t, ChallengeBYO, catalog[2].Type)

	// ID doubles as the title.
	for _, c := range catalog {
		assert.Equal(t, c.Title, c.ID)
	}
}

func TestChallengeByID(t *testing.T) {
	c, ok := ChallengeByID("Eco Shopper")
	require.True(t, ok)
	assert.Equal(t, 3, c.TargetCount)

	_, ok = ChallengeByID("Marathon Runner")
	assert.False(t, ok)
}

func TestParseGreenTag(t *testing.T) {
	for _, gt := range GreenTags() {
		got, err := ParseGreenTag(string(gt))
		require.NoError(t, err)
		assert.Equal(t, gt, got)
	}

	_, err := ParseGreenTag("Solar Powered")
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	for _, r := range []Role{RoleConsumer, RoleMerchant} {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParseRole("admin")
	assert.Error(t, err)
}

func TestTimeframe_WindowStart(t *testing.T) {
	now := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		tf   Timeframe
		want time.Time
	}{
		{TimeframeWeek, time.Date(2025, 9, 9, 12, 0, 0, 0, time.UTC)},
		{TimeframeMonth, time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)},
		{TimeframeYear, time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tf.WindowStart(now))
		})
	}
}

func TestParseTimeframe(t *testing.T) {
	_, err := ParseTimeframe("quarter")
	assert.Error(t, err)

	tf, err := ParseTimeframe("week")
	require.NoError(t, err)
	assert.Equal(t, TimeframeWeek, tf)
}
