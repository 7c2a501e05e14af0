package service

import (
	"sort"
	"time"

	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Per-receipt environmental proxies. CO2 counts only receipts logged in the
// current calendar month; water and trees count the whole collection.
const (
	co2KgPerReceipt   = 0.1
	waterLPerReceipt  = 0.5
	receiptsPerDollar = 20.0
	sheetsPerTree     = 8333.0
)

// ReceiptSource is the slice of the ledger the analytics engine needs.
type ReceiptSource interface {
	Receipts() []domain.Receipt
}

// analyticsService implements ports.AnalyticsService. Every method is a pure
// function over the receipt collection at call time; nothing is cached.
type analyticsService struct {
	source ReceiptSource
}

// NewAnalyticsService creates the aggregation engine over a receipt source.
func NewAnalyticsService(source ReceiptSource) ports.AnalyticsService {
	return &analyticsService{source: source}
}

// Revenue aggregates receipts for one timeframe and one currency. Receipts
// in other currencies are excluded outright, never converted. The series
// shape depends on the timeframe: a week is seven zero-filled day buckets,
// a month is ISO-week buckets with data, a year is month buckets with data.
func (s *analyticsService) Revenue(tf domain.Timeframe, currency domain.Currency, now time.Time) *ports.RevenueReport {
	start := tf.WindowStart(now)

	var filtered []domain.Receipt
	for _, r := range s.source.Receipts() {
		if r.Money().Currency != currency {
			continue
		}
		if r.Date.Before(start) || r.Date.After(now) {
			continue
		}
		filtered = append(filtered, r)
	}

	report := &ports.RevenueReport{
		Timeframe:    tf,
		Currency:     currency,
		TotalRevenue: decimal.Zero,
		TotalSales:   len(filtered),
		AverageSale:  decimal.Zero,
		Series:       buildSeries(tf, start, filtered),
		ByCategory:   categoryBreakdown(filtered),
		TopSellers:   topSellers(filtered, 5),
	}
	for _, r := range filtered {
		report.TotalRevenue = report.TotalRevenue.Add(r.Money().Amount)
	}
	if report.TotalSales > 0 {
		report.AverageSale = report.TotalRevenue.Div(decimal.NewFromInt(int64(report.TotalSales)))
	}
	return report
}

// Eco derives the environmental-impact proxies from receipt counts. These
// are estimates for display, so they stay in float64 rather than decimal.
func (s *analyticsService) Eco(now time.Time) ports.EcoReport {
	receipts := s.source.Receipts()

	thisMonth := 0
	for _, r := range receipts {
		if r.Date.Year() == now.Year() && r.Date.Month() == now.Month() {
			thisMonth++
		}
	}

	total := float64(len(receipts))
	return ports.EcoReport{
		CO2AvoidedKg: float64(thisMonth) * co2KgPerReceipt,
		WaterSavedL:  total * waterLPerReceipt,
		TreesSaved:   (total / receiptsPerDollar) / sheetsPerTree,
	}
}

func buildSeries(tf domain.Timeframe, start time.Time, receipts []domain.Receipt) []ports.RevenueBucket {
	switch tf {
	case domain.TimeframeWeek:
		return daySeries(start, receipts)
	case domain.TimeframeMonth:
		return keyedSeries(receipts, startOfISOWeek)
	case domain.TimeframeYear:
		return keyedSeries(receipts, startOfMonth)
	}
	return nil
}

// daySeries always returns seven buckets, one per calendar day (UTC) from
// the window start's day, zero-filled so quiet days still chart. Receipts
// are grouped by their calendar day, not by 24-hour offsets from the query
// time, so a receipt logged this morning lands in today's bucket no matter
// when the report runs.
func daySeries(start time.Time, receipts []domain.Receipt) []ports.RevenueBucket {
	first := startOfDay(start)
	buckets := make([]ports.RevenueBucket, 7)
	for i := range buckets {
		buckets[i] = ports.RevenueBucket{
			Start: first.AddDate(0, 0, i),
			Total: decimal.Zero,
		}
	}
	for _, r := range receipts {
		idx := int(startOfDay(r.Date).Sub(first) / (24 * time.Hour))
		if idx < 0 || idx > 6 {
			continue
		}
		buckets[idx].Total = buckets[idx].Total.Add(r.Amount)
	}
	return buckets
}

// startOfDay returns 00:00 UTC of t's calendar day.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// keyedSeries groups receipts by a bucket-start function and returns only
// buckets that hold data, in chronological order.
func keyedSeries(receipts []domain.Receipt, bucketStart func(time.Time) time.Time) []ports.RevenueBucket {
	sums := make(map[time.Time]decimal.Decimal)
	for _, r := range receipts {
		key := bucketStart(r.Date)
		sums[key] = sums[key].Add(r.Amount)
	}

	buckets := make([]ports.RevenueBucket, 0, len(sums))
	for key, total := range sums {
		buckets = append(buckets, ports.RevenueBucket{Start: key, Total: total})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets
}

// startOfISOWeek returns 00:00 UTC of the Monday of t's ISO week.
func startOfISOWeek(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	monday := (int(t.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -monday)
}

func startOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func categoryBreakdown(receipts []domain.Receipt) []ports.CategoryRevenue {
	sums := make(map[domain.Category]decimal.Decimal)
	for _, r := range receipts {
		sums[r.Category] = sums[r.Category].Add(r.Amount)
	}

	out := make([]ports.CategoryRevenue, 0, len(sums))
	for cat, total := range sums {
		out = append(out, ports.CategoryRevenue{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// topSellers ranks line-item names by total quantity sold, highest first.
// Ties keep the order in which a name first appeared in the collection.
func topSellers(receipts []domain.Receipt, limit int) []ports.TopSeller {
	totals := make(map[string]int)
	var order []string
	for _, r := range receipts {
		for _, item := range r.Items {
			if _, seen := totals[item.Name]; !seen {
				order = append(order, item.Name)
			}
			totals[item.Name] += item.Qty
		}
	}

	sellers := make([]ports.TopSeller, 0, len(order))
	for _, name := range order {
		sellers = append(sellers, ports.TopSeller{Name: name, Qty: totals[name]})
	}
	sort.SliceStable(sellers, func(i, j int) bool {
		return sellers[i].Qty > sellers[j].Qty
	})
	if len(sellers) > limit {
		sellers = sellers[:limit]
	}
	return sellers
}
