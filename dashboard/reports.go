package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

// palette is the fixed category color sequence, cycled by rank.
var palette = []string{
	"#4F46E5", "#06B6D4", "#10B981", "#F59E0B", "#EF4444",
	"#8B5CF6", "#EC4899", "#14B8A6",
}

// targetBase is the flat daily sales target; weekends get the busier
// multiplier.
var (
	targetBase        = decimal.NewFromInt(1000)
	weekendMultiplier = decimal.NewFromFloat(1.5)
)

type dayTotals struct {
	sales  decimal.Decimal
	count  int64
	items  int64
	refund int64
	voided int64
}

func (a *Aggregator) totalsForDay(scopeUserID uint, dayStart time.Time) (dayTotals, error) {
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)
	t := dayTotals{sales: decimal.Zero}

	sales, err := a.salesBetween(scopeUserID, dayStart, dayEnd)
	if err != nil {
		return t, err
	}
	for _, s := range sales {
		t.sales = t.sales.Add(s.GrandTotal)
		t.count++
	}

	items, err := a.itemsBetween(scopeUserID, dayStart, dayEnd)
	if err != nil {
		return t, err
	}
	for _, it := range items {
		switch {
		case it.IsVoided:
			t.voided++
		case it.IsRefunded:
			t.refund++
			t.items += it.Quantity
		default:
			t.items += it.Quantity
		}
	}
	return t, nil
}

// shiftMetrics builds the headline metric cards: today's figures, each
// with its change versus the same figure yesterday.
func (a *Aggregator) shiftMetrics(user models.User, scopeUserID uint, now time.Time) ([]ShiftMetric, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.loc)
	today, err := a.totalsForDay(scopeUserID, todayStart)
	if err != nil {
		return nil, err
	}
	prior, err := a.totalsForDay(scopeUserID, todayStart.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if today.count > 0 {
		avg = today.sales.Div(decimal.NewFromInt(today.count))
	}
	priorAvg := decimal.Zero
	if prior.count > 0 {
		priorAvg = prior.sales.Div(decimal.NewFromInt(prior.count))
	}

	shift := defaultShift
	if user.LastLoginAt != nil {
		shift = now.Sub(*user.LastLoginAt)
	}

	metrics := []ShiftMetric{
		{
			Label:     "Today's Sales",
			Value:     a.money(today.sales),
			Change:    percentChange(today.sales, prior.sales),
			Available: true,
		},
		{
			Label:     "Transactions",
			Value:     fmt.Sprintf("%d", today.count),
			Change:    percentChange(decimal.NewFromInt(today.count), decimal.NewFromInt(prior.count)),
			Available: true,
		},
		{
			Label:     "Avg Transaction",
			Value:     a.money(avg),
			Change:    percentChange(avg, priorAvg),
			Available: true,
		},
		{
			Label:     "Items Sold",
			Value:     fmt.Sprintf("%d", today.items),
			Change:    percentChange(decimal.NewFromInt(today.items), decimal.NewFromInt(prior.items)),
			Available: true,
		},
		{
			Label:     "Refunds",
			Value:     fmt.Sprintf("%d", today.refund),
			Change:    percentChange(decimal.NewFromInt(today.refund), decimal.NewFromInt(prior.refund)),
			Available: true,
		},
		{
			Label:     "Voided Items",
			Value:     fmt.Sprintf("%d", today.voided),
			Change:    percentChange(decimal.NewFromInt(today.voided), decimal.NewFromInt(prior.voided)),
			Available: true,
		},
		{
			// No feedback source exists to aggregate a rating from,
			// so the metric reports itself unavailable rather than
			// fabricating a number.
			Label:     "Rating",
			Value:     "N/A",
			Change:    0,
			Available: false,
		},
		{
			Label:     "Shift Duration",
			Value:     formatDuration(shift),
			Change:    0,
			Available: true,
		},
	}
	return metrics, nil
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %02dm", h, m)
}

// trend reduces the window's sales into zero-filled buckets: 24 hours
// for the "today" range, one per calendar day otherwise.
func (a *Aggregator) trend(sales []models.Sale, rng TimeRange, start, end time.Time) []TrendPoint {
	if rng == RangeToday {
		sums := make([]decimal.Decimal, 24)
		counts := make([]int64, 24)
		for i := range sums {
			sums[i] = decimal.Zero
		}
		for _, s := range sales {
			h := s.CreatedAt.In(a.loc).Hour()
			sums[h] = sums[h].Add(s.GrandTotal)
			counts[h]++
		}
		points := make([]TrendPoint, 24)
		for h := 0; h < 24; h++ {
			points[h] = TrendPoint{
				Label:        fmt.Sprintf("%02d:00", h),
				Sales:        sums[h].StringFixed(2),
				Transactions: counts[h],
			}
		}
		return points
	}

	type bucket struct {
		sum   decimal.Decimal
		count int64
	}
	buckets := map[string]*bucket{}
	var order []string
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		buckets[key] = &bucket{sum: decimal.Zero}
		order = append(order, key)
	}
	for _, s := range sales {
		key := s.CreatedAt.In(a.loc).Format("2006-01-02")
		if b, ok := buckets[key]; ok {
			b.sum = b.sum.Add(s.GrandTotal)
			b.count++
		}
	}

	points := make([]TrendPoint, 0, len(order))
	for _, key := range order {
		day, _ := time.ParseInLocation("2006-01-02", key, a.loc)
		points = append(points, TrendPoint{
			Label:        day.Format("Jan 02"),
			Sales:        buckets[key].sum.StringFixed(2),
			Transactions: buckets[key].count,
		})
	}
	return points
}

// categoryBreakdown groups non-voided line items by category as
// percentages of the grand total. More than five categories collapse
// into the top four plus an "Others" wedge.
func (a *Aggregator) categoryBreakdown(items []itemRow) []CategorySlice {
	type catAgg struct {
		name   string
		amount decimal.Decimal
	}
	byCat := map[uint]*catAgg{}
	total := decimal.Zero
	for _, it := range items {
		if it.IsVoided {
			continue
		}
		agg, ok := byCat[it.CategoryID]
		if !ok {
			agg = &catAgg{name: it.CategoryName, amount: decimal.Zero}
			byCat[it.CategoryID] = agg
		}
		agg.amount = agg.amount.Add(it.TotalAmount)
		total = total.Add(it.TotalAmount)
	}
	if total.IsZero() {
		return []CategorySlice{}
	}

	aggs := make([]catAgg, 0, len(byCat))
	for _, agg := range byCat {
		aggs = append(aggs, *agg)
	}
	sort.Slice(aggs, func(i, j int) bool {
		if !aggs[i].amount.Equal(aggs[j].amount) {
			return aggs[i].amount.GreaterThan(aggs[j].amount)
		}
		return aggs[i].name < aggs[j].name
	})

	if len(aggs) > 5 {
		others := catAgg{name: "Others", amount: decimal.Zero}
		for _, agg := range aggs[4:] {
			others.amount = others.amount.Add(agg.amount)
		}
		aggs = append(aggs[:4], others)
	}

	hundred := decimal.NewFromInt(100)
	slices := make([]CategorySlice, 0, len(aggs))
	for rank, agg := range aggs {
		slices = append(slices, CategorySlice{
			Name:    agg.name,
			Amount:  agg.amount.StringFixed(2),
			Percent: round1(agg.amount.Div(total).Mul(hundred)),
			Color:   palette[rank%len(palette)],
		})
	}
	return slices
}

// topProducts ranks products by quantity sold within the range.
func (a *Aggregator) topProducts(items []itemRow) []TopProduct {
	type prodAgg struct {
		name    string
		qty     int64
		revenue decimal.Decimal
	}
	byProd := map[uint]*prodAgg{}
	for _, it := range items {
		if it.IsVoided {
			continue
		}
		agg, ok := byProd[it.ProductID]
		if !ok {
			agg = &prodAgg{name: it.ProductName, revenue: decimal.Zero}
			byProd[it.ProductID] = agg
		}
		agg.qty += it.Quantity
		agg.revenue = agg.revenue.Add(it.TotalAmount)
	}

	aggs := make([]prodAgg, 0, len(byProd))
	for _, agg := range byProd {
		aggs = append(aggs, *agg)
	}
	sort.Slice(aggs, func(i, j int) bool {
		if aggs[i].qty != aggs[j].qty {
			return aggs[i].qty > aggs[j].qty
		}
		return aggs[i].name < aggs[j].name
	})
	if len(aggs) > 5 {
		aggs = aggs[:5]
	}

	top := make([]TopProduct, 0, len(aggs))
	for _, agg := range aggs {
		top = append(top, TopProduct{
			ProductName: agg.name,
			Quantity:    agg.qty,
			Revenue:     agg.revenue.StringFixed(2),
		})
	}
	return top
}

// recentTransactions lists the actor's latest ten sales regardless of
// the selected range.
func (a *Aggregator) recentTransactions(scopeUserID uint) ([]RecentTransaction, error) {
	query := `
		SELECT
			s.sale_id,
			s.created_at,
			s.grand_total,
			s.payment_method,
			COALESCE(ic.item_count, 0) AS item_count
		FROM sales s
		LEFT JOIN (
			SELECT sale_id, COUNT(*) AS item_count
			FROM sale_items
			GROUP BY sale_id
		) ic ON s.sale_id = ic.sale_id`
	var args []interface{}
	if scopeUserID != 0 {
		query += " WHERE s.user_id = ?"
		args = append(args, scopeUserID)
	}
	query += " ORDER BY s.created_at DESC, s.sale_id DESC LIMIT 10"

	var rows []struct {
		SaleID        string
		CreatedAt     time.Time
		GrandTotal    decimal.Decimal
		PaymentMethod models.PaymentMethod
		ItemCount     int64
	}
	if err := a.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, &apperrors.InfrastructureError{Err: err}
	}

	recent := make([]RecentTransaction, 0, len(rows))
	for _, row := range rows {
		recent = append(recent, RecentTransaction{
			DisplayID:     shortSaleID(row.SaleID),
			Time:          row.CreatedAt.In(a.loc).Format("15:04"),
			Items:         row.ItemCount,
			Amount:        a.money(row.GrandTotal),
			PaymentMethod: models.PaymentLabel(row.PaymentMethod),
		})
	}
	return recent, nil
}

// shortSaleID shortens a sale UUID to its first segment for display.
func shortSaleID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		id = id[:i]
	}
	return "#" + strings.ToUpper(id)
}

// dailyPerformance reports the trailing seven days against the fixed
// target, which is raised on weekends.
func (a *Aggregator) dailyPerformance(scopeUserID uint, now time.Time) ([]DailyPerformance, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.loc)
	windowStart := todayStart.AddDate(0, 0, -6)
	sales, err := a.salesBetween(scopeUserID, windowStart, todayStart.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	sums := map[string]decimal.Decimal{}
	for _, s := range sales {
		key := s.CreatedAt.In(a.loc).Format("2006-01-02")
		sums[key] = sums[key].Add(s.GrandTotal)
	}

	perf := make([]DailyPerformance, 0, 7)
	for day := windowStart; !day.After(todayStart); day = day.AddDate(0, 0, 1) {
		target := targetBase
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			target = target.Mul(weekendMultiplier)
		}
		actual := sums[day.Format("2006-01-02")]
		perf = append(perf, DailyPerformance{
			Day:    day.Format("Mon"),
			Actual: actual.StringFixed(2),
			Target: target.StringFixed(2),
		})
	}
	return perf, nil
}

// paymentBreakdown groups the window's sales by payment method.
func (a *Aggregator) paymentBreakdown(sales []models.Sale) []PaymentMethodStat {
	type payAgg struct {
		count  int64
		amount decimal.Decimal
	}
	byMethod := map[models.PaymentMethod]*payAgg{}
	grand := decimal.Zero
	for _, s := range sales {
		agg, ok := byMethod[s.PaymentMethod]
		if !ok {
			agg = &payAgg{amount: decimal.Zero}
			byMethod[s.PaymentMethod] = agg
		}
		agg.count++
		agg.amount = agg.amount.Add(s.GrandTotal)
		grand = grand.Add(s.GrandTotal)
	}

	methods := make([]models.PaymentMethod, 0, len(byMethod))
	for m := range byMethod {
		methods = append(methods, m)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })

	hundred := decimal.NewFromInt(100)
	stats := make([]PaymentMethodStat, 0, len(methods))
	for _, m := range methods {
		agg := byMethod[m]
		percent := 0.0
		if !grand.IsZero() {
			percent = round1(agg.amount.Div(grand).Mul(hundred))
		}
		stats = append(stats, PaymentMethodStat{
			Method:  models.PaymentLabel(m),
			Count:   agg.count,
			Amount:  agg.amount.StringFixed(2),
			Percent: percent,
		})
	}
	return stats
}

// catalogStats is the admin-only entity count block.
func (a *Aggregator) catalogStats(now time.Time) (*CatalogStats, error) {
	stats := &CatalogStats{}
	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Product{}, &stats.Products},
		{&models.Category{}, &stats.Categories},
		{&models.Supplier{}, &stats.Suppliers},
		{&models.User{}, &stats.Users},
	}
	for _, c := range counts {
		if err := a.db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, &apperrors.InfrastructureError{Err: err}
		}
	}

	err := a.db.Model(&models.Batch{}).
		Where("quantity_left > 0 AND quantity_left <= reorder_level").
		Count(&stats.LowStock).Error
	if err != nil {
		return nil, &apperrors.InfrastructureError{Err: err}
	}

	horizon := now.AddDate(0, 0, 30)
	err = a.db.Model(&models.Batch{}).
		Where("quantity_left > 0 AND expiry_date IS NOT NULL AND expiry_date <= ?", horizon).
		Count(&stats.ExpiringSoon).Error
	if err != nil {
		return nil, &apperrors.InfrastructureError{Err: err}
	}
	return stats, nil
}
