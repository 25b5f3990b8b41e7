package dashboard

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

// defaultShift is assumed when the actor has no recorded login.
const defaultShift = 8 * time.Hour

// Authorize is the explicit authorization policy: it maps the actor's
// role onto the dashboard variant being requested. It is evaluated
// per-request by the handlers, never as ambient middleware state.
func Authorize(role, variant string) error {
	if role != variant {
		return &apperrors.AuthorizationError{
			Message: fmt.Sprintf("role %q may not access the %s dashboard", role, variant),
		}
	}
	return nil
}

// Aggregator computes the presentation-ready analytics bundle from
// Sale/SaleItem rows. All date arithmetic happens in the configured
// reporting zone and all monetary sums are exact decimals. The clock
// is injectable so identical inputs always produce identical output.
type Aggregator struct {
	db       *gorm.DB
	loc      *time.Location
	currency string
	now      func() time.Time
}

// NewAggregator creates an Aggregator using the given reporting zone
// and currency code.
func NewAggregator(db *gorm.DB, loc *time.Location, currency string) *Aggregator {
	return &Aggregator{db: db, loc: loc, currency: currency, now: time.Now}
}

// ForCashier builds the cashier dashboard, scoped to the actor's own
// sales. Only actors with the cashier role may request it.
func (a *Aggregator) ForCashier(user models.User, rangeValue string) (*Dashboard, error) {
	if err := Authorize(user.Role.RoleName, models.RoleCashier); err != nil {
		return nil, err
	}
	return a.build(user, user.UserID, rangeValue, false)
}

// ForAdmin builds the admin dashboard across all cashiers, with the
// catalog stats block included.
func (a *Aggregator) ForAdmin(user models.User, rangeValue string) (*Dashboard, error) {
	if err := Authorize(user.Role.RoleName, models.RoleAdmin); err != nil {
		return nil, err
	}
	return a.build(user, 0, rangeValue, true)
}

// build assembles every sub-report. scopeUserID == 0 means unscoped.
func (a *Aggregator) build(user models.User, scopeUserID uint, rangeValue string, includeStats bool) (*Dashboard, error) {
	now := a.now().In(a.loc)
	rng, start, end, err := ResolveRange(rangeValue, now, a.loc)
	if err != nil {
		return nil, err
	}

	rangeSales, err := a.salesBetween(scopeUserID, start, end)
	if err != nil {
		return nil, err
	}
	rangeItems, err := a.itemsBetween(scopeUserID, start, end)
	if err != nil {
		return nil, err
	}

	metrics, err := a.shiftMetrics(user, scopeUserID, now)
	if err != nil {
		return nil, err
	}
	recent, err := a.recentTransactions(scopeUserID)
	if err != nil {
		return nil, err
	}
	daily, err := a.dailyPerformance(scopeUserID, now)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Cashier: CashierInfo{
			UserID:       user.UserID,
			FullName:     user.FullName,
			EmployeeCode: user.EmployeeCode,
			Role:         user.Role.RoleName,
		},
		Range:              rng,
		ShiftMetrics:       metrics,
		SalesTrend:         a.trend(rangeSales, rng, start, end),
		Categories:         a.categoryBreakdown(rangeItems),
		TopProducts:        a.topProducts(rangeItems),
		RecentTransactions: recent,
		DailyPerformance:   daily,
		PaymentMethods:     a.paymentBreakdown(rangeSales),
	}

	if includeStats {
		stats, err := a.catalogStats(now)
		if err != nil {
			return nil, err
		}
		d.Stats = stats
	}
	return d, nil
}

// salesBetween loads the actor's sales inside the window, oldest
// first so downstream reductions are order-stable.
func (a *Aggregator) salesBetween(scopeUserID uint, start, end time.Time) ([]models.Sale, error) {
	q := a.db.Where("created_at BETWEEN ? AND ?", start, end)
	if scopeUserID != 0 {
		q = q.Where("user_id = ?", scopeUserID)
	}
	var sales []models.Sale
	if err := q.Order("created_at ASC, sale_id ASC").Find(&sales).Error; err != nil {
		return nil, &apperrors.InfrastructureError{Err: err}
	}
	return sales, nil
}

// itemRow is the joined line-item shape the breakdown reports reduce.
type itemRow struct {
	CategoryID   uint
	CategoryName string
	ProductID    uint
	ProductName  string
	Quantity     int64
	TotalAmount  decimal.Decimal
	IsVoided     bool
	IsRefunded   bool
}

func (a *Aggregator) itemsBetween(scopeUserID uint, start, end time.Time) ([]itemRow, error) {
	query := `
		SELECT
			si.category_id,
			COALESCE(c.category_name, 'Uncategorized') AS category_name,
			si.product_id,
			si.product_name,
			si.quantity,
			si.total_amount,
			si.is_voided,
			si.is_refunded
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.sale_id
		LEFT JOIN categories c ON si.category_id = c.category_id
		WHERE s.created_at BETWEEN ? AND ?`
	args := []interface{}{start, end}
	if scopeUserID != 0 {
		query += " AND s.user_id = ?"
		args = append(args, scopeUserID)
	}
	query += " ORDER BY si.sale_item_id ASC"

	var rows []itemRow
	if err := a.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, &apperrors.InfrastructureError{Err: err}
	}
	return rows, nil
}

func (a *Aggregator) money(d decimal.Decimal) string {
	return fmt.Sprintf("%s %s", a.currency, d.StringFixed(2))
}

// round1 rounds a percentage to one decimal place for display. Rounding
// happens only here, never inside an intermediate calculation.
func round1(d decimal.Decimal) float64 {
	f, _ := d.Round(1).Float64()
	return f
}

// percentChange reports the change of current versus a prior-day
// baseline. A zero baseline yields 0 when current is also zero,
// otherwise 100.
func percentChange(current, prior decimal.Decimal) float64 {
	if prior.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	return round1(current.Sub(prior).Div(prior).Mul(decimal.NewFromInt(100)))
}
