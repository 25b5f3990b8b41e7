package dashboard

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

// fixedNow is a Wednesday afternoon; every test pins the clock here.
var fixedNow = time.Date(2026, time.August, 26, 15, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	for _, model := range models.AllModels() {
		require.NoError(t, db.AutoMigrate(model))
	}
	return db
}

func newTestAggregator(db *gorm.DB) *Aggregator {
	agg := NewAggregator(db, time.UTC, "GHS")
	agg.now = func() time.Time { return fixedNow }
	return agg
}

func seedActors(t *testing.T, db *gorm.DB) (cashier, admin models.User) {
	t.Helper()
	cashierRole := models.Role{RoleName: models.RoleCashier}
	adminRole := models.Role{RoleName: models.RoleAdmin}
	require.NoError(t, db.Create(&cashierRole).Error)
	require.NoError(t, db.Create(&adminRole).Error)

	login := fixedNow.Add(-7*time.Hour - 30*time.Minute)
	cashier = models.User{
		Username: "ama", PasswordHash: "x", FullName: "Ama Mensah",
		EmployeeCode: "EMP002", RoleID: cashierRole.RoleID, IsActive: true,
		LastLoginAt: &login,
	}
	require.NoError(t, db.Create(&cashier).Error)
	cashier.Role = cashierRole

	admin = models.User{
		Username: "admin", PasswordHash: "x", FullName: "System Admin",
		EmployeeCode: "EMP001", RoleID: adminRole.RoleID, IsActive: true,
	}
	require.NoError(t, db.Create(&admin).Error)
	admin.Role = adminRole
	return cashier, admin
}

type saleSpec struct {
	amount  string
	method  models.PaymentMethod
	at      time.Time
	items   []itemSpec
}

type itemSpec struct {
	category uint
	product  uint
	name     string
	qty      int
	total    string
}

func seedSale(t *testing.T, db *gorm.DB, userID uint, spec saleSpec) models.Sale {
	t.Helper()
	amount := decimal.RequireFromString(spec.amount)
	sale := models.Sale{
		SaleID:        uuid.NewString(),
		Subtotal:      amount,
		GrandTotal:    amount,
		AmountPaid:    amount,
		PaymentMethod: spec.method,
		Status:        models.SaleStatusCompleted,
		UserID:        userID,
		CreatedAt:     spec.at,
	}
	require.NoError(t, db.Create(&sale).Error)
	for _, it := range spec.items {
		item := models.SaleItem{
			SaleID:      sale.SaleID,
			ProductID:   it.product,
			ProductName: it.name,
			CategoryID:  it.category,
			Quantity:    it.qty,
			UnitPrice:   decimal.RequireFromString(it.total).Div(decimal.NewFromInt(int64(it.qty))),
			TotalAmount: decimal.RequireFromString(it.total),
			CreatedAt:   spec.at,
		}
		require.NoError(t, db.Create(&item).Error)
	}
	return sale
}

func seedCategories(t *testing.T, db *gorm.DB, names ...string) []models.Category {
	t.Helper()
	out := make([]models.Category, 0, len(names))
	for _, name := range names {
		cat := models.Category{CategoryName: name}
		require.NoError(t, db.Create(&cat).Error)
		out = append(out, cat)
	}
	return out
}

func TestShiftMetricsExampleScenario(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)

	seedSale(t, db, cashier.UserID, saleSpec{amount: "50.00", method: models.PaymentCash, at: fixedNow.Add(-4 * time.Hour)})
	seedSale(t, db, cashier.UserID, saleSpec{amount: "30.00", method: models.PaymentCash, at: fixedNow.Add(-2 * time.Hour)})

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(d.ShiftMetrics), 3)
	assert.Equal(t, "Today's Sales", d.ShiftMetrics[0].Label)
	assert.Equal(t, "GHS 80.00", d.ShiftMetrics[0].Value)
	assert.Equal(t, "Transactions", d.ShiftMetrics[1].Label)
	assert.Equal(t, "2", d.ShiftMetrics[1].Value)
	assert.Equal(t, "Avg Transaction", d.ShiftMetrics[2].Label)
	assert.Equal(t, "GHS 40.00", d.ShiftMetrics[2].Value)
}

func TestShiftMetricsChangeAgainstZeroBaseline(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)

	// Sales today, none yesterday: the change reports 100, not a
	// division error.
	seedSale(t, db, cashier.UserID, saleSpec{amount: "25.00", method: models.PaymentCash, at: fixedNow.Add(-time.Hour)})

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)
	assert.Equal(t, 100.0, d.ShiftMetrics[0].Change)

	// Refunds are zero both days: change stays 0.
	assert.Equal(t, "Refunds", d.ShiftMetrics[4].Label)
	assert.Equal(t, 0.0, d.ShiftMetrics[4].Change)
}

func TestShiftMetricsRatingUnavailable(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)

	var rating *ShiftMetric
	for i := range d.ShiftMetrics {
		if d.ShiftMetrics[i].Label == "Rating" {
			rating = &d.ShiftMetrics[i]
		}
	}
	require.NotNil(t, rating)
	assert.False(t, rating.Available)
	assert.Equal(t, "N/A", rating.Value)
}

func TestShiftDurationFromLastLogin(t *testing.T) {
	db := newTestDB(t)
	cashier, admin := seedActors(t, db)

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)
	last := d.ShiftMetrics[len(d.ShiftMetrics)-1]
	assert.Equal(t, "Shift Duration", last.Label)
	assert.Equal(t, "7h 30m", last.Value)

	// No recorded login falls back to the default 8 hour shift.
	d2, err := agg.ForAdmin(admin, "today")
	require.NoError(t, err)
	last2 := d2.ShiftMetrics[len(d2.ShiftMetrics)-1]
	assert.Equal(t, "8h 00m", last2.Value)
}

func TestTrendHourlyBucketsSumToRangeTotal(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)

	seedSale(t, db, cashier.UserID, saleSpec{amount: "50.00", method: models.PaymentCash, at: fixedNow.Add(-4 * time.Hour)}) // 11:00
	seedSale(t, db, cashier.UserID, saleSpec{amount: "30.00", method: models.PaymentCard, at: fixedNow.Add(-4 * time.Hour)}) // 11:00
	seedSale(t, db, cashier.UserID, saleSpec{amount: "20.00", method: models.PaymentCash, at: fixedNow.Add(-1 * time.Hour)}) // 14:00

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)

	require.Len(t, d.SalesTrend, 24)
	sum := decimal.Zero
	var txns int64
	for _, p := range d.SalesTrend {
		sum = sum.Add(decimal.RequireFromString(p.Sales))
		txns += p.Transactions
	}
	assert.Equal(t, "100.00", sum.StringFixed(2))
	assert.EqualValues(t, 3, txns)

	assert.Equal(t, "11:00", d.SalesTrend[11].Label)
	assert.Equal(t, "80.00", d.SalesTrend[11].Sales)
	assert.EqualValues(t, 2, d.SalesTrend[11].Transactions)
	assert.Equal(t, "0.00", d.SalesTrend[12].Sales)
}

func TestTrendWeekBucketsZeroFilled(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)

	// Monday of the week and today (Wednesday).
	seedSale(t, db, cashier.UserID, saleSpec{amount: "40.00", method: models.PaymentCash, at: fixedNow.AddDate(0, 0, -2)})
	seedSale(t, db, cashier.UserID, saleSpec{amount: "60.00", method: models.PaymentCash, at: fixedNow})

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "week")
	require.NoError(t, err)

	require.Len(t, d.SalesTrend, 3, "Monday through Wednesday")
	assert.Equal(t, "40.00", d.SalesTrend[0].Sales)
	assert.Equal(t, "0.00", d.SalesTrend[1].Sales)
	assert.Equal(t, "60.00", d.SalesTrend[2].Sales)
}

func TestCategoryBreakdownPercentagesSumTo100(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)
	cats := seedCategories(t, db, "Beverages", "Snacks", "Dairy")

	seedSale(t, db, cashier.UserID, saleSpec{
		amount: "90.00", method: models.PaymentCash, at: fixedNow.Add(-time.Hour),
		items: []itemSpec{
			{category: cats[0].CategoryID, product: 1, name: "Cola", qty: 3, total: "30.00"},
			{category: cats[1].CategoryID, product: 2, name: "Chips", qty: 4, total: "40.00"},
			{category: cats[2].CategoryID, product: 3, name: "Milk", qty: 2, total: "20.00"},
		},
	})

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)

	require.Len(t, d.Categories, 3)
	total := 0.0
	for _, slice := range d.Categories {
		total += slice.Percent
	}
	assert.InDelta(t, 100.0, total, 0.3)

	// Ranked by value with the fixed palette cycled by rank.
	assert.Equal(t, "Snacks", d.Categories[0].Name)
	assert.Equal(t, palette[0], d.Categories[0].Color)
	assert.InDelta(t, 44.4, d.Categories[0].Percent, 0.01)
}

func TestCategoryBreakdownEmptyRange(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)
	assert.Empty(t, d.Categories)
}

func TestCategoryBreakdownCollapsesOthers(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)
	cats := seedCategories(t, db, "A", "B", "C", "D", "E", "F")

	items := make([]itemSpec, 0, 6)
	amounts := []string{"60.00", "50.00", "40.00", "30.00", "20.00", "10.00"}
	for i, cat := range cats {
		items = append(items, itemSpec{
			category: cat.CategoryID, product: uint(i + 1),
			name: cat.CategoryName, qty: 1, total: amounts[i],
		})
	}
	seedSale(t, db, cashier.UserID, saleSpec{
		amount: "210.00", method: models.PaymentCash, at: fixedNow.Add(-time.Hour),
		items: items,
	})

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)

	require.Len(t, d.Categories, 5, "top four plus Others")
	assert.Equal(t, "Others", d.Categories[4].Name)
	// Others bucket holds E + F = 30 of 210.
	assert.InDelta(t, 14.3, d.Categories[4].Percent, 0.05)
}

func TestTopProductsRankedByQuantity(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)
	cats := seedCategories(t, db, "Beverages")

	for i := 1; i <= 7; i++ {
		seedSale(t, db, cashier.UserID, saleSpec{
			amount: "10.00", method: models.PaymentCash, at: fixedNow.Add(-time.Hour),
			items: []itemSpec{{
				category: cats[0].CategoryID, product: uint(i),
				name: fmt.Sprintf("Product %d", i), qty: i, total: "10.00",
			}},
		})
	}

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)

	require.Len(t, d.TopProducts, 5)
	assert.Equal(t, "Product 7", d.TopProducts[0].ProductName)
	assert.EqualValues(t, 7, d.TopProducts[0].Quantity)
	assert.Equal(t, "Product 3", d.TopProducts[4].ProductName)
}

func TestRecentTransactionsLatestTen(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)

	for i := 0; i < 12; i++ {
		seedSale(t, db, cashier.UserID, saleSpec{
			amount: "10.00", method: models.PaymentCard,
			at: fixedNow.AddDate(0, 0, -i), // spans outside the range on purpose
		})
	}

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)

	require.Len(t, d.RecentTransactions, 10)
	first := d.RecentTransactions[0]
	assert.Regexp(t, `^#[0-9A-F]{8}$`, first.DisplayID)
	assert.Equal(t, "15:00", first.Time)
	assert.Equal(t, "GHS 10.00", first.Amount)
	assert.Equal(t, "Card", first.PaymentMethod)
}

func TestDailyPerformanceTargetsRaisedOnWeekends(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)

	seedSale(t, db, cashier.UserID, saleSpec{amount: "120.00", method: models.PaymentCash, at: fixedNow})

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)

	require.Len(t, d.DailyPerformance, 7)
	// Window is Thu Aug 20 .. Wed Aug 26.
	assert.Equal(t, "Thu", d.DailyPerformance[0].Day)
	assert.Equal(t, "Wed", d.DailyPerformance[6].Day)
	assert.Equal(t, "120.00", d.DailyPerformance[6].Actual)
	for _, p := range d.DailyPerformance {
		if p.Day == "Sat" || p.Day == "Sun" {
			assert.Equal(t, "1500.00", p.Target)
		} else {
			assert.Equal(t, "1000.00", p.Target)
		}
	}
}

func TestPaymentBreakdown(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)

	seedSale(t, db, cashier.UserID, saleSpec{amount: "75.00", method: models.PaymentCash, at: fixedNow.Add(-time.Hour)})
	seedSale(t, db, cashier.UserID, saleSpec{amount: "25.00", method: models.PaymentCard, at: fixedNow.Add(-time.Hour)})

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)

	require.Len(t, d.PaymentMethods, 2)
	assert.Equal(t, "Card", d.PaymentMethods[0].Method)
	assert.EqualValues(t, 1, d.PaymentMethods[0].Count)
	assert.Equal(t, 25.0, d.PaymentMethods[0].Percent)
	assert.Equal(t, "Cash", d.PaymentMethods[1].Method)
	assert.Equal(t, 75.0, d.PaymentMethods[1].Percent)
}

func TestDashboardScopedToActor(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)

	other := models.User{
		Username: "kofi", PasswordHash: "x", FullName: "Kofi Boateng",
		EmployeeCode: "EMP003", RoleID: cashier.RoleID, IsActive: true,
	}
	require.NoError(t, db.Create(&other).Error)

	seedSale(t, db, cashier.UserID, saleSpec{amount: "50.00", method: models.PaymentCash, at: fixedNow.Add(-time.Hour)})
	seedSale(t, db, other.UserID, saleSpec{amount: "999.00", method: models.PaymentCash, at: fixedNow.Add(-time.Hour)})

	agg := newTestAggregator(db)
	d, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)
	assert.Equal(t, "GHS 50.00", d.ShiftMetrics[0].Value, "another cashier's sales must not leak in")
}

func TestAuthorizationPolicy(t *testing.T) {
	db := newTestDB(t)
	cashier, admin := seedActors(t, db)
	agg := newTestAggregator(db)

	_, err := agg.ForCashier(admin, "today")
	var aerr *apperrors.AuthorizationError
	require.ErrorAs(t, err, &aerr)

	_, err = agg.ForAdmin(cashier, "today")
	require.ErrorAs(t, err, &aerr)
}

func TestAdminDashboardIncludesCatalogStats(t *testing.T) {
	db := newTestDB(t)
	cashier, admin := seedActors(t, db)
	seedCategories(t, db, "Beverages", "Snacks")
	seedSale(t, db, cashier.UserID, saleSpec{amount: "10.00", method: models.PaymentCash, at: fixedNow})

	agg := newTestAggregator(db)
	d, err := agg.ForAdmin(admin, "today")
	require.NoError(t, err)

	require.NotNil(t, d.Stats)
	assert.EqualValues(t, 2, d.Stats.Categories)
	assert.EqualValues(t, 2, d.Stats.Users)

	// The cashier bundle carries no stats block.
	d2, err := agg.ForCashier(cashier, "today")
	require.NoError(t, err)
	assert.Nil(t, d2.Stats)
}

func TestUnknownRangeRejected(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)

	agg := newTestAggregator(db)
	_, err := agg.ForCashier(cashier, "quarter")
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAggregatorIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	cashier, _ := seedActors(t, db)
	cats := seedCategories(t, db, "Beverages", "Snacks")

	seedSale(t, db, cashier.UserID, saleSpec{
		amount: "70.00", method: models.PaymentCash, at: fixedNow.Add(-3 * time.Hour),
		items: []itemSpec{
			{category: cats[0].CategoryID, product: 1, name: "Cola", qty: 3, total: "30.00"},
			{category: cats[1].CategoryID, product: 2, name: "Chips", qty: 4, total: "40.00"},
		},
	})

	agg := newTestAggregator(db)
	first, err := agg.ForCashier(cashier, "week")
	require.NoError(t, err)
	second, err := agg.ForCashier(cashier, "week")
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
