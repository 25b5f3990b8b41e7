package dashboard

// CashierInfo identifies the actor the dashboard was built for.
type CashierInfo struct {
	UserID       uint   `json:"user_id"`
	FullName     string `json:"full_name"`
	EmployeeCode string `json:"employee_code"`
	Role         string `json:"role"`
}

// ShiftMetric is one headline figure with its change versus the prior
// day. Value is already formatted for display. Available is false for
// metrics the system has no data source for (the rating placeholder is
// reported honestly as unavailable instead of fabricated).
type ShiftMetric struct {
	Label     string  `json:"label"`
	Value     string  `json:"value"`
	Change    float64 `json:"change"`
	Available bool    `json:"available"`
}

// TrendPoint is one bucket of the sales trend series: an hour of the
// current day, or one calendar day for week/month ranges. Empty
// buckets are present with zero values.
type TrendPoint struct {
	Label        string `json:"label"`
	Sales        string `json:"sales"`
	Transactions int64  `json:"transactions"`
}

// CategorySlice is one wedge of the category breakdown.
type CategorySlice struct {
	Name    string  `json:"name"`
	Amount  string  `json:"amount"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// TopProduct is one row of the top-products report.
type TopProduct struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Revenue     string `json:"revenue"`
}

// RecentTransaction is one row of the recent-transactions list.
type RecentTransaction struct {
	DisplayID     string `json:"display_id"`
	Time          string `json:"time"`
	Items         int64  `json:"items"`
	Amount        string `json:"amount"`
	PaymentMethod string `json:"payment_method"`
}

// DailyPerformance compares one of the trailing seven days against its
// sales target.
type DailyPerformance struct {
	Day    string `json:"day"`
	Actual string `json:"actual"`
	Target string `json:"target"`
}

// PaymentMethodStat is one row of the payment-method breakdown.
type PaymentMethodStat struct {
	Method  string  `json:"method"`
	Count   int64   `json:"count"`
	Amount  string  `json:"amount"`
	Percent float64 `json:"percent"`
}

// CatalogStats is the admin-only block of entity counts and alerts.
type CatalogStats struct {
	Products     int64 `json:"products"`
	Categories   int64 `json:"categories"`
	Suppliers    int64 `json:"suppliers"`
	Users        int64 `json:"users"`
	LowStock     int64 `json:"low_stock"`
	ExpiringSoon int64 `json:"expiring_soon"`
}

// Dashboard is the full aggregated bundle returned to the presentation
// layer.
type Dashboard struct {
	Cashier            CashierInfo         `json:"cashier"`
	Range              TimeRange           `json:"range"`
	ShiftMetrics       []ShiftMetric       `json:"shift_metrics"`
	SalesTrend         []TrendPoint        `json:"sales_trend"`
	Categories         []CategorySlice     `json:"categories"`
	TopProducts        []TopProduct        `json:"top_products"`
	RecentTransactions []RecentTransaction `json:"recent_transactions"`
	DailyPerformance   []DailyPerformance  `json:"daily_performance"`
	PaymentMethods     []PaymentMethodStat `json:"payment_methods"`
	Stats              *CatalogStats       `json:"stats,omitempty"`
}
