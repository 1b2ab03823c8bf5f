package domain

// AlertItem is one product's entry in an alert bucket.
type AlertItem struct {
	SKU               string  `json:"sku"`
	Name              string  `json:"name"`
	Stock             int     `json:"stock"`
	Units             float64 `json:"units"`
	NetMargin         float64 `json:"net_margin"`
	VelocityChangePct float64 `json:"velocity_change_pct"`
	RunwayDays        float64 `json:"runway_days,omitempty"`
	TiedUpValue       float64 `json:"tied_up_value,omitempty"`
}

// AlertBuckets groups products needing attention. Membership is evaluated
// independently per rule: a product can land in several buckets at once.
type AlertBuckets struct {
	MarginThieves   []AlertItem `json:"margin_thieves"`
	VelocityCrashes []AlertItem `json:"velocity_crashes"`
	StockoutRisk    []AlertItem `json:"stockout_risk"`
	DeadStock       []AlertItem `json:"dead_stock"`
}

// DashboardQuery identifies one period dashboard computation. It doubles
// as the cache key source, so every input that changes the output must
// appear here.
type DashboardQuery struct {
	Range        string   `json:"range"`
	Start        string   `json:"start,omitempty"`
	End          string   `json:"end,omitempty"`
	Platforms    []string `json:"platforms,omitempty"`
	Manager      string   `json:"manager,omitempty"`
	IncludeToday bool     `json:"include_today"`
}

// Dashboard is the aggregated period view: totals, per-product stats and
// the alert buckets, all derived from the same aggregation pass.
type Dashboard struct {
	RangeStart   string         `json:"range_start"`
	RangeEnd     string         `json:"range_end"`
	Days         int            `json:"days"`
	TotalUnits   float64        `json:"total_units"`
	TotalRevenue float64        `json:"total_revenue"`
	TotalProfit  float64        `json:"total_profit"`
	AvgMarginPct float64        `json:"avg_margin_pct"`
	StatusCounts map[Status]int `json:"status_counts"`
	Stats        []PeriodStats  `json:"stats"`
	Alerts       AlertBuckets   `json:"alerts"`
}
