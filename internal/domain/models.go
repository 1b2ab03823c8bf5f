package domain

import "time"

// Product is a master catalog entity keyed by SKU. Channels carry its
// per-platform listings and Shipments its inbound containers.
type Product struct {
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Subcategory   string  `json:"subcategory,omitempty"`
	Brand         string  `json:"brand,omitempty"`
	CurrentPrice  float64 `json:"current_price"`
	CostPrice     float64 `json:"cost_price"`
	Stock         int     `json:"stock"`
	IncomingStock int     `json:"incoming_stock"`
	LeadTimeDays  float64 `json:"lead_time_days"`

	// AvgDailySales is the precomputed all-platform velocity the catalog
	// sync maintains; PrevDailySales is the preceding window's figure.
	AvgDailySales  float64 `json:"avg_daily_sales"`
	PrevDailySales float64 `json:"prev_daily_sales"`

	FloorPrice    float64 `json:"floor_price,omitempty"`
	CeilingPrice  float64 `json:"ceiling_price,omitempty"`
	OptimalPrice  float64 `json:"optimal_price,omitempty"`
	OldPrice      float64 `json:"old_price,omitempty"`
	ReturnRatePct float64 `json:"return_rate_pct,omitempty"`

	Channels  []Channel        `json:"channels,omitempty"`
	Shipments []ShipmentDetail `json:"shipments,omitempty"`
}

// Channel is a product's listing on a single sales platform.
// A product has at most one channel per platform.
type Channel struct {
	Platform string  `json:"platform"`
	Manager  string  `json:"manager,omitempty"`
	Velocity float64 `json:"velocity"`
	Price    float64 `json:"price,omitempty"`
	// Aliases holds the platform's own SKU(s) for this product as a
	// comma-separated string (one master SKU to many platform SKUs).
	Aliases string `json:"aliases,omitempty"`
}

// PriceLog is an immutable daily fact: one row per SKU per platform per day.
type PriceLog struct {
	SKU      string    `json:"sku"`
	Date     time.Time `json:"date"`
	Platform string    `json:"platform"`
	Price    float64   `json:"price"`
	Velocity float64   `json:"velocity"`
	Profit   float64   `json:"profit,omitempty"`
	Margin   float64   `json:"margin,omitempty"`
}

// PriceChangeRecord is a price-change event used to correlate changes with
// before/after velocity windows.
type PriceChangeRecord struct {
	SKU       string    `json:"sku"`
	Date      time.Time `json:"date"`
	OldPrice  float64   `json:"old_price"`
	NewPrice  float64   `json:"new_price"`
	ChangePct float64   `json:"change_pct"`
}

// PricingRule is the read-only per-platform configuration.
type PricingRule struct {
	CommissionPct float64 `json:"commission_pct"`
	MarkupPct     float64 `json:"markup_pct"`
	Manager       string  `json:"manager"`
	Color         string  `json:"color,omitempty"`
}

// PricingRules maps platform name to its rule.
type PricingRules map[string]PricingRule

// ShipmentDetail is one inbound container line for a product.
type ShipmentDetail struct {
	ContainerID string    `json:"container_id"`
	ETA         time.Time `json:"eta,omitzero"`
	Status      string    `json:"status"`
	Quantity    int       `json:"quantity"`
}
