package domain

// Derived, ephemeral value types produced by the engine on every
// recomputation. None of these are ever persisted; recomputing with
// identical inputs yields identical values.

// EffectiveRate is the velocity/price pair for a product under a filter
// scope. Visible is false when the scope matches none of the product's
// channels, in which case the product is excluded from the filtered view.
type EffectiveRate struct {
	Velocity float64 `json:"velocity"`
	Price    float64 `json:"price"`
	Visible  bool    `json:"visible"`
}

// Classification is the runway verdict for a single product.
type Classification struct {
	DaysRemaining  float64        `json:"days_remaining"`
	Status         Status         `json:"status"`
	Recommendation Recommendation `json:"recommendation"`
	Bin            RunwayBin      `json:"bin"`
}

// SimulatedPrice is a projected price plus whether it came from an explicit
// per-product override rather than the intensity projection.
type SimulatedPrice struct {
	Price      float64 `json:"price"`
	IsOverride bool    `json:"is_override"`
}

// PeriodStats aggregates one product's price logs over a date range.
type PeriodStats struct {
	SKU               string  `json:"sku"`
	Units             float64 `json:"units"`
	Revenue           float64 `json:"revenue"`
	Profit            float64 `json:"profit"`
	NetMargin         float64 `json:"net_margin"`
	PrevUnits         float64 `json:"prev_units"`
	VelocityChangePct float64 `json:"velocity_change_pct"`
}

// ProductRow is one row of the product table: the product's display
// fields plus every derived value the table shows, computed in a single
// pass so no surface can drift from another.
type ProductRow struct {
	SKU            string         `json:"sku"`
	Name           string         `json:"name"`
	Category       string         `json:"category,omitempty"`
	Brand          string         `json:"brand,omitempty"`
	CurrentPrice   float64        `json:"current_price"`
	CostPrice      float64        `json:"cost_price"`
	Stock          int            `json:"stock"`
	IncomingStock  int            `json:"incoming_stock"`
	LeadTimeDays   float64        `json:"lead_time_days"`
	ReturnRatePct  float64        `json:"return_rate_pct,omitempty"`
	Effective      EffectiveRate  `json:"effective"`
	Classification Classification `json:"classification"`
	Simulated      SimulatedPrice `json:"simulated"`
	GuardRail      string         `json:"guard_rail,omitempty"`
}

// ContainerSummary aggregates shipment lines across products for one
// container.
type ContainerSummary struct {
	ContainerID string `json:"container_id"`
	ETA         string `json:"eta,omitempty"`
	Stage       string `json:"stage"`
	TotalUnits  int    `json:"total_units"`
	SKUCount    int    `json:"sku_count"`
}
