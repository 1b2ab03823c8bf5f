package engine

import (
	"math"

	"github.com/merchops/pricedesk/internal/domain"
)

// applyEpsilon is the float tolerance below which a simulated price is
// considered unchanged and not worth committing.
const applyEpsilon = 0.001

// minLockedPrice is the lowest price psychological rounding may produce.
const minLockedPrice = 0.99

// Simulate projects a product's price for a bulk adjustment intensity.
// An explicit override always wins verbatim. Out-of-stock products keep
// their current price unless OOS adjustment is explicitly allowed.
// Otherwise the status picks the direction: Critical marks up, Overstock
// marks down, anything else leaves the price alone.
func Simulate(p domain.Product, status domain.Status, intensityPct float64, overrides map[string]float64, allowOOS bool) domain.SimulatedPrice {
	if price, ok := overrides[p.SKU]; ok {
		return domain.SimulatedPrice{Price: price, IsOverride: true}
	}

	if p.Stock <= 0 && !allowOOS {
		return domain.SimulatedPrice{Price: p.CurrentPrice}
	}

	multiplier := 1.0
	switch status {
	case domain.StatusCritical:
		multiplier = 1 + intensityPct/100
	case domain.StatusOverstock:
		multiplier = 1 - intensityPct/100
	}

	return domain.SimulatedPrice{Price: roundFloat(p.CurrentPrice*multiplier, 2)}
}

// PsychologicalRound converts a projected price into the committed form:
// just under the next whole unit, never below minLockedPrice.
func PsychologicalRound(price float64) float64 {
	rounded := math.Ceil(price) - 0.01
	if rounded <= 0 {
		return minLockedPrice
	}
	return rounded
}

// GuardRail identifies a floor/ceiling breach. Violations are surfaced to
// the operator but never block a price: operators may cross guard rails
// intentionally.
type GuardRail string

const (
	GuardRailNone         GuardRail = ""
	GuardRailBelowFloor   GuardRail = "below_floor"
	GuardRailAboveCeiling GuardRail = "above_ceiling"
)

// CheckGuardRail flags a price that crosses the product's floor or ceiling
// bound. A zero bound means the bound is not set.
func CheckGuardRail(p domain.Product, price float64) GuardRail {
	if p.FloorPrice > 0 && price < p.FloorPrice {
		return GuardRailBelowFloor
	}
	if p.CeilingPrice > 0 && price > p.CeilingPrice {
		return GuardRailAboveCeiling
	}
	return GuardRailNone
}

// SimulationInput pairs a product with its already-computed status so a
// bulk apply never re-derives classification from a different velocity
// scope than the one on screen.
type SimulationInput struct {
	Product domain.Product
	Status  domain.Status
}

// ApplyResult is the outcome of locking a simulated batch.
type ApplyResult struct {
	// Overrides is the new committed override map: every pre-existing
	// override verbatim plus one psychologically rounded entry per product
	// whose simulated price moved.
	Overrides map[string]float64
	// Committed counts the newly locked prices.
	Committed int
	// Violations maps SKUs whose committed price crosses a guard rail.
	Violations map[string]GuardRail
}

// ApplyAll converts simulated prices into committed overrides. Only
// products whose projection differs from the current price by more than
// applyEpsilon are locked; products that already carry an explicit
// override keep it untouched. After a lock the caller must reset the
// intensity to zero so the batch cannot silently compound on the next
// slider touch.
func ApplyAll(items []SimulationInput, intensityPct float64, overrides map[string]float64, allowOOS bool) ApplyResult {
	result := ApplyResult{
		Overrides:  make(map[string]float64, len(overrides)),
		Violations: make(map[string]GuardRail),
	}
	for sku, price := range overrides {
		result.Overrides[sku] = price
	}

	for _, item := range items {
		sim := Simulate(item.Product, item.Status, intensityPct, overrides, allowOOS)
		if sim.IsOverride {
			continue
		}
		if math.Abs(sim.Price-item.Product.CurrentPrice) <= applyEpsilon {
			continue
		}

		locked := PsychologicalRound(sim.Price)
		result.Overrides[item.Product.SKU] = locked
		result.Committed++

		if rail := CheckGuardRail(item.Product, locked); rail != GuardRailNone {
			result.Violations[item.Product.SKU] = rail
		}
	}

	return result
}
