package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/merchops/pricedesk/internal/domain"
)

func TestSimulateOverrideAlwaysWins(t *testing.T) {
	p := domain.Product{SKU: "A1", CurrentPrice: 20, Stock: 10}
	overrides := map[string]float64{"A1": 42.5}

	for _, status := range []domain.Status{domain.StatusCritical, domain.StatusOverstock, domain.StatusHealthy} {
		sim := Simulate(p, status, 50, overrides, false)
		assert.Equal(t, 42.5, sim.Price)
		assert.True(t, sim.IsOverride)
	}
}

func TestSimulateOutOfStockFrozenUnlessAllowed(t *testing.T) {
	p := domain.Product{SKU: "A1", CurrentPrice: 20, Stock: 0}

	frozen := Simulate(p, domain.StatusCritical, 10, nil, false)
	assert.Equal(t, float64(20), frozen.Price)

	adjusted := Simulate(p, domain.StatusCritical, 10, nil, true)
	assert.Equal(t, float64(22), adjusted.Price)
}

func TestSimulateStatusDirection(t *testing.T) {
	p := domain.Product{SKU: "A1", CurrentPrice: 19.4, Stock: 10}

	up := Simulate(p, domain.StatusCritical, 10, nil, false)
	assert.InDelta(t, 21.34, up.Price, 1e-9)

	down := Simulate(p, domain.StatusOverstock, 10, nil, false)
	assert.InDelta(t, 17.46, down.Price, 1e-9)

	flat := Simulate(p, domain.StatusHealthy, 10, nil, false)
	assert.Equal(t, 19.4, flat.Price)

	warning := Simulate(p, domain.StatusWarning, 10, nil, false)
	assert.Equal(t, 19.4, warning.Price)
}

func TestPsychologicalRound(t *testing.T) {
	assert.InDelta(t, 20.99, PsychologicalRound(20.15), 1e-9)
	assert.InDelta(t, 21.99, PsychologicalRound(21.01), 1e-9)
	assert.InDelta(t, 0.99, PsychologicalRound(0.4), 1e-9)
	assert.InDelta(t, 0.99, PsychologicalRound(-3), 1e-9)
}

func TestCheckGuardRail(t *testing.T) {
	p := domain.Product{FloorPrice: 10, CeilingPrice: 30}

	assert.Equal(t, GuardRailBelowFloor, CheckGuardRail(p, 9.5))
	assert.Equal(t, GuardRailAboveCeiling, CheckGuardRail(p, 31))
	assert.Equal(t, GuardRailNone, CheckGuardRail(p, 15))

	unbounded := domain.Product{}
	assert.Equal(t, GuardRailNone, CheckGuardRail(unbounded, 0.5))
}

func TestApplyAllCommitsRoundedPrices(t *testing.T) {
	items := []SimulationInput{
		{Product: domain.Product{SKU: "A1", CurrentPrice: 19.4, Stock: 5}, Status: domain.StatusCritical},
		{Product: domain.Product{SKU: "B2", CurrentPrice: 10, Stock: 50}, Status: domain.StatusHealthy},
	}

	// Intensity ~3.87% lifts 19.40 to 20.15, which locks at 20.99.
	result := ApplyAll(items, 3.87, nil, false)

	assert.Equal(t, 1, result.Committed)
	assert.InDelta(t, 20.99, result.Overrides["A1"], 1e-9)
	_, hasB2 := result.Overrides["B2"]
	assert.False(t, hasB2, "unchanged products must not be committed")
}

func TestApplyAllKeepsExistingOverridesVerbatim(t *testing.T) {
	items := []SimulationInput{
		{Product: domain.Product{SKU: "A1", CurrentPrice: 19.4, Stock: 5}, Status: domain.StatusCritical},
	}
	overrides := map[string]float64{"A1": 18.7}

	result := ApplyAll(items, 10, overrides, false)

	assert.Equal(t, 0, result.Committed)
	assert.Equal(t, 18.7, result.Overrides["A1"])
	// The input map is left untouched.
	assert.Equal(t, 18.7, overrides["A1"])
}

func TestApplyAllSkipsEpsilonChanges(t *testing.T) {
	items := []SimulationInput{
		{Product: domain.Product{SKU: "A1", CurrentPrice: 20, Stock: 5}, Status: domain.StatusHealthy},
	}

	result := ApplyAll(items, 25, nil, false)

	assert.Equal(t, 0, result.Committed)
	assert.Empty(t, result.Overrides)
}

func TestApplyAllFlagsGuardRailViolations(t *testing.T) {
	items := []SimulationInput{
		{
			Product: domain.Product{SKU: "A1", CurrentPrice: 19.4, Stock: 5, CeilingPrice: 20},
			Status:  domain.StatusCritical,
		},
	}

	result := ApplyAll(items, 10, nil, false)

	assert.Equal(t, 1, result.Committed)
	assert.Equal(t, GuardRailAboveCeiling, result.Violations["A1"])
	// Violations are soft: the price is committed anyway.
	assert.InDelta(t, 21.99, result.Overrides["A1"], 1e-9)
}
