package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/merchops/pricedesk/internal/domain"
)

func TestClassifyOutOfStockPrecedence(t *testing.T) {
	// Stock zero always wins, whatever the velocity says.
	c := Classify(0, 10, 7)

	assert.Equal(t, float64(0), c.DaysRemaining)
	assert.Equal(t, domain.StatusCritical, c.Status)
	assert.Equal(t, domain.RecommendOutOfStock, c.Recommendation)
	assert.Equal(t, domain.BinOutOfStock, c.Bin)
}

func TestClassifyZeroVelocityIsOverstock(t *testing.T) {
	c := Classify(5, 0, 7)

	assert.Equal(t, float64(InfiniteRunwayDays), c.DaysRemaining)
	assert.Equal(t, domain.StatusOverstock, c.Status)
	assert.Equal(t, domain.RecommendDecreasePrice, c.Recommendation)
}

func TestClassifyDecisionTable(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		velocity float64
		leadTime float64
		status   domain.Status
		rec      domain.Recommendation
	}{
		{"below lead time", 10, 2, 7, domain.StatusCritical, domain.RecommendIncreasePrice},
		{"beyond four lead times", 300, 2, 7, domain.StatusOverstock, domain.RecommendDecreasePrice},
		{"inside warning band", 18, 2, 7, domain.StatusWarning, domain.RecommendMaintain},
		{"healthy middle", 40, 2, 7, domain.StatusHealthy, domain.RecommendMaintain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.stock, tt.velocity, tt.leadTime)
			assert.Equal(t, tt.status, c.Status)
			assert.Equal(t, tt.rec, c.Recommendation)
		})
	}
}

func TestClassifyRunwayMonotonicity(t *testing.T) {
	// For fixed stock and lead time: more velocity never means more days
	// of runway, and status urgency never improves.
	const stock, leadTime = 50, 7

	prevDays := float64(InfiniteRunwayDays) + 1
	prevSeverity := -1
	for _, velocity := range []float64{0, 0.5, 1, 2, 5, 10, 25, 100} {
		c := Classify(stock, velocity, leadTime)
		assert.LessOrEqual(t, c.DaysRemaining, prevDays, "velocity %v", velocity)
		assert.GreaterOrEqual(t, c.Status.Severity(), prevSeverity, "velocity %v", velocity)
		prevDays = c.DaysRemaining
		prevSeverity = c.Status.Severity()
	}
}

func TestRunwayBins(t *testing.T) {
	tests := []struct {
		stock int
		days  float64
		bin   domain.RunwayBin
	}{
		{0, 0, domain.BinOutOfStock},
		{1, 14, domain.BinTwoWeeks},
		{1, 20, domain.BinFourWeeks},
		{1, 84, domain.BinQuarter},
		{1, 100, domain.BinHalfYear},
		{1, 999, domain.BinLongTail},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.bin, runwayBin(tt.stock, tt.days), "days %v", tt.days)
	}
}

func TestClassifyBinAgreesWithStatusDays(t *testing.T) {
	// The badge bin must derive from the same DaysRemaining as the status.
	c := Classify(10, 1, 7)
	assert.Equal(t, float64(10), c.DaysRemaining)
	assert.Equal(t, domain.BinTwoWeeks, c.Bin)
}
