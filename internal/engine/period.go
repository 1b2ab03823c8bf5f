package engine

import (
	"github.com/merchops/pricedesk/internal/domain"
)

// AggregatePeriod folds raw per-day price logs into per-product period
// statistics for a window, with the symmetric previous window used for
// period-over-period deltas. Logs outside the platform scope are ignored;
// with no scope, rows from every platform are summed per SKU.
func AggregatePeriod(products []domain.Product, logs []domain.PriceLog, r DateRange, scope domain.FilterScope) []domain.PeriodStats {
	prev := PreviousRange(r)

	logsBySKU := make(map[string][]domain.PriceLog, len(products))
	for _, l := range logs {
		if !scope.HasPlatform(l.Platform) {
			continue
		}
		logsBySKU[l.SKU] = append(logsBySKU[l.SKU], l)
	}

	stats := make([]domain.PeriodStats, 0, len(products))
	for _, p := range products {
		var cur, prevTotals periodTotals
		for _, l := range logsBySKU[p.SKU] {
			switch {
			case r.Contains(l.Date):
				cur.add(l)
			case prev.Contains(l.Date):
				prevTotals.add(l)
			}
		}

		s := domain.PeriodStats{
			SKU:       p.SKU,
			Units:     cur.units,
			Revenue:   cur.revenue,
			Profit:    cur.profit,
			PrevUnits: prevTotals.units,
		}
		if cur.revenue > 0 {
			s.NetMargin = cur.profit / cur.revenue * 100
		}
		s.VelocityChangePct = velocityChangePct(cur.units, prevTotals.units)

		stats = append(stats, s)
	}

	return stats
}

type periodTotals struct {
	units   float64
	revenue float64
	profit  float64
}

func (t *periodTotals) add(l domain.PriceLog) {
	t.units += l.Velocity
	t.revenue += l.Velocity * l.Price
	if l.Profit != 0 {
		t.profit += l.Profit
	} else {
		t.profit += l.Velocity * l.Price * l.Margin / 100
	}
}

// velocityChangePct computes the period-over-period unit delta. A product
// with no previous-period sales but current sales reads as +100%; no sales
// in either period reads as flat.
func velocityChangePct(curUnits, prevUnits float64) float64 {
	if prevUnits > 0 {
		return (curUnits - prevUnits) / prevUnits * 100
	}
	if curUnits > 0 {
		return 100
	}
	return 0
}
