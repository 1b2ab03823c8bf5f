package engine

import (
	"sort"

	"github.com/merchops/pricedesk/internal/domain"
)

const (
	marginThiefThresholdPct = 10
	velocityCrashThreshold  = -30
	velocityCrashMinUnits   = 2
	deadStockMinTiedUpValue = 200
)

// BuildAlerts recomputes every alert bucket from the same period stats the
// dashboard tables display. Each bucket carries its own priority order:
// worst margin first, steepest crash first, closest stockout first, most
// tied-up capital first.
func BuildAlerts(products []domain.Product, stats []domain.PeriodStats, days int) domain.AlertBuckets {
	if days <= 0 {
		days = 1
	}

	statsBySKU := make(map[string]domain.PeriodStats, len(stats))
	for _, s := range stats {
		statsBySKU[s.SKU] = s
	}

	var buckets domain.AlertBuckets
	for _, p := range products {
		s := statsBySKU[p.SKU]
		item := domain.AlertItem{
			SKU:               p.SKU,
			Name:              p.Name,
			Stock:             p.Stock,
			Units:             s.Units,
			NetMargin:         s.NetMargin,
			VelocityChangePct: s.VelocityChangePct,
		}

		if s.Units > 0 && s.NetMargin < marginThiefThresholdPct {
			buckets.MarginThieves = append(buckets.MarginThieves, item)
		}

		if s.PrevUnits > velocityCrashMinUnits && s.VelocityChangePct < velocityCrashThreshold {
			buckets.VelocityCrashes = append(buckets.VelocityCrashes, item)
		}

		dailyVelocity := s.Units / float64(days)
		if p.Stock > 0 && dailyVelocity > 0 {
			runway := float64(p.Stock) / dailyVelocity
			if runway < p.LeadTimeDays {
				risk := item
				risk.RunwayDays = runway
				buckets.StockoutRisk = append(buckets.StockoutRisk, risk)
			}
		}

		tiedUp := float64(p.Stock) * p.CostPrice
		if tiedUp > deadStockMinTiedUpValue && s.Units == 0 {
			dead := item
			dead.TiedUpValue = tiedUp
			buckets.DeadStock = append(buckets.DeadStock, dead)
		}
	}

	sort.SliceStable(buckets.MarginThieves, func(i, j int) bool {
		return buckets.MarginThieves[i].NetMargin < buckets.MarginThieves[j].NetMargin
	})
	sort.SliceStable(buckets.VelocityCrashes, func(i, j int) bool {
		return buckets.VelocityCrashes[i].VelocityChangePct < buckets.VelocityCrashes[j].VelocityChangePct
	})
	sort.SliceStable(buckets.StockoutRisk, func(i, j int) bool {
		return buckets.StockoutRisk[i].Stock < buckets.StockoutRisk[j].Stock
	})
	sort.SliceStable(buckets.DeadStock, func(i, j int) bool {
		return buckets.DeadStock[i].TiedUpValue > buckets.DeadStock[j].TiedUpValue
	})

	return buckets
}
