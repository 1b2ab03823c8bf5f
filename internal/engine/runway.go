package engine

import "github.com/merchops/pricedesk/internal/domain"

// InfiniteRunwayDays is the sentinel for "stock never depletes at the
// current velocity". It deliberately exceeds every lead-time multiple the
// decision table uses, so zero-velocity stock always lands in Overstock.
const InfiniteRunwayDays = 999

// Classify computes days of runway for a stock level and velocity and maps
// it to a status/recommendation pair plus the display bin. The decision
// table is evaluated strictly in order; the first matching branch wins.
func Classify(stock int, velocity, leadTimeDays float64) domain.Classification {
	var days float64
	switch {
	case stock <= 0:
		days = 0
	case velocity <= 0:
		days = InfiniteRunwayDays
	default:
		days = float64(stock) / velocity
	}

	c := domain.Classification{
		DaysRemaining: days,
		Bin:           runwayBin(stock, days),
	}

	switch {
	case stock <= 0:
		c.Status = domain.StatusCritical
		c.Recommendation = domain.RecommendOutOfStock
	case days < leadTimeDays:
		c.Status = domain.StatusCritical
		c.Recommendation = domain.RecommendIncreasePrice
	case days > leadTimeDays*4:
		c.Status = domain.StatusOverstock
		c.Recommendation = domain.RecommendDecreasePrice
	case days < leadTimeDays*1.5:
		c.Status = domain.StatusWarning
		c.Recommendation = domain.RecommendMaintain
	default:
		c.Status = domain.StatusHealthy
		c.Recommendation = domain.RecommendMaintain
	}

	return c
}

// runwayBin buckets a runway value into its badge label. Bins share the
// DaysRemaining value with the status table so the badge and the status
// can never disagree about the same product.
func runwayBin(stock int, days float64) domain.RunwayBin {
	switch {
	case stock <= 0:
		return domain.BinOutOfStock
	case days <= 14:
		return domain.BinTwoWeeks
	case days <= 28:
		return domain.BinFourWeeks
	case days <= 84:
		return domain.BinQuarter
	case days <= 168:
		return domain.BinHalfYear
	default:
		return domain.BinLongTail
	}
}
