package domain

// Status classifies a product's inventory runway.
type Status string

const (
	StatusCritical  Status = "Critical"
	StatusWarning   Status = "Warning"
	StatusHealthy   Status = "Healthy"
	StatusOverstock Status = "Overstock"
)

// Recommendation is the suggested pricing action for a status.
type Recommendation string

const (
	RecommendOutOfStock    Recommendation = "Out of Stock"
	RecommendIncreasePrice Recommendation = "Increase Price"
	RecommendDecreasePrice Recommendation = "Decrease Price"
	RecommendMaintain      Recommendation = "Maintain"
)

var statusSeverity = map[Status]int{
	StatusCritical:  3,
	StatusWarning:   2,
	StatusHealthy:   1,
	StatusOverstock: 0,
}

// Severity returns the urgency rank of a status (higher is more urgent).
// Unknown statuses rank lowest.
func (s Status) Severity() int {
	return statusSeverity[s]
}

// RunwayBin is the discrete badge label a runway value is grouped into.
// It is display grouping only and is always derived from the same
// DaysRemaining figure as the status so the two can never disagree.
type RunwayBin string

const (
	BinOutOfStock RunwayBin = "Out of Stock"
	BinTwoWeeks   RunwayBin = "≤ 14 days"
	BinFourWeeks  RunwayBin = "≤ 28 days"
	BinQuarter    RunwayBin = "≤ 84 days"
	BinHalfYear   RunwayBin = "≤ 168 days"
	BinLongTail   RunwayBin = "> 168 days"
)
