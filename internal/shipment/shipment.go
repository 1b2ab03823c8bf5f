package shipment

import (
	"sort"
	"strings"
	"time"

	"github.com/merchops/pricedesk/internal/domain"
)

// Stage is the coarse state a free-text shipment status classifies into.
type Stage string

const (
	StagePending Stage = "pending"
	StageShipped Stage = "shipped"
	StageArrived Stage = "arrived"
)

// ClassifyStatus buckets a free-text carrier status by substring. Statuses
// mentioning arrival or delivery win over shipped, which wins over the
// pending default, so "shipped, delivered" reads as arrived.
func ClassifyStatus(raw string) Stage {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "arriv"), strings.Contains(s, "deliver"):
		return StageArrived
	case strings.Contains(s, "ship"), strings.Contains(s, "transit"):
		return StageShipped
	default:
		return StagePending
	}
}

// Merge folds a batch of shipment lines into a product's shipment list and
// returns the updated product. Lines are keyed by container ID: a known
// container is replaced, an unknown one appended. Incoming stock becomes
// the sum of all shipment quantities, and lead time is recomputed from the
// earliest future ETA. The input product is never mutated.
func Merge(p domain.Product, batch []domain.ShipmentDetail, today time.Time) domain.Product {
	merged := make([]domain.ShipmentDetail, len(p.Shipments))
	copy(merged, p.Shipments)

	for _, incoming := range batch {
		replaced := false
		for i, existing := range merged {
			if existing.ContainerID == incoming.ContainerID {
				merged[i] = incoming
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, incoming)
		}
	}

	next := p
	next.Shipments = merged

	total := 0
	for _, s := range merged {
		total += s.Quantity
	}
	next.IncomingStock = total

	if days, ok := leadTimeFromShipments(merged, today); ok {
		next.LeadTimeDays = days
	}

	return next
}

// leadTimeFromShipments derives lead time in days from the earliest
// shipment whose ETA is today or later. Shipments without an ETA, or whose
// ETA already passed, never move the lead time.
func leadTimeFromShipments(shipments []domain.ShipmentDetail, today time.Time) (float64, bool) {
	day := 24 * time.Hour
	anchor := today.Truncate(day)

	var earliest time.Time
	for _, s := range shipments {
		if s.ETA.IsZero() {
			continue
		}
		eta := s.ETA.Truncate(day)
		if eta.Before(anchor) {
			continue
		}
		if earliest.IsZero() || eta.Before(earliest) {
			earliest = eta
		}
	}
	if earliest.IsZero() {
		return 0, false
	}

	return earliest.Sub(anchor).Hours() / 24, true
}

// GroupByContainer aggregates shipment lines across the whole catalog into
// one summary per container, ordered by ETA with undated containers last.
func GroupByContainer(products []domain.Product) []domain.ContainerSummary {
	type acc struct {
		summary domain.ContainerSummary
		eta     time.Time
		skus    map[string]struct{}
	}

	byContainer := make(map[string]*acc)
	order := make([]string, 0)
	for _, p := range products {
		for _, s := range p.Shipments {
			a, ok := byContainer[s.ContainerID]
			if !ok {
				a = &acc{
					summary: domain.ContainerSummary{
						ContainerID: s.ContainerID,
						Stage:       string(ClassifyStatus(s.Status)),
					},
					skus: make(map[string]struct{}),
				}
				byContainer[s.ContainerID] = a
				order = append(order, s.ContainerID)
			}
			a.summary.TotalUnits += s.Quantity
			a.skus[p.SKU] = struct{}{}
			if !s.ETA.IsZero() && (a.eta.IsZero() || s.ETA.Before(a.eta)) {
				a.eta = s.ETA
			}
		}
	}

	summaries := make([]domain.ContainerSummary, 0, len(byContainer))
	for _, id := range order {
		a := byContainer[id]
		a.summary.SKUCount = len(a.skus)
		if !a.eta.IsZero() {
			a.summary.ETA = a.eta.Format("2006-01-02")
		}
		summaries = append(summaries, a.summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].ETA == summaries[j].ETA {
			return summaries[i].ContainerID < summaries[j].ContainerID
		}
		if summaries[i].ETA == "" {
			return false
		}
		if summaries[j].ETA == "" {
			return true
		}
		return summaries[i].ETA < summaries[j].ETA
	})

	return summaries
}
