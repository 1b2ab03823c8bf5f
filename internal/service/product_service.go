package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/merchops/pricedesk/internal/catalog"
	"github.com/merchops/pricedesk/internal/domain"
	"github.com/merchops/pricedesk/internal/engine"
	"github.com/merchops/pricedesk/internal/export"
	"github.com/merchops/pricedesk/internal/shipment"
)

const defaultPageSize = 50

// ProductService computes the product table and carries out the few
// catalog mutations this subsystem owns (alias edits, shipment merges).
// OnUpdateProduct and OnAnalyze are hooks for the parent application.
type ProductService struct {
	store *catalog.Store

	OnUpdateProduct func(domain.Product)
	OnAnalyze       func(domain.Product)

	now func() time.Time
}

func NewProductService(store *catalog.Store) *ProductService {
	return &ProductService{store: store, now: time.Now}
}

// ProductPage is one page of computed product rows.
type ProductPage struct {
	Rows     []domain.ProductRow `json:"rows"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// List filters the catalog by the view state, derives every displayed
// value per product in one pass and paginates the result. Filtering runs
// before any aggregation so displayed rows and displayed numbers can never
// desync.
func (s *ProductService) List(state domain.ViewState) ProductPage {
	rules := s.store.Rules()

	rows := make([]domain.ProductRow, 0)
	for _, p := range s.store.Products() {
		if !matchesFilters(p, state) {
			continue
		}

		rate := engine.Aggregate(p, rules, state.Scope)
		if !rate.Visible {
			continue
		}

		class := engine.Classify(p.Stock, rate.Velocity, p.LeadTimeDays)
		sim := engine.Simulate(p, class.Status, state.IntensityPct, state.Overrides, state.AllowOOSAdjustment)

		row := domain.ProductRow{
			SKU:            p.SKU,
			Name:           p.Name,
			Category:       p.Category,
			Brand:          p.Brand,
			CurrentPrice:   p.CurrentPrice,
			CostPrice:      p.CostPrice,
			Stock:          p.Stock,
			IncomingStock:  p.IncomingStock,
			LeadTimeDays:   p.LeadTimeDays,
			ReturnRatePct:  p.ReturnRatePct,
			Effective:      rate,
			Classification: class,
			Simulated:      sim,
			GuardRail:      string(engine.CheckGuardRail(p, sim.Price)),
		}
		rows = append(rows, row)
	}

	total := len(rows)
	page, pageSize := state.Page, state.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	start := (page - 1) * pageSize
	if start >= total {
		return ProductPage{Rows: []domain.ProductRow{}, Total: total, Page: page, PageSize: pageSize}
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return ProductPage{Rows: rows[start:end], Total: total, Page: page, PageSize: pageSize}
}

// Get returns one computed row for a single product, unscoped.
func (s *ProductService) Get(sku string) (domain.ProductRow, error) {
	p, ok := s.store.Product(sku)
	if !ok {
		return domain.ProductRow{}, fmt.Errorf("unknown product %q", sku)
	}

	rate := engine.Aggregate(p, s.store.Rules(), domain.FilterScope{})
	class := engine.Classify(p.Stock, rate.Velocity, p.LeadTimeDays)
	sim := engine.Simulate(p, class.Status, 0, nil, false)

	return domain.ProductRow{
		SKU:            p.SKU,
		Name:           p.Name,
		Category:       p.Category,
		Brand:          p.Brand,
		CurrentPrice:   p.CurrentPrice,
		CostPrice:      p.CostPrice,
		Stock:          p.Stock,
		IncomingStock:  p.IncomingStock,
		LeadTimeDays:   p.LeadTimeDays,
		ReturnRatePct:  p.ReturnRatePct,
		Effective:      rate,
		Classification: class,
		Simulated:      sim,
		GuardRail:      string(engine.CheckGuardRail(p, sim.Price)),
	}, nil
}

// ApplySimulation locks the currently visible simulated prices into
// overrides and returns the post-lock view state: intensity reset to zero
// so the batch cannot compound, locked flag set until the next edit.
func (s *ProductService) ApplySimulation(state domain.ViewState) (domain.ViewState, engine.ApplyResult) {
	rules := s.store.Rules()

	inputs := make([]engine.SimulationInput, 0)
	for _, p := range s.store.Products() {
		if !matchesFilters(p, state) {
			continue
		}
		rate := engine.Aggregate(p, rules, state.Scope)
		if !rate.Visible {
			continue
		}
		class := engine.Classify(p.Stock, rate.Velocity, p.LeadTimeDays)
		inputs = append(inputs, engine.SimulationInput{Product: p, Status: class.Status})
	}

	result := engine.ApplyAll(inputs, state.IntensityPct, state.Overrides, state.AllowOOSAdjustment)

	next := state
	next.Overrides = result.Overrides
	next.IntensityPct = 0
	next.Locked = true

	log.Info().
		Int("committed", result.Committed).
		Int("violations", len(result.Violations)).
		Msg("simulation batch locked")

	return next, result
}

// UpdateAliases replaces the alias string of a product's channel on one
// platform, creating the channel when the platform had none.
func (s *ProductService) UpdateAliases(sku, platform, aliases string) (domain.Product, error) {
	p, ok := s.store.Product(sku)
	if !ok {
		return domain.Product{}, fmt.Errorf("unknown product %q", sku)
	}

	found := false
	for i, ch := range p.Channels {
		if ch.Platform == platform {
			p.Channels[i].Aliases = aliases
			found = true
			break
		}
	}
	if !found {
		p.Channels = append(p.Channels, domain.Channel{Platform: platform, Aliases: aliases})
	}

	if err := s.store.UpdateProduct(p); err != nil {
		return domain.Product{}, err
	}
	s.notifyUpdate(p)

	return p, nil
}

// MergeShipments folds per-SKU shipment batches into the catalog. Unknown
// SKUs are skipped rather than failing the whole batch.
func (s *ProductService) MergeShipments(batches map[string][]domain.ShipmentDetail) int {
	updated := 0
	for sku, batch := range batches {
		p, ok := s.store.Product(sku)
		if !ok {
			log.Warn().Str("sku", sku).Msg("shipment batch for unknown product, skipping")
			continue
		}

		merged := shipment.Merge(p, batch, s.now())
		if err := s.store.UpdateProduct(merged); err != nil {
			log.Warn().Err(err).Str("sku", sku).Msg("shipment merge update failed")
			continue
		}
		s.notifyUpdate(merged)
		updated++
	}

	return updated
}

// Containers returns the per-container shipment aggregation.
func (s *ProductService) Containers() []domain.ContainerSummary {
	return shipment.GroupByContainer(s.store.Products())
}

// Analyze hands a single product off to the external analysis feature.
func (s *ProductService) Analyze(sku string) error {
	p, ok := s.store.Product(sku)
	if !ok {
		return fmt.Errorf("unknown product %q", sku)
	}
	if s.OnAnalyze != nil {
		s.OnAnalyze(p)
	}
	return nil
}

// ExportRows assembles export rows for every product. With a platform,
// each row carries that platform's alias string so the writer can expand
// one line per alias.
func (s *ProductService) ExportRows(platform string) []export.Row {
	rows := make([]export.Row, 0)
	for _, p := range s.store.Products() {
		class := engine.Classify(p.Stock, p.AvgDailySales, p.LeadTimeDays)
		row := export.Row{
			SKU:           p.SKU,
			Name:          p.Name,
			Price:         p.CurrentPrice,
			Stock:         p.Stock,
			Velocity:      p.AvgDailySales,
			RunwayDays:    class.DaysRemaining,
			Status:        class.Status,
			CostPrice:     p.CostPrice,
			ReturnRatePct: p.ReturnRatePct,
		}
		if platform != "" {
			for _, ch := range p.Channels {
				if ch.Platform == platform {
					row.Aliases = ch.Aliases
					break
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *ProductService) notifyUpdate(p domain.Product) {
	if s.OnUpdateProduct != nil {
		s.OnUpdateProduct(p)
	}
}

// matchesFilters applies the search and category filters. Search matches
// SKU, name and platform aliases, case-insensitively.
func matchesFilters(p domain.Product, state domain.ViewState) bool {
	if state.Category != "" && !strings.EqualFold(p.Category, state.Category) {
		return false
	}

	search := strings.ToLower(strings.TrimSpace(state.Search))
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.SKU), search) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	for _, ch := range p.Channels {
		if strings.Contains(strings.ToLower(ch.Aliases), search) {
			return true
		}
	}
	return false
}
