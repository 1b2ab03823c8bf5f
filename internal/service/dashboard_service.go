package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/merchops/pricedesk/internal/cache"
	"github.com/merchops/pricedesk/internal/catalog"
	"github.com/merchops/pricedesk/internal/domain"
	"github.com/merchops/pricedesk/internal/engine"
)

// DashboardService computes the period dashboard: per-product period
// stats, catalog totals, status counts and the alert buckets, all from a
// single aggregation pass. An optional redis cache memoizes results per
// query; the computation itself is a pure function of the store contents.
type DashboardService struct {
	store *catalog.Store
	cache cache.DashboardCache

	includeTodayDefault bool
	defaultRange        engine.RangePreset
	now                 func() time.Time
}

func NewDashboardService(store *catalog.Store, cacheImpl cache.DashboardCache, includeToday bool, defaultRange string) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	preset := engine.RangePreset(defaultRange)
	switch preset {
	case engine.RangeYesterday, engine.Range7D, engine.Range30D:
	default:
		preset = engine.Range7D
	}
	return &DashboardService{
		store:               store,
		cache:               cacheImpl,
		includeTodayDefault: includeToday,
		defaultRange:        preset,
		now:                 time.Now,
	}
}

// Dashboard resolves the query's date range and returns the aggregated
// period view, serving a cached copy when one exists for the same query.
func (s *DashboardService) Dashboard(ctx context.Context, query domain.DashboardQuery) (*domain.Dashboard, error) {
	if dashboard, ok, err := s.cache.Get(ctx, query); err == nil && ok {
		return dashboard, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get failed")
	}

	dashboard := s.compute(query)

	if err := s.cache.Set(ctx, query, dashboard); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set failed")
	}

	return dashboard, nil
}

// Alerts returns only the alert buckets for a query.
func (s *DashboardService) Alerts(ctx context.Context, query domain.DashboardQuery) (domain.AlertBuckets, error) {
	dashboard, err := s.Dashboard(ctx, query)
	if err != nil {
		return domain.AlertBuckets{}, err
	}
	return dashboard.Alerts, nil
}

// Invalidate drops every cached dashboard, for use after a snapshot
// reload or catalog mutation.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache invalidation failed")
	}
}

func (s *DashboardService) compute(query domain.DashboardQuery) *domain.Dashboard {
	r := s.resolveRange(query)
	scope := domain.FilterScope{Platforms: query.Platforms, Manager: query.Manager}

	rules := s.store.Rules()

	// Scope filtering happens before aggregation: products with no
	// channel in scope contribute nothing to any displayed number.
	products := make([]domain.Product, 0)
	rates := make(map[string]domain.EffectiveRate)
	for _, p := range s.store.Products() {
		rate := engine.Aggregate(p, rules, scope)
		if !rate.Visible {
			continue
		}
		products = append(products, p)
		rates[p.SKU] = rate
	}

	stats := engine.AggregatePeriod(products, s.store.PriceLogs(), r, scope)

	dashboard := &domain.Dashboard{
		RangeStart:   r.Start.Format("2006-01-02"),
		RangeEnd:     r.End.Format("2006-01-02"),
		Days:         r.Days,
		StatusCounts: make(map[domain.Status]int),
		Stats:        stats,
		Alerts:       engine.BuildAlerts(products, stats, r.Days),
	}

	for _, st := range stats {
		dashboard.TotalUnits += st.Units
		dashboard.TotalRevenue += st.Revenue
		dashboard.TotalProfit += st.Profit
	}
	if dashboard.TotalRevenue > 0 {
		dashboard.AvgMarginPct = dashboard.TotalProfit / dashboard.TotalRevenue * 100
	}

	for _, p := range products {
		class := engine.Classify(p.Stock, rates[p.SKU].Velocity, p.LeadTimeDays)
		dashboard.StatusCounts[class.Status]++
	}

	return dashboard
}

// resolveRange maps the query onto a concrete window. Unparseable custom
// bounds fall back to the trailing 7 day preset rather than erroring: a
// bad date filter degrades to the default view.
func (s *DashboardService) resolveRange(query domain.DashboardQuery) engine.DateRange {
	preset := engine.RangePreset(query.Range)
	switch preset {
	case engine.RangeYesterday, engine.Range7D, engine.Range30D:
		return engine.ResolveRange(preset, s.now(), time.Time{}, time.Time{}, s.includeToday(query))
	case engine.RangeCustom:
		start, errStart := time.Parse("2006-01-02", query.Start)
		end, errEnd := time.Parse("2006-01-02", query.End)
		if errStart != nil || errEnd != nil {
			log.Warn().Str("start", query.Start).Str("end", query.End).Msg("invalid custom range, using default preset")
			return engine.ResolveRange(s.defaultRange, s.now(), time.Time{}, time.Time{}, s.includeToday(query))
		}
		return engine.ResolveRange(engine.RangeCustom, s.now(), start, end, s.includeToday(query))
	default:
		return engine.ResolveRange(s.defaultRange, s.now(), time.Time{}, time.Time{}, s.includeToday(query))
	}
}

func (s *DashboardService) includeToday(query domain.DashboardQuery) bool {
	return query.IncludeToday || s.includeTodayDefault
}
