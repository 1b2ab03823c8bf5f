package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchops/pricedesk/internal/catalog"
	"github.com/merchops/pricedesk/internal/domain"
)

var dashboardNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func newDashboardStore() *catalog.Store {
	s := newTestStore()

	snap := catalog.Snapshot{
		Products: s.Products(),
		PriceLogs: []domain.PriceLog{
			{SKU: "A1", Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Platform: "Amazon", Price: 10, Velocity: 3},
			{SKU: "A1", Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Platform: "eBay", Price: 12, Velocity: 2},
			{SKU: "A1", Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Platform: "Amazon", Price: 10, Velocity: 10},
		},
		PricingRules: s.Rules(),
	}
	out := catalog.New()
	out.Load(snap)
	return out
}

func newDashboardService(store *catalog.Store) *DashboardService {
	svc := NewDashboardService(store, nil, false, "7d")
	svc.now = func() time.Time { return dashboardNow }
	return svc
}

func TestDashboardTotalsReconcileWithStats(t *testing.T) {
	svc := newDashboardService(newDashboardStore())

	d, err := svc.Dashboard(context.Background(), domain.DashboardQuery{Range: "7d"})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-08", d.RangeStart)
	assert.Equal(t, "2025-03-14", d.RangeEnd)
	assert.Equal(t, 7, d.Days)

	assert.Equal(t, float64(5), d.TotalUnits)
	assert.InDelta(t, 54, d.TotalRevenue, 1e-9)

	var units, revenue float64
	for _, s := range d.Stats {
		units += s.Units
		revenue += s.Revenue
	}
	assert.Equal(t, d.TotalUnits, units)
	assert.InDelta(t, d.TotalRevenue, revenue, 1e-9)
}

func TestDashboardStatusCounts(t *testing.T) {
	svc := newDashboardService(newDashboardStore())

	d, err := svc.Dashboard(context.Background(), domain.DashboardQuery{Range: "7d"})
	require.NoError(t, err)

	assert.Equal(t, 2, d.StatusCounts[domain.StatusCritical])
	assert.Equal(t, 1, d.StatusCounts[domain.StatusOverstock])
}

func TestDashboardPlatformScopeNarrowsEverything(t *testing.T) {
	svc := newDashboardService(newDashboardStore())

	d, err := svc.Dashboard(context.Background(), domain.DashboardQuery{
		Range:     "7d",
		Platforms: []string{"Amazon"},
	})
	require.NoError(t, err)

	// C3 has no Amazon channel: not in stats, not in status counts.
	assert.Len(t, d.Stats, 2)
	assert.Equal(t, 0, d.StatusCounts[domain.StatusOverstock])
	assert.Equal(t, float64(3), d.TotalUnits)
	assert.InDelta(t, 30, d.TotalRevenue, 1e-9)
}

func TestDashboardVelocityCrashAlert(t *testing.T) {
	svc := newDashboardService(newDashboardStore())

	d, err := svc.Dashboard(context.Background(), domain.DashboardQuery{Range: "7d"})
	require.NoError(t, err)

	// A1 went from 10 units to 5.
	require.Len(t, d.Alerts.VelocityCrashes, 1)
	assert.Equal(t, "A1", d.Alerts.VelocityCrashes[0].SKU)
	assert.InDelta(t, -50, d.Alerts.VelocityCrashes[0].VelocityChangePct, 1e-9)
}

func TestDashboardInvalidCustomRangeFallsBackTo7D(t *testing.T) {
	svc := newDashboardService(newDashboardStore())

	d, err := svc.Dashboard(context.Background(), domain.DashboardQuery{
		Range: "custom",
		Start: "not-a-date",
		End:   "2025-03-10",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, d.Days)
	assert.Equal(t, "2025-03-14", d.RangeEnd)
}

func TestDashboardCustomRange(t *testing.T) {
	svc := newDashboardService(newDashboardStore())

	d, err := svc.Dashboard(context.Background(), domain.DashboardQuery{
		Range: "custom",
		Start: "2025-03-10",
		End:   "2025-03-10",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, d.Days)
	assert.Equal(t, float64(5), d.TotalUnits)
}

func TestDashboardIncludeTodayShiftsWindow(t *testing.T) {
	svc := newDashboardService(newDashboardStore())

	d, err := svc.Dashboard(context.Background(), domain.DashboardQuery{
		Range:        "7d",
		IncludeToday: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-15", d.RangeEnd)
	assert.Equal(t, "2025-03-09", d.RangeStart)
}

func TestDashboardEmptyRangeUsesConfiguredDefault(t *testing.T) {
	svc := NewDashboardService(newDashboardStore(), nil, false, "30d")
	svc.now = func() time.Time { return dashboardNow }

	d, err := svc.Dashboard(context.Background(), domain.DashboardQuery{})
	require.NoError(t, err)

	assert.Equal(t, 30, d.Days)
	assert.Equal(t, "2025-03-14", d.RangeEnd)
}

func TestDashboardEmptyCatalog(t *testing.T) {
	svc := newDashboardService(catalog.New())

	d, err := svc.Dashboard(context.Background(), domain.DashboardQuery{Range: "30d"})
	require.NoError(t, err)

	assert.Empty(t, d.Stats)
	assert.Equal(t, float64(0), d.TotalUnits)
	assert.Equal(t, float64(0), d.AvgMarginPct)
}

type fakeDashboardCache struct {
	entries map[string]*domain.Dashboard
	gets    int
	sets    int
}

func (f *fakeDashboardCache) Get(_ context.Context, query domain.DashboardQuery) (*domain.Dashboard, bool, error) {
	f.gets++
	d, ok := f.entries[query.Range]
	return d, ok, nil
}

func (f *fakeDashboardCache) Set(_ context.Context, query domain.DashboardQuery, dashboard *domain.Dashboard) error {
	f.sets++
	f.entries[query.Range] = dashboard
	return nil
}

func (f *fakeDashboardCache) InvalidateAll(_ context.Context) error {
	f.entries = map[string]*domain.Dashboard{}
	return nil
}

func TestDashboardServesCachedCopy(t *testing.T) {
	fake := &fakeDashboardCache{entries: map[string]*domain.Dashboard{}}
	svc := NewDashboardService(newDashboardStore(), fake, false, "7d")
	svc.now = func() time.Time { return dashboardNow }

	query := domain.DashboardQuery{Range: "7d"}

	first, err := svc.Dashboard(context.Background(), query)
	require.NoError(t, err)
	second, err := svc.Dashboard(context.Background(), query)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 2, fake.gets)
	assert.Equal(t, 1, fake.sets)

	svc.Invalidate(context.Background())
	third, err := svc.Dashboard(context.Background(), query)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, fake.sets)
}
