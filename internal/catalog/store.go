package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/merchops/pricedesk/internal/domain"
)

// Snapshot is the JSON document the parent catalog sync hands this service.
type Snapshot struct {
	Products     []domain.Product           `json:"products"`
	PriceLogs    []domain.PriceLog          `json:"price_logs"`
	PriceChanges []domain.PriceChangeRecord `json:"price_changes,omitempty"`
	PricingRules domain.PricingRules        `json:"pricing_rules,omitempty"`
}

// ReadSnapshot loads a catalog snapshot from a JSON file.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	return snap, nil
}

// Store holds the catalog collections in memory. Reads hand out copies and
// writes replace whole records, so callers can never alias internal state.
type Store struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
	logs     []domain.PriceLog
	changes  []domain.PriceChangeRecord
	rules    domain.PricingRules
}

// New creates an empty store.
func New() *Store {
	return &Store{
		products: make(map[string]domain.Product),
		rules:    domain.PricingRules{},
	}
}

// Load replaces the store contents with a snapshot. Duplicate SKUs keep
// the last occurrence, matching how the catalog sync resolves conflicts.
func (s *Store) Load(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[string]domain.Product, len(snap.Products))
	s.order = s.order[:0]
	for _, p := range snap.Products {
		if _, seen := s.products[p.SKU]; !seen {
			s.order = append(s.order, p.SKU)
		}
		s.products[p.SKU] = copyProduct(p)
	}

	s.logs = make([]domain.PriceLog, len(snap.PriceLogs))
	copy(s.logs, snap.PriceLogs)

	s.changes = make([]domain.PriceChangeRecord, len(snap.PriceChanges))
	copy(s.changes, snap.PriceChanges)

	s.rules = make(domain.PricingRules, len(snap.PricingRules))
	for platform, rule := range snap.PricingRules {
		s.rules[platform] = rule
	}
}

// Products returns every product in stable catalog order.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.order))
	for _, sku := range s.order {
		out = append(out, copyProduct(s.products[sku]))
	}
	return out
}

// Product returns one product by SKU.
func (s *Store) Product(sku string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[sku]
	if !ok {
		return domain.Product{}, false
	}
	return copyProduct(p), true
}

// UpdateProduct replaces a product wholesale. This is the single write
// path for alias edits, shipment merges and price locks; unknown SKUs are
// rejected because this subsystem never creates catalog entries.
func (s *Store) UpdateProduct(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.SKU]; !ok {
		return fmt.Errorf("unknown product %q", p.SKU)
	}
	s.products[p.SKU] = copyProduct(p)
	return nil
}

// PriceLogs returns all daily price facts.
func (s *Store) PriceLogs() []domain.PriceLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PriceLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// PriceChanges returns all recorded price-change events.
func (s *Store) PriceChanges() []domain.PriceChangeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PriceChangeRecord, len(s.changes))
	copy(out, s.changes)
	return out
}

// Rules returns the platform pricing configuration.
func (s *Store) Rules() domain.PricingRules {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(domain.PricingRules, len(s.rules))
	for platform, rule := range s.rules {
		out[platform] = rule
	}
	return out
}

func copyProduct(p domain.Product) domain.Product {
	out := p
	if len(p.Channels) > 0 {
		out.Channels = make([]domain.Channel, len(p.Channels))
		copy(out.Channels, p.Channels)
	}
	if len(p.Shipments) > 0 {
		out.Shipments = make([]domain.ShipmentDetail, len(p.Shipments))
		copy(out.Shipments, p.Shipments)
	}
	return out
}
