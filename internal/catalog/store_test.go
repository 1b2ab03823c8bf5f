package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchops/pricedesk/internal/domain"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Products: []domain.Product{
			{SKU: "A1", Name: "Widget", CurrentPrice: 19.4, Channels: []domain.Channel{{Platform: "Amazon", Velocity: 3}}},
			{SKU: "B2", Name: "Gadget", CurrentPrice: 10},
		},
		PriceLogs: []domain.PriceLog{
			{SKU: "A1", Platform: "Amazon", Price: 19.4, Velocity: 3},
		},
		PricingRules: domain.PricingRules{
			"Amazon": domain.PricingRule{Manager: "Dana"},
		},
	}
}

func TestReadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"products": [{"sku": "A1", "name": "Widget", "current_price": 19.4}],
		"price_logs": []
	}`), 0o644))

	snap, err := ReadSnapshot(path)
	require.NoError(t, err)

	require.Len(t, snap.Products, 1)
	assert.Equal(t, "A1", snap.Products[0].SKU)
	assert.Equal(t, 19.4, snap.Products[0].CurrentPrice)
}

func TestReadSnapshotMissingFile(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestReadSnapshotMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := ReadSnapshot(path)
	assert.Error(t, err)
}

func TestStoreLoadAndOrder(t *testing.T) {
	s := New()
	s.Load(testSnapshot())

	products := s.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "A1", products[0].SKU)
	assert.Equal(t, "B2", products[1].SKU)

	p, ok := s.Product("A1")
	require.True(t, ok)
	assert.Equal(t, "Widget", p.Name)

	_, ok = s.Product("ZZ")
	assert.False(t, ok)
}

func TestStoreLoadDuplicateSKUKeepsLast(t *testing.T) {
	snap := testSnapshot()
	snap.Products = append(snap.Products, domain.Product{SKU: "A1", Name: "Widget v2"})

	s := New()
	s.Load(snap)

	products := s.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "Widget v2", products[0].Name)
}

func TestStoreReadsAreCopies(t *testing.T) {
	s := New()
	s.Load(testSnapshot())

	p, _ := s.Product("A1")
	p.Channels[0].Velocity = 999
	p.Name = "mutated"

	fresh, _ := s.Product("A1")
	assert.Equal(t, "Widget", fresh.Name)
	assert.Equal(t, float64(3), fresh.Channels[0].Velocity)
}

func TestStoreUpdateProduct(t *testing.T) {
	s := New()
	s.Load(testSnapshot())

	p, _ := s.Product("A1")
	p.IncomingStock = 120
	require.NoError(t, s.UpdateProduct(p))

	updated, _ := s.Product("A1")
	assert.Equal(t, 120, updated.IncomingStock)

	err := s.UpdateProduct(domain.Product{SKU: "ZZ"})
	assert.Error(t, err)
}

func TestStoreRulesCopied(t *testing.T) {
	s := New()
	s.Load(testSnapshot())

	rules := s.Rules()
	rules["Amazon"] = domain.PricingRule{Manager: "Kit"}

	assert.Equal(t, "Dana", s.Rules()["Amazon"].Manager)
}
