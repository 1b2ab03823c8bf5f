package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/merchops/pricedesk/internal/domain"
)

func TestSimulateRequestParsesOverrides(t *testing.T) {
	req := simulateRequest{
		IntensityPct: 15,
		Overrides: map[string]string{
			"A1": "19.99",
			"B2": " 12.5 ",
			"C3": "abc",
			"D4": "",
		},
	}

	state := req.toViewState()

	assert.Equal(t, float64(15), state.IntensityPct)
	assert.Equal(t, 19.99, state.Overrides["A1"])
	assert.Equal(t, 12.5, state.Overrides["B2"])
	_, hasC3 := state.Overrides["C3"]
	assert.False(t, hasC3, "unparseable overrides are dropped")
	_, hasD4 := state.Overrides["D4"]
	assert.False(t, hasD4)
}

func TestSimulateRequestWithoutOverrides(t *testing.T) {
	state := simulateRequest{Manager: "Dana"}.toViewState()

	assert.Nil(t, state.Overrides)
	assert.Equal(t, "Dana", state.Scope.Manager)
}

func newQueryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/products?"+rawQuery, nil)
	return c
}

func TestParseViewStateDefaults(t *testing.T) {
	h := &ProductHandler{}
	state := h.parseViewState(newQueryContext(t, ""))

	assert.Equal(t, domain.ManagerAll, state.Scope.Manager)
	assert.Equal(t, 1, state.Page)
	assert.Equal(t, 50, state.PageSize)
	assert.Equal(t, float64(0), state.IntensityPct)
	assert.Empty(t, state.Scope.Platforms)
}

func TestParseViewStateQueryParams(t *testing.T) {
	h := &ProductHandler{}
	state := h.parseViewState(newQueryContext(t, "search=widget&category=Tools&manager=Dana&page=3&page_size=10&intensity=12.5"))

	assert.Equal(t, "widget", state.Search)
	assert.Equal(t, "Tools", state.Category)
	assert.Equal(t, "Dana", state.Scope.Manager)
	assert.Equal(t, 3, state.Page)
	assert.Equal(t, 10, state.PageSize)
	assert.Equal(t, 12.5, state.IntensityPct)
}

func TestParsePlatformsRepeatedParams(t *testing.T) {
	platforms := parsePlatforms(newQueryContext(t, "platform=Amazon&platform=eBay&platform=Amazon"))
	assert.Equal(t, []string{"Amazon", "eBay"}, platforms)
}

func TestParsePlatformsCommaSeparated(t *testing.T) {
	platforms := parsePlatforms(newQueryContext(t, "platforms=Amazon,%20eBay,,Shopify"))
	assert.Equal(t, []string{"Amazon", "eBay", "Shopify"}, platforms)
}
