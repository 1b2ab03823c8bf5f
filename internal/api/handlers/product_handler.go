package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/merchops/pricedesk/internal/domain"
	"github.com/merchops/pricedesk/internal/export"
	"github.com/merchops/pricedesk/internal/service"
)

type ProductHandler struct {
	service *service.ProductService
}

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// simulateRequest is the POST body for /simulate and /simulate/apply.
// Overrides arrive as strings straight from price inputs; unparseable
// values are treated as "no override" rather than rejected.
type simulateRequest struct {
	Search             string            `json:"search"`
	Category           string            `json:"category"`
	Platforms          []string          `json:"platforms"`
	Manager            string            `json:"manager"`
	IntensityPct       float64           `json:"intensity_pct"`
	Overrides          map[string]string `json:"overrides"`
	AllowOOSAdjustment bool              `json:"allow_oos_adjustment"`
	Page               int               `json:"page"`
	PageSize           int               `json:"page_size"`
}

func (r simulateRequest) toViewState() domain.ViewState {
	state := domain.ViewState{
		Search:             r.Search,
		Category:           r.Category,
		Scope:              domain.FilterScope{Platforms: r.Platforms, Manager: r.Manager},
		IntensityPct:       r.IntensityPct,
		AllowOOSAdjustment: r.AllowOOSAdjustment,
		Page:               r.Page,
		PageSize:           r.PageSize,
	}

	if len(r.Overrides) > 0 {
		state.Overrides = make(map[string]float64, len(r.Overrides))
		for sku, raw := range r.Overrides {
			price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				log.Debug().Str("sku", sku).Str("value", raw).Msg("ignoring unparseable override")
				continue
			}
			state.Overrides[sku] = price
		}
	}

	return state
}

func (h *ProductHandler) parseViewState(c *gin.Context) domain.ViewState {
	state := domain.ViewState{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
		Scope: domain.FilterScope{
			Platforms: parsePlatforms(c),
			Manager:   strings.TrimSpace(c.DefaultQuery("manager", domain.ManagerAll)),
		},
		Page:     1,
		PageSize: 50,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		state.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "50")); err == nil && size > 0 {
		state.PageSize = size
	}
	if intensity, err := strconv.ParseFloat(c.DefaultQuery("intensity", "0"), 64); err == nil {
		state.IntensityPct = intensity
	}

	return state
}

// parsePlatforms supports both repeated params and comma-separated lists:
//
//	?platform=Amazon&platform=eBay
//	?platform=Amazon,eBay
func parsePlatforms(c *gin.Context) []string {
	raw := c.QueryArray("platform")
	if len(raw) == 0 {
		if single := strings.TrimSpace(c.Query("platforms")); single != "" {
			raw = strings.Split(single, ",")
		}
	}

	var platforms []string
	seen := make(map[string]struct{})
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			platforms = append(platforms, part)
		}
	}
	return platforms
}

func (h *ProductHandler) List(c *gin.Context) {
	page := h.service.List(h.parseViewState(c))
	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) Get(c *gin.Context) {
	row, err := h.service.Get(c.Param("sku"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, row)
}

type aliasRequest struct {
	Platform string `json:"platform" binding:"required"`
	Aliases  string `json:"aliases"`
}

func (h *ProductHandler) UpdateAliases(c *gin.Context) {
	var req aliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alias payload: " + err.Error()})
		return
	}

	product, err := h.service.UpdateAliases(c.Param("sku"), req.Platform, req.Aliases)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Analyze(c *gin.Context) {
	if err := h.service.Analyze(c.Param("sku")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

func (h *ProductHandler) Simulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid simulation payload: " + err.Error()})
		return
	}

	page := h.service.List(req.toViewState())
	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) ApplySimulation(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid simulation payload: " + err.Error()})
		return
	}

	state, result := h.service.ApplySimulation(req.toViewState())
	c.JSON(http.StatusOK, gin.H{
		"view_state": state,
		"committed":  result.Committed,
		"overrides":  result.Overrides,
		"violations": result.Violations,
	})
}

func (h *ProductHandler) Containers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"containers": h.service.Containers()})
}

func (h *ProductHandler) MergeShipments(c *gin.Context) {
	var batches map[string][]domain.ShipmentDetail
	if err := c.ShouldBindJSON(&batches); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shipment payload: " + err.Error()})
		return
	}

	updated := h.service.MergeShipments(batches)
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *ProductHandler) Export(c *gin.Context) {
	platform := strings.TrimSpace(c.Query("platform"))
	rows := h.service.ExportRows(platform)

	filename := "catalog.csv"
	if platform != "" {
		filename = "catalog_" + strings.ToLower(platform) + ".csv"
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	var err error
	if platform != "" {
		err = export.WritePlatform(c.Writer, rows)
	} else {
		err = export.WriteMaster(c.Writer, rows)
	}
	if err != nil {
		log.Error().Err(err).Msg("export write failed")
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
