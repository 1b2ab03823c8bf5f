package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/merchops/pricedesk/internal/api/handlers"
	"github.com/merchops/pricedesk/internal/api/middleware"
	"github.com/merchops/pricedesk/internal/service"
)

type Services struct {
	Products  *service.ProductService
	Dashboard *service.DashboardService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Products != nil {
			productHandler := handlers.NewProductHandler(services.Products)
			apiGroup.GET("/products", productHandler.List)
			apiGroup.GET("/products/:sku", productHandler.Get)
			apiGroup.PUT("/products/:sku/aliases", productHandler.UpdateAliases)
			apiGroup.POST("/products/:sku/analyze", productHandler.Analyze)

			apiGroup.POST("/simulate", productHandler.Simulate)
			apiGroup.POST("/simulate/apply", productHandler.ApplySimulation)

			apiGroup.GET("/shipments", productHandler.Containers)
			apiGroup.POST("/shipments/merge", productHandler.MergeShipments)

			apiGroup.GET("/export", productHandler.Export)
		}

		if services.Dashboard != nil {
			dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
			dashboardGroup := apiGroup.Group("/dashboard")
			{
				dashboardGroup.GET("", dashboardHandler.GetDashboard)
				dashboardGroup.GET("/alerts", dashboardHandler.GetAlerts)
			}
		}
	}

	return router
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	log.Error().Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
