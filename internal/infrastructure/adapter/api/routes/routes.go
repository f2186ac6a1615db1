package routes

import (
	"context"
	"net/http"
	"time"

	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/handler"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups everything SetupRoutes needs to wire the API surface
type Handlers struct {
	Settings    *handler.SettingsHandler
	Users       *handler.UserHandler
	Services    *handler.ServiceHandler
	Sales       *handler.SaleHandler
	Ads         *handler.AdHandler
	Resources   *handler.ResourceHandler
	Transaction *handler.TransactionHandler
	Slots       *handler.SlotHandler
	Deletions   *handler.DeletionHandler
	Debug       *handler.DebugHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, auth *middleware.Authenticator, db Pinger, h Handlers) {
	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Token introspection stays outside the role gate
	api.GET("/debug/whoami", h.Debug.WhoAmI)

	guarded := api.Group("", auth.RequireModerator())
	{
		settings := guarded.Group("/settings")
		{
			settings.GET("/features", h.Settings.GetFeatures)
			settings.POST("/features", h.Settings.SaveFeatures)
			settings.GET("/home-featured", h.Settings.GetFeaturedVideos)
			settings.POST("/home-featured", h.Settings.SaveFeaturedVideos)
			settings.GET("/landing-videos", h.Settings.GetLandingVideos)
			settings.POST("/landing-videos", h.Settings.SaveLandingVideos)
		}

		users := guarded.Group("/users")
		{
			users.POST("/list", h.Users.List)
			users.POST("/get", h.Users.Get)
			users.POST("/create", auth.RequireAdmin(), h.Users.Create)
			users.POST("/delete", auth.RequireAdmin(), h.Users.Delete)
			users.POST("/set-status", h.Users.SetStatus)
			users.POST("/set-pricing-gate", h.Users.SetPricingGate)
			users.POST("/set-email-verified", h.Users.SetEmailVerified)
			users.POST("/generate-verification-link", h.Users.GenerateVerificationLink)
		}

		services := guarded.Group("/services")
		{
			services.GET("/list", h.Services.List)
			services.POST("/update", h.Services.Update)

			admin := services.Group("/admin")
			{
				admin.GET("/list", h.Services.AdminList)
				admin.POST("/create", h.Services.AdminCreate)
				admin.POST("/update", h.Services.AdminUpdate)
				admin.POST("/delete", h.Services.AdminDelete)
				admin.POST("/bulk-delete", h.Services.BulkDelete)
				admin.POST("/reassign-owner", auth.RequireAdmin(), h.Services.ReassignOwner)
			}
		}

		sales := guarded.Group("/sales")
		{
			sales.GET("/list", h.Sales.List)
			sales.POST("/update", h.Sales.Update)
			sales.GET("/provider-ids", h.Sales.ProviderIDs)
		}

		ads := guarded.Group("/ads")
		{
			ads.GET("/list", h.Ads.List)
			ads.POST("/create", h.Ads.Create)
			ads.POST("/update", h.Ads.Update)
			ads.POST("/delete", h.Ads.Delete)
		}

		studentBank := guarded.Group("/student-bank/admin")
		{
			studentBank.GET("/list", h.Resources.List)
			studentBank.POST("/update", h.Resources.Update)
			studentBank.POST("/delete", h.Resources.Delete)
			studentBank.POST("/signed-url", h.Resources.SignedURL)
			studentBank.GET("/settings", h.Resources.GetSettings)
			studentBank.POST("/settings", h.Resources.SaveSettings)
		}

		transactions := guarded.Group("/transactions")
		{
			transactions.GET("/list", h.Transaction.List)
			transactions.POST("/confirm", h.Transaction.Confirm)
		}

		deletions := guarded.Group("/service-deletions")
		{
			deletions.GET("/list", h.Deletions.List)
			deletions.POST("/decide", h.Deletions.Decide)
		}

		slots := guarded.Group("/service-slots")
		{
			slots.GET("/list", h.Slots.List)
			slots.POST("/update", h.Slots.Update)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, metrics *middleware.HTTPMetrics) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	if metrics != nil {
		router.Use(metrics.Handler())
	}
}
