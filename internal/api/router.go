package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/api/handlers"
	"github.com/Eloy96/impresiones-prueba/internal/cart"
	"github.com/Eloy96/impresiones-prueba/internal/config"
	"github.com/Eloy96/impresiones-prueba/internal/service"
)

// Deps aggregates the storefront components the router exposes
type Deps struct {
	Config        *config.Config
	Catalog       *service.CatalogService
	Configuration *service.ConfigurationService
	Cart          *cart.Store
	Checkout      *service.CheckoutService
	Navigation    *service.NavigationController
	Logger        *zap.Logger
}

// NewRouter creates and configures the Gin router
func NewRouter(deps Deps) *gin.Engine {
	if deps.Config != nil && deps.Config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(deps.Logger))
	router.Use(loggingMiddleware(deps.Logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Impresión Lumen storefront",
			"endpoints": []string{
				"GET /health",
				"GET /v1/catalog/:category",
				"GET /v1/products/:id",
				"GET /v1/session/draft",
				"POST /v1/session/options",
				"POST /v1/session/file",
				"POST /v1/session/reset",
				"GET /v1/cart",
				"POST /v1/cart",
				"POST /v1/cart/:id/edit",
				"DELETE /v1/cart/:id",
				"GET /v1/checkout",
				"PUT /v1/checkout/form",
				"POST /v1/checkout/submit",
				"GET /v1/navigation",
				"POST /v1/navigation",
				"POST /v1/navigation/step",
				"POST /v1/session/new",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/catalog/:category", handlers.HandleListCategory(deps.Catalog))
		v1.GET("/products/:id", handlers.HandleGetProduct(deps.Catalog))

		v1.GET("/session/draft", handlers.HandleGetDraft(deps.Configuration))
		v1.POST("/session/options", handlers.HandleSetOption(deps.Configuration, deps.Logger))
		v1.POST("/session/file", handlers.HandleUploadFile(deps.Configuration, deps.Navigation, deps.Logger))
		v1.POST("/session/reset", handlers.HandleResetConfiguration(deps.Configuration, deps.Navigation))
		v1.POST("/session/new", handlers.HandleNewSession(deps.Configuration, deps.Checkout, deps.Navigation))

		v1.GET("/cart", handlers.HandleListCart(deps.Cart))
		v1.POST("/cart", handlers.HandleAddToCart(deps.Configuration, deps.Cart, deps.Navigation, deps.Logger))
		v1.POST("/cart/:id/edit", handlers.HandleEditCartItem(deps.Configuration, deps.Cart, deps.Navigation, deps.Logger))
		v1.DELETE("/cart/:id", handlers.HandleRemoveCartItem(deps.Cart, deps.Navigation, deps.Logger))

		v1.GET("/checkout", handlers.HandleGetCheckout(deps.Checkout, deps.Navigation))
		v1.PUT("/checkout/form", handlers.HandleSetCheckoutForm(deps.Checkout))
		v1.POST("/checkout/submit", handlers.HandleSubmitOrder(deps.Checkout, deps.Navigation, deps.Logger))

		v1.GET("/navigation", handlers.HandleGetNavigation(deps.Navigation))
		v1.POST("/navigation", handlers.HandleNavigate(deps.Navigation, deps.Checkout))
		v1.POST("/navigation/step", handlers.HandleEnterStep(deps.Navigation))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
