package httpserver

import (
	"errors"
	"html/template"
	"net/http"
	"slices"

	"tomato-harvest/internal/catalog"
	"tomato-harvest/internal/checkout"
	"tomato-harvest/internal/metrics"
	"tomato-harvest/internal/session"
	"tomato-harvest/internal/view"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the handlers need.
type Deps struct {
	Catalog   *catalog.Catalog
	Sessions  *session.Manager
	Checkout  *checkout.Service
	Metrics   *metrics.Metrics
	Templates *template.Template

	CookieName   string
	SecureCookie bool
	CORSOrigins  []string
	Checks       []ReadinessCheck
}

func (d Deps) validate() error {
	switch {
	case d.Catalog == nil:
		return errors.New("httpserver: catalog is required")
	case d.Sessions == nil:
		return errors.New("httpserver: session manager is required")
	case d.Checkout == nil:
		return errors.New("httpserver: checkout service is required")
	case d.CookieName == "":
		return errors.New("httpserver: cookie name is required")
	}
	return nil
}

type handlers struct {
	deps   Deps
	logger zerolog.Logger
}

// buildRouter wires routes for the page, the JSON API and ops endpoints.
func buildRouter(logger zerolog.Logger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.Templates == nil {
		tmpl, err := view.Templates()
		if err != nil {
			return nil, err
		}
		deps.Templates = tmpl
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger, deps.Metrics))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Checks))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	h := &handlers{deps: deps, logger: logger}
	withSession := sessionMiddleware(deps.CookieName, deps.SecureCookie, deps.Metrics)

	page := router.Group("/", withSession)
	page.GET("/", h.showPage)
	page.POST("/cart/open", h.openPanel)
	page.POST("/cart/close", h.closePanel)
	page.POST("/cart/items", h.addItem)
	page.POST("/cart/items/:id/increment", h.incrementItem)
	page.POST("/cart/items/:id/decrement", h.decrementItem)
	page.POST("/cart/items/:id/remove", h.removeItem)
	page.POST("/cart/items/:id/quantity", h.setQuantity)
	page.POST("/cart/clear", h.clearCart)
	page.POST("/cart/checkout", h.checkout)

	api := router.Group("/api", corsMiddleware(deps.CORSOrigins), withSession)
	api.GET("/products", h.apiProducts)
	api.GET("/cart", h.apiCart)
	api.POST("/cart/items", h.apiAddItem)
	api.PUT("/cart/items/:id", h.apiUpdateItem)
	api.DELETE("/cart/items/:id", h.apiRemoveItem)
	api.DELETE("/cart", h.apiClearCart)
	api.PUT("/cart/panel", h.apiSetPanel)
	api.POST("/cart/checkout", h.apiCheckout)
	// cors answers preflight requests before this handler runs.
	api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "not found")
	})

	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
