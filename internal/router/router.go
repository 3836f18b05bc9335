// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/lumoshop/storefront/internal/config"
	"github.com/lumoshop/storefront/internal/handler"
	"github.com/lumoshop/storefront/internal/middleware"
)

// Handlers bundles every handler the API mounts. The caller wires
// repositories into handlers; the router only maps paths.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Admin   *handler.AdminHandler
	Contact *handler.ContactHandler
}

// RegisterRoutes registers routes that do not require
// authentication. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI mounts the storefront API under /api. Catalog reads
// are public and cached in Redis; cart, checkout and review writes
// require a valid access token; /api/admin additionally requires
// the ADMIN role. Pass a nil redis client to run without the cache
// and rate-limit middleware (tests do this).
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	api := e.Group("/api")

	if rdb != nil {
		api.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}

	// ----- auth -----
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// ----- public catalog -----
	catalog := api.Group("")
	if rdb != nil {
		catalog.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}
	catalog.GET("/products", h.Catalog.ListProducts)
	catalog.GET("/products/:id", h.Catalog.GetProduct)
	catalog.GET("/reviews/:id", h.Catalog.ListReviews)
	catalog.GET("/categories", h.Catalog.ListCategories)

	api.POST("/contact", h.Contact.Submit)

	// ----- authenticated -----
	priv := api.Group("")
	priv.Use(middleware.JWTAuth(jwtSecret))
	priv.GET("/auth/me", h.Auth.Me)

	priv.GET("/cart", h.Cart.Get)
	priv.POST("/cart", h.Cart.Upsert)
	priv.DELETE("/cart/:id", h.Cart.Remove)

	priv.POST("/orders", h.Order.Create)
	priv.GET("/orders/my", h.Order.ListMine)
	priv.PUT("/orders/:id/receive", h.Order.ConfirmReceipt)

	priv.POST("/reviews", h.Catalog.PostReview)

	// ----- admin -----
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.GET("/orders", h.Admin.ListOrders)
	admin.PUT("/orders/:id/status", h.Admin.UpdateOrderStatus)
	admin.POST("/products", h.Admin.CreateProduct)
	admin.PUT("/products/:id", h.Admin.UpdateProduct)
	admin.DELETE("/products/:id", h.Admin.DeleteProduct)
	admin.GET("/users", h.Admin.ListUsers)
}
