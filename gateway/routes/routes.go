package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/retail-inventory/gateway/config"
	"github.com/tair/retail-inventory/gateway/health"
	"github.com/tair/retail-inventory/gateway/middleware"
	"github.com/tair/retail-inventory/gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth  bool
	RequireAdmin bool
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	{
		Prefix:      "/api/products",
		ServiceName: "backoffice",
		Description: "Product catalog (reads public, writes enforced downstream)",
	},
	{
		Prefix:      "/api/categories",
		ServiceName: "backoffice",
		Description: "Category management",
	},
	{
		Prefix:      "/api/suppliers",
		ServiceName: "backoffice",
		Description: "Supplier management",
	},
	{
		Prefix:      "/api/orders",
		ServiceName: "backoffice",
		Description: "Sales orders",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/returns",
		ServiceName: "backoffice",
		Description: "Order returns",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/product-returns",
		ServiceName: "backoffice",
		Description: "Product returns to supplier",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/replacements",
		ServiceName: "backoffice",
		Description: "Replacement orders and product swaps",
		RequireAuth: true,
	},
	{
		Prefix:      "/api/reports",
		ServiceName: "backoffice",
		Description: "Dashboard reports",
		RequireAuth: true,
	},
	{
		Prefix:       "/api/adjustments",
		ServiceName:  "backoffice",
		Description:  "Inventory audit trail",
		RequireAuth:  true,
		RequireAdmin: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks backoffice instances)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllInstances(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Circuit breaker stats
	app.Get("/health/circuits", func(c *fiber.Ctx) error {
		return c.JSON(cbManager.GetAllStats())
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Retail Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	// Register all service routes
	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler
	if route.RequireAdmin {
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	} else if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
