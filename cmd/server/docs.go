package main

// Tool dependency for `swag init`.
import _ "github.com/swaggo/swag"

// @title Retail Backoffice API
// @version 1.0
// @description Retail inventory and sales backoffice: catalog, orders, returns, replacements and stock reports with full observability stack (Prometheus, Jaeger, Grafana)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Catalog
// @tag.description Product, category and supplier management

// @tag.name Orders
// @tag.description Sales order endpoints

// @tag.name Returns
// @tag.description Order and product return endpoints

// @tag.name Replacements
// @tag.description Replacement order and product swap endpoints

// @tag.name Reports
// @tag.description Dashboard aggregation endpoints

// @tag.name Health
// @tag.description Health check endpoints
