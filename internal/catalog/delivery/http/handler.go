package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/retail-inventory/internal/catalog/domain"
	"github.com/tair/retail-inventory/internal/catalog/usecase/command"
	"github.com/tair/retail-inventory/internal/catalog/usecase/query"
	"github.com/tair/retail-inventory/pkg/logger"
)

// CatalogHandler handles HTTP requests for products, categories and suppliers
type CatalogHandler struct {
	// Command handlers
	createProductHandler  *command.CreateProductHandler
	updateProductHandler  *command.UpdateProductHandler
	deleteProductHandler  *command.DeleteProductHandler
	saveCategoryHandler   *command.SaveCategoryHandler
	deleteCategoryHandler *command.DeleteCategoryHandler
	saveSupplierHandler   *command.SaveSupplierHandler
	deleteSupplierHandler *command.DeleteSupplierHandler

	// Query handlers
	getProductHandler     *query.GetProductHandler
	listProductsHandler   *query.ListProductsHandler
	listCategoriesHandler *query.ListCategoriesHandler
	listSuppliersHandler  *query.ListSuppliersHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	productRepo domain.ProductRepository,
	categoryRepo domain.CategoryRepository,
	supplierRepo domain.SupplierRepository,
) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to the catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CatalogHandler{
		createProductHandler:  command.NewCreateProductHandler(productRepo),
		updateProductHandler:  command.NewUpdateProductHandler(productRepo),
		deleteProductHandler:  command.NewDeleteProductHandler(productRepo),
		saveCategoryHandler:   command.NewSaveCategoryHandler(categoryRepo),
		deleteCategoryHandler: command.NewDeleteCategoryHandler(categoryRepo),
		saveSupplierHandler:   command.NewSaveSupplierHandler(supplierRepo),
		deleteSupplierHandler: command.NewDeleteSupplierHandler(supplierRepo),
		getProductHandler:     query.NewGetProductHandler(productRepo),
		listProductsHandler:   query.NewListProductsHandler(productRepo),
		listCategoriesHandler: query.NewListCategoriesHandler(categoryRepo),
		listSuppliersHandler:  query.NewListSuppliersHandler(supplierRepo),
		requestCounter:        requestCounter,
		requestLatency:        requestLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string  `json:"name"`
		Description     string  `json:"description"`
		SKU             string  `json:"sku"`
		UnitPrice       float64 `json:"unit_price"`
		InitialQuantity int     `json:"initial_quantity"`
		CategoryID      *uint   `json:"category_id"`
		SupplierID      *uint   `json:"supplier_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	product, err := h.createProductHandler.Handle(command.CreateProductCommand{
		Name:            req.Name,
		Description:     req.Description,
		SKU:             req.SKU,
		UnitPrice:       req.UnitPrice,
		InitialQuantity: req.InitialQuantity,
		CategoryID:      req.CategoryID,
		SupplierID:      req.SupplierID,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	product, err := h.getProductHandler.Handle(uint(id))
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Product not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	categoryID, _ := strconv.Atoi(r.URL.Query().Get("category_id"))

	products, err := h.listProductsHandler.Handle(query.ListProductsQuery{
		CategoryID: uint(categoryID),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list products",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    products,
	})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		UnitPrice   float64 `json:"unit_price"`
		CategoryID  *uint   `json:"category_id"`
		SupplierID  *uint   `json:"supplier_id"`
		IsActive    *bool   `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	product, err := h.updateProductHandler.Handle(command.UpdateProductCommand{
		ProductID:   uint(id),
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	if err := h.deleteProductHandler.Handle(command.DeleteProductCommand{ProductID: uint(id)}); err != nil {
		h.respondDomainError(w, r, err, "Failed to delete product")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// SaveCategory handles POST /api/categories
func (h *CatalogHandler) SaveCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CategoryID  uint   `json:"category_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	category, err := h.saveCategoryHandler.Handle(command.SaveCategoryCommand{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to save category")
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Category saved successfully",
		Data:    category,
	})
}

// DeleteCategory handles DELETE /api/categories/{id}
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid category ID",
		})
		return
	}

	if err := h.deleteCategoryHandler.Handle(uint(id)); err != nil {
		h.respondDomainError(w, r, err, "Failed to delete category")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Category deleted successfully",
	})
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	categories, err := h.listCategoriesHandler.Handle(limit, offset)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list categories")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list categories",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    categories,
	})
}

// SaveSupplier handles POST /api/suppliers
func (h *CatalogHandler) SaveSupplier(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SupplierID uint   `json:"supplier_id"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Address    string `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	supplier, err := h.saveSupplierHandler.Handle(command.SaveSupplierCommand{
		SupplierID: req.SupplierID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
	})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to save supplier")
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Supplier saved successfully",
		Data:    supplier,
	})
}

// DeleteSupplier handles DELETE /api/suppliers/{id}
func (h *CatalogHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid supplier ID",
		})
		return
	}

	if err := h.deleteSupplierHandler.Handle(uint(id)); err != nil {
		h.respondDomainError(w, r, err, "Failed to delete supplier")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Supplier deleted successfully",
	})
}

// ListSuppliers handles GET /api/suppliers
func (h *CatalogHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	suppliers, err := h.listSuppliersHandler.Handle(limit, offset)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list suppliers")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list suppliers",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    suppliers,
	})
}

func (h *CatalogHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrSupplierNotFound):
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   err.Error(),
		})
	default:
		logger.Error(r.Context()).Err(err).Msg(fallback)
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", AdminMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", AdminMiddleware(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", AdminMiddleware(h.DeleteProduct))).Methods("DELETE")

	router.HandleFunc("/api/categories", h.metricsMiddleware("/api/categories", h.ListCategories)).Methods("GET")
	router.HandleFunc("/api/categories", h.metricsMiddleware("/api/categories", AdminMiddleware(h.SaveCategory))).Methods("POST")
	router.HandleFunc("/api/categories/{id}", h.metricsMiddleware("/api/categories/{id}", AdminMiddleware(h.DeleteCategory))).Methods("DELETE")

	router.HandleFunc("/api/suppliers", h.metricsMiddleware("/api/suppliers", h.ListSuppliers)).Methods("GET")
	router.HandleFunc("/api/suppliers", h.metricsMiddleware("/api/suppliers", AdminMiddleware(h.SaveSupplier))).Methods("POST")
	router.HandleFunc("/api/suppliers/{id}", h.metricsMiddleware("/api/suppliers/{id}", AdminMiddleware(h.DeleteSupplier))).Methods("DELETE")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
