package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalog "github.com/tair/retail-inventory/internal/catalog/domain"
	inventory "github.com/tair/retail-inventory/internal/inventory/domain"
	order "github.com/tair/retail-inventory/internal/order/domain"
	"github.com/tair/retail-inventory/internal/returns/domain"
	"github.com/tair/retail-inventory/internal/returns/usecase/command"
	"github.com/tair/retail-inventory/internal/returns/usecase/query"
	"github.com/tair/retail-inventory/pkg/logger"
)

// ReturnsHandler handles HTTP requests for returns and replacements
type ReturnsHandler struct {
	// Command handlers
	createHandler             *command.CreateReturnHandler
	updateHandler             *command.UpdateReturnHandler
	deleteHandler             *command.DeleteReturnHandler
	orderReplacementHandler   *command.CreateOrderReplacementHandler
	productReplacementHandler *command.CreateProductReplacementHandler

	// Query handlers
	listHandler         *query.ListReturnsHandler
	getHandler          *query.GetReturnHandler
	replacementsHandler *query.ListReplacementsHandler
	reportsHandler      *query.ReportsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	returnsTotal   *prometheus.CounterVec
}

// NewReturnsHandler creates a new returns handler
func NewReturnsHandler(
	createHandler *command.CreateReturnHandler,
	updateHandler *command.UpdateReturnHandler,
	deleteHandler *command.DeleteReturnHandler,
	orderReplacementHandler *command.CreateOrderReplacementHandler,
	productReplacementHandler *command.CreateProductReplacementHandler,
	listHandler *query.ListReturnsHandler,
	getHandler *query.GetReturnHandler,
	replacementsHandler *query.ListReplacementsHandler,
	reportsHandler *query.ReportsHandler,
) *ReturnsHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "returns_service_requests_total",
			Help: "Total number of requests to the returns service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "returns_service_request_duration_seconds",
			Help:    "Duration of returns service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	returnsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "returns_recorded_total",
			Help: "Total number of returns recorded, by source and reason",
		},
		[]string{"source", "reason"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(returnsTotal)

	return &ReturnsHandler{
		createHandler:             createHandler,
		updateHandler:             updateHandler,
		deleteHandler:             deleteHandler,
		orderReplacementHandler:   orderReplacementHandler,
		productReplacementHandler: productReplacementHandler,
		listHandler:               listHandler,
		getHandler:                getHandler,
		replacementsHandler:       replacementsHandler,
		reportsHandler:            reportsHandler,
		requestCounter:            requestCounter,
		requestLatency:            requestLatency,
		returnsTotal:              returnsTotal,
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
func (h *ReturnsHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

type returnRequest struct {
	UserID      uint   `json:"user_id"`
	SourceID    uint   `json:"id"`
	Type        string `json:"type"`
	Reason      string `json:"reason"`
	OtherReason string `json:"otherReason"`
	Quantity    int    `json:"quantity"`
}

// actingUser prefers the body's user_id and falls back to the X-User-ID header
// the gateway sets from the bearer token.
func actingUser(r *http.Request, bodyUserID uint) uint {
	if bodyUserID != 0 {
		return bodyUserID
	}
	if id, err := strconv.ParseUint(r.Header.Get("X-User-ID"), 10, 32); err == nil {
		return uint(id)
	}
	return 0
}

// sourceKind resolves the return source from the body's type field, falling
// back to the route's default when the field is absent.
func sourceKind(bodyType string, fallback domain.SourceKind) (domain.SourceKind, error) {
	switch bodyType {
	case "":
		return fallback, nil
	case string(domain.SourceOrder):
		return domain.SourceOrder, nil
	case string(domain.SourceProduct):
		return domain.SourceProduct, nil
	default:
		return "", domain.ErrInvalidSource
	}
}

// createReturn handles POST /api/returns and POST /api/product-returns
func (h *ReturnsHandler) createReturn(defaultKind domain.SourceKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req returnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid request body",
			})
			return
		}

		kind, err := sourceKind(req.Type, defaultKind)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		if req.SourceID == 0 {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "id is required",
			})
			return
		}

		result, err := h.createHandler.Handle(r.Context(), command.CreateReturnCommand{
			UserID:      actingUser(r, req.UserID),
			SourceType:  kind,
			SourceID:    req.SourceID,
			Quantity:    req.Quantity,
			Reason:      req.Reason,
			OtherReason: req.OtherReason,
		})
		if err != nil {
			h.respondError(w, r, err)
			return
		}

		h.returnsTotal.WithLabelValues(string(kind), result.Return.Reason).Inc()

		if result.FollowUp != nil {
			respondJSON(w, http.StatusCreated, Response{
				Success: true,
				Message: "Return recorded, replacement order required",
				Data:    result.FollowUp,
			})
			return
		}

		respondJSON(w, http.StatusCreated, Response{
			Success: true,
			Message: "Return recorded successfully",
			Data:    result.Return,
		})
	}
}

// updateReturn handles PUT /api/returns and PUT /api/product-returns
func (h *ReturnsHandler) updateReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReturnID    uint   `json:"return_id"`
		UserID      uint   `json:"user_id"`
		Quantity    int    `json:"quantity"`
		Reason      string `json:"reason"`
		OtherReason string `json:"otherReason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	updated, err := h.updateHandler.Handle(r.Context(), command.UpdateReturnCommand{
		ReturnID:    req.ReturnID,
		UserID:      actingUser(r, req.UserID),
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		OtherReason: req.OtherReason,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Return updated successfully",
		Data:    updated,
	})
}

// deleteReturn handles DELETE /api/returns and DELETE /api/product-returns
func (h *ReturnsHandler) deleteReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReturnID uint `json:"return_id"`
		UserID   uint `json:"user_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteReturnCommand{
		ReturnID: req.ReturnID,
		UserID:   actingUser(r, req.UserID),
	}); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Return deleted successfully",
	})
}

// listReturns handles GET /api/returns and GET /api/product-returns
func (h *ReturnsHandler) listReturns(kind domain.SourceKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		returns, err := h.listHandler.Handle(r.Context(), query.ListReturnsQuery{
			SourceKind: kind,
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			logger.Error(r.Context()).Err(err).Msg("Failed to list returns")
			respondJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "Failed to list returns",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    returns,
		})
	}
}

// getReturn handles GET /api/returns/{id}
func (h *ReturnsHandler) getReturn(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid return ID",
		})
		return
	}

	ret, err := h.getHandler.Handle(r.Context(), uint(id))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ret,
	})
}

// createOrderReplacement handles POST /api/replacements
func (h *ReturnsHandler) createOrderReplacement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID            uint    `json:"user_id"`
		OriginalOrderID   uint    `json:"original_order_id"`
		OriginalProductID uint    `json:"original_product_id"`
		PaymentMethod     string  `json:"payment_method"`
		AmountGiven       float64 `json:"amount_given"`
		TotalPrice        float64 `json:"total_price"`
		Reason            string  `json:"reason"`
		Items             []struct {
			ProductID uint    `json:"product_id"`
			Quantity  int     `json:"quantity"`
			UnitPrice float64 `json:"unit_price"`
		} `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	items := make([]command.ReplacementItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, command.ReplacementItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	result, err := h.orderReplacementHandler.Handle(r.Context(), command.CreateOrderReplacementCommand{
		UserID:            req.UserID,
		OriginalOrderID:   req.OriginalOrderID,
		OriginalProductID: req.OriginalProductID,
		Items:             items,
		PaymentMethod:     req.PaymentMethod,
		AmountGiven:       req.AmountGiven,
		TotalPrice:        req.TotalPrice,
		Reason:            req.Reason,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Replacement order created successfully",
		Data:    result,
	})
}

// createProductReplacement handles POST /api/replacements/product
func (h *ReturnsHandler) createProductReplacement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID               uint   `json:"user_id"`
		OriginalOrderID      uint   `json:"original_order_id"`
		OriginalProductID    uint   `json:"original_product_id"`
		ReplacementProductID uint   `json:"replacement_product_id"`
		Quantity             int    `json:"quantity"`
		Reason               string `json:"reason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	replacement, err := h.productReplacementHandler.Handle(r.Context(), command.CreateProductReplacementCommand{
		UserID:               req.UserID,
		OriginalOrderID:      req.OriginalOrderID,
		OriginalProductID:    req.OriginalProductID,
		ReplacementProductID: req.ReplacementProductID,
		Quantity:             req.Quantity,
		Reason:               req.Reason,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product replacement recorded successfully",
		Data:    replacement,
	})
}

// listReplacements handles GET /api/replacements
func (h *ReturnsHandler) listReplacements(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	replacements, err := h.replacementsHandler.Handle(r.Context(), query.ListReplacementsQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list replacements")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list replacements",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    replacements,
	})
}

// returnsByReason handles GET /api/reports/returns-by-reason
func (h *ReturnsHandler) returnsByReason(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.reportsHandler.ReturnsByReason(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build returns-by-reason report")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to build report",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: buckets})
}

// returnsByMonth handles GET /api/reports/returns-by-month
func (h *ReturnsHandler) returnsByMonth(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.reportsHandler.ReturnsByMonth(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build returns-by-month report")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to build report",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: buckets})
}

// replacementsByMonth handles GET /api/reports/replacements-by-month
func (h *ReturnsHandler) replacementsByMonth(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.reportsHandler.ReplacementsByMonth(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build replacements-by-month report")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to build report",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: buckets})
}

// respondError maps domain errors to HTTP status codes
func (h *ReturnsHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, domain.ErrReturnNotFound),
		errors.Is(err, domain.ErrReplaceNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, inventory.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrOrderItemNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidReason),
		errors.Is(err, domain.ErrMissingOtherReason),
		errors.Is(err, domain.ErrInvalidSource),
		errors.Is(err, domain.ErrExceedsOrderedQuantity),
		errors.Is(err, domain.ErrExceedsAvailableStock),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInsufficientPayment):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, order.ErrOrderCodeExhausted):
		status = http.StatusConflict
		message = err.Error()
	default:
		logger.Error(r.Context()).Err(err).Msg("Returns request failed")
	}

	respondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

// RegisterRoutes registers all returns, replacement and report routes
func (h *ReturnsHandler) RegisterRoutes(router *mux.Router) {
	// Order returns
	router.HandleFunc("/api/returns", h.metricsMiddleware("/api/returns", h.listReturns(domain.SourceOrder))).Methods("GET")
	router.HandleFunc("/api/returns", h.metricsMiddleware("/api/returns", h.createReturn(domain.SourceOrder))).Methods("POST")
	router.HandleFunc("/api/returns", h.metricsMiddleware("/api/returns", h.updateReturn)).Methods("PUT")
	router.HandleFunc("/api/returns", h.metricsMiddleware("/api/returns", h.deleteReturn)).Methods("DELETE")
	router.HandleFunc("/api/returns/{id}", h.metricsMiddleware("/api/returns/{id}", h.getReturn)).Methods("GET")

	// Product returns share the same record shape but carry the opposite
	// stock direction
	router.HandleFunc("/api/product-returns", h.metricsMiddleware("/api/product-returns", h.listReturns(domain.SourceProduct))).Methods("GET")
	router.HandleFunc("/api/product-returns", h.metricsMiddleware("/api/product-returns", h.createReturn(domain.SourceProduct))).Methods("POST")
	router.HandleFunc("/api/product-returns", h.metricsMiddleware("/api/product-returns", h.updateReturn)).Methods("PUT")
	router.HandleFunc("/api/product-returns", h.metricsMiddleware("/api/product-returns", h.deleteReturn)).Methods("DELETE")

	// Replacements
	router.HandleFunc("/api/replacements", h.metricsMiddleware("/api/replacements", h.listReplacements)).Methods("GET")
	router.HandleFunc("/api/replacements", h.metricsMiddleware("/api/replacements", h.createOrderReplacement)).Methods("POST")
	router.HandleFunc("/api/replacements/product", h.metricsMiddleware("/api/replacements/product", h.createProductReplacement)).Methods("POST")

	// Reports
	router.HandleFunc("/api/reports/returns-by-reason", h.metricsMiddleware("/api/reports/returns-by-reason", h.returnsByReason)).Methods("GET")
	router.HandleFunc("/api/reports/returns-by-month", h.metricsMiddleware("/api/reports/returns-by-month", h.returnsByMonth)).Methods("GET")
	router.HandleFunc("/api/reports/replacements-by-month", h.metricsMiddleware("/api/reports/replacements-by-month", h.replacementsByMonth)).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
