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
	"github.com/tair/retail-inventory/internal/order/domain"
	"github.com/tair/retail-inventory/internal/order/usecase/command"
	"github.com/tair/retail-inventory/internal/order/usecase/query"
	"github.com/tair/retail-inventory/pkg/logger"
)

// OrderHandler handles HTTP requests for sales orders
type OrderHandler struct {
	checkoutHandler *command.CheckoutHandler
	getHandler      *query.GetOrderHandler
	listHandler     *query.ListOrdersHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	ordersTotal    prometheus.Counter
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(store domain.CheckoutStore, repo domain.SalesOrderRepository) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_service_requests_total",
			Help: "Total number of requests to the order service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_service_request_duration_seconds",
			Help:    "Duration of order service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of sales orders created",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(ordersTotal)

	return &OrderHandler{
		checkoutHandler: command.NewCheckoutHandler(store),
		getHandler:      query.NewGetOrderHandler(repo),
		listHandler:     query.NewListOrdersHandler(repo),
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		ordersTotal:     ordersTotal,
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
func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        uint    `json:"user_id"`
		PaymentMethod string  `json:"payment_method"`
		AmountGiven   float64 `json:"amount_given"`
		Items         []struct {
			ProductID uint `json:"product_id"`
			Quantity  int  `json:"quantity"`
		} `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	items := make([]command.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, command.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.checkoutHandler.Handle(command.CheckoutCommand{
		UserID:        req.UserID,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		AmountGiven:   req.AmountGiven,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.ordersTotal.Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order created successfully",
		Data:    order,
	})
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid order ID",
		})
		return
	}

	order, err := h.getHandler.ByID(uint(id))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    order,
	})
}

// GetOrderByCode handles GET /api/orders/code/{code}
func (h *OrderHandler) GetOrderByCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	order, err := h.getHandler.ByCode(vars["code"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    order,
	})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.listHandler.Handle(query.ListOrdersQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list orders",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    orders,
	})
}

// respondError maps domain errors to HTTP status codes
func (h *OrderHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, inventory.ErrProductNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInsufficientPayment),
		errors.Is(err, inventory.ErrInsufficientStock):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrOrderCodeExhausted):
		status = http.StatusConflict
		message = err.Error()
	default:
		logger.Error(r.Context()).Err(err).Msg("Order request failed")
	}

	respondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", h.ListOrders)).Methods("GET")
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", h.CreateOrder)).Methods("POST")
	router.HandleFunc("/api/orders/code/{code}", h.metricsMiddleware("/api/orders/code/{code}", h.GetOrderByCode)).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.metricsMiddleware("/api/orders/{id}", h.GetOrder)).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
