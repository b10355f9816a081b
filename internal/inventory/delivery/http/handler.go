package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/retail-inventory/internal/inventory/domain"
	"github.com/tair/retail-inventory/pkg/logger"
)

// AdjustmentHandler handles HTTP requests for the inventory audit trail
type AdjustmentHandler struct {
	repo domain.AdjustmentRepository
}

// NewAdjustmentHandler creates a new adjustment handler
func NewAdjustmentHandler(repo domain.AdjustmentRepository) *AdjustmentHandler {
	return &AdjustmentHandler{repo: repo}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListAdjustments handles GET /api/adjustments
func (h *AdjustmentHandler) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	if limit == 0 {
		limit = 10
	}

	adjustments, err := h.repo.FindAll(limit, offset)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list adjustments")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list adjustments",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    adjustments,
	})
}

// ListAdjustmentsByProduct handles GET /api/adjustments/product/{product_id}
func (h *AdjustmentHandler) ListAdjustmentsByProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, err := strconv.ParseUint(vars["product_id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit == 0 {
		limit = 10
	}

	adjustments, err := h.repo.FindByProductID(uint(productID), limit, offset)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list adjustments for product")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list adjustments",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    adjustments,
	})
}

// RegisterRoutes registers all adjustment routes
func (h *AdjustmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/adjustments", h.ListAdjustments).Methods("GET")
	router.HandleFunc("/api/adjustments/product/{product_id}", h.ListAdjustmentsByProduct).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *AdjustmentHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Retail backoffice is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
