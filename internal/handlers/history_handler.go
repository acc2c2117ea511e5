package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/harshajxn/PricePulse/internal/db_model"
	"github.com/harshajxn/PricePulse/internal/store"
	"github.com/harshajxn/PricePulse/internal/tracker"
)

// HistoryHandler serves a product's metadata and ordered price series.
type HistoryHandler struct {
	tracker *tracker.Tracker
	logger  *zap.Logger
}

func NewHistoryHandler(tr *tracker.Tracker) *HistoryHandler {
	return &HistoryHandler{tracker: tr}
}

// RegisterRoutes registers the routes for this handler
func (h *HistoryHandler) RegisterRoutes(router *mux.Router, logger *zap.Logger) {
	h.logger = logger.Named("history")
	router.HandleFunc("/api/history/{url:.*}", h.handleHistory).Methods(http.MethodGet)
}

type historyResponse struct {
	ProductTitle    string               `json:"product_title"`
	ProductImageURL string               `json:"product_image_url"`
	History         []db_model.PricePoint `json:"history"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HistoryHandler) handleHistory(w http.ResponseWriter, req *http.Request) {
	raw := mux.Vars(req)["url"]
	productURL, err := url.PathUnescape(raw)
	if err != nil || productURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product url"})
		return
	}

	ph, err := h.tracker.GetHistory(req.Context(), productURL)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Product not tracked or not found"})
		return
	}
	if err != nil {
		h.logger.Error("history lookup failed", zap.String("url", productURL), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load history"})
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{
		ProductTitle:    ph.Title,
		ProductImageURL: ph.ImageURL,
		History:         ph.History,
	})
}
