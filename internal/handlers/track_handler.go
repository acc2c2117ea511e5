package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/harshajxn/PricePulse/internal/tracker"
)

// TrackHandler handles product registration requests.
type TrackHandler struct {
	tracker *tracker.Tracker
	logger  *zap.Logger
}

func NewTrackHandler(tr *tracker.Tracker) *TrackHandler {
	return &TrackHandler{tracker: tr}
}

// RegisterRoutes registers the routes for this handler
func (h *TrackHandler) RegisterRoutes(router *mux.Router, logger *zap.Logger) {
	h.logger = logger.Named("track")
	router.HandleFunc("/track", h.handleTrack).Methods(http.MethodPost)
}

type productView struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url"`
}

type trackResponse struct {
	Message string       `json:"message"`
	Kind    string       `json:"kind"`
	Product *productView `json:"product,omitempty"`
}

func (h *TrackHandler) handleTrack(w http.ResponseWriter, req *http.Request) {
	productURL := requestURL(req)
	if strings.TrimSpace(productURL) == "" {
		writeJSON(w, http.StatusBadRequest, trackResponse{
			Message: "url is required",
			Kind:    "error",
		})
		return
	}

	res, err := h.tracker.RegisterOrRefresh(req.Context(), productURL)
	if err != nil {
		h.logger.Error("registration failed", zap.String("url", productURL), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, trackResponse{
			Message: "failed to save product, please try again",
			Kind:    "error",
		})
		return
	}

	if res.Status == tracker.StatusFetchFailed {
		writeJSON(w, http.StatusBadGateway, trackResponse{
			Message: "could not fetch the product page, check the URL and try again",
			Kind:    "error",
		})
		return
	}

	writeJSON(w, http.StatusOK, trackResponse{
		Message: "Product is now being tracked",
		Kind:    "success",
		Product: &productView{
			Title:    res.Snapshot.Title,
			Price:    res.Snapshot.Price,
			ImageURL: res.Snapshot.ImageURL,
		},
	})
}

// requestURL pulls the product URL from a form post or a JSON body.
func requestURL(req *http.Request) string {
	if strings.HasPrefix(req.Header.Get("Content-Type"), "application/json") {
		var body struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			return ""
		}
		return body.URL
	}
	return req.FormValue("url")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
