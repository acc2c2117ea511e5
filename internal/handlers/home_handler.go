package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const homePage = `<!DOCTYPE html>
<html>
<head><title>PricePulse</title></head>
<body>
<h1>PricePulse Amazon Tracker</h1>
<form method="POST" action="/track">
  <input type="text" name="url" placeholder="Enter Amazon Product URL" size="50" required>
  <button type="submit">Track</button>
</form>
</body>
</html>
`

// HomeHandler renders the initial empty-state page.
type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// RegisterRoutes registers the routes for this handler
func (h *HomeHandler) RegisterRoutes(router *mux.Router, logger *zap.Logger) {
	router.HandleFunc("/", h.handleHome).Methods(http.MethodGet)
}

func (h *HomeHandler) handleHome(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(homePage))
}
