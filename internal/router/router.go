package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/harshajxn/PricePulse/internal/telemetry"
)

// Handler is anything that can register routes on the shared router.
type Handler interface {
	RegisterRoutes(router *mux.Router, logger *zap.Logger)
}

// Router wraps the mux router with rate limiting and the metrics endpoint.
type Router struct {
	mux     *mux.Router
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewRouter(limiter *rate.Limiter, tel *telemetry.Telemetry, logger *zap.Logger, handlers []Handler) *Router {
	// Product URLs arrive path-encoded (/api/history/https%3A%2F%2F...).
	// Matching must happen on the raw encoded path: the default cleaning
	// collapses the decoded "//" and 301s to a mangled URL.
	r := mux.NewRouter().SkipClean(true).UseEncodedPath()
	rt := &Router{
		mux:     r,
		limiter: limiter,
		logger:  logger.Named("router"),
	}

	r.Use(rt.rateLimitMiddleware)

	if tel != nil {
		r.Handle("/metrics", tel.Handler()).Methods(http.MethodGet)
	}

	for _, h := range handlers {
		h.RegisterRoutes(r, logger)
	}

	return rt
}

func (rt *Router) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !rt.limiter.Allow() {
			rt.logger.Warn("rate limit exceeded", zap.String("path", req.URL.Path))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// CreateServer builds the HTTP server around the configured router.
func (rt *Router) CreateServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           rt.mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
