package app

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/molpadia/ytmusic-gateway/internal/domain/repository"
	"github.com/rs/zerolog"
)

type appHandler func(http.ResponseWriter, *http.Request) error

func (fn appHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	defer func() {
		if p := recover(); p != nil {
			logger.Error().Interface("panic", p).Msg("handler panicked")
			replyJSON(w, errorEnvelope(fmt.Sprintf("internal server error: %v", p)), http.StatusInternalServerError)
		}
	}()
	if err := fn(w, r); err != nil {
		if e, ok := err.(*AppError); ok {
			logger.Warn().Int("code", e.Code).Str("message", e.Message).Msg("request failed")
			replyJSON(w, errorEnvelope(e.Message), e.Code)
		} else {
			logger.Error().Err(err).Msg("request failed")
			replyJSON(w, errorEnvelope(fmt.Sprintf("internal server error: %v", err)), http.StatusInternalServerError)
		}
	}
}

// NewHandler builds the HTTP handler of the API serving the given catalog.
func NewHandler(catalog repository.Catalog, options ...Option) http.Handler {
	c := newController(catalog, options...)
	r := mux.NewRouter()
	SetupRoutes(r, c)

	var h http.Handler = r
	h = cors(c.corsOrigins)(h)
	h = accessLog(h)
	h = requestID(h)
	return h
}

// Register API endpoints to the router.
func SetupRoutes(r *mux.Router, c *controller) {
	if c.metrics != nil {
		r.Use(c.metrics.instrument)
		r.Methods("GET").Path("/metrics").Handler(c.metrics.Handler())
	}
	r.Methods("GET").Path("/").Handler(appHandler(c.root))
	r.Methods("GET").Path("/healthz").Handler(appHandler(c.health))
	r.Methods("GET").Path("/home").Handler(appHandler(c.getHome))
	r.Methods("GET").Path("/song/{videoId}").Handler(appHandler(c.getSong))

	r.NotFoundHandler = appHandler(func(w http.ResponseWriter, r *http.Request) error {
		return &AppError{http.StatusNotFound, "not found"}
	})
	r.MethodNotAllowedHandler = appHandler(func(w http.ResponseWriter, r *http.Request) error {
		return &AppError{http.StatusMethodNotAllowed, "method not allowed"}
	})
}
