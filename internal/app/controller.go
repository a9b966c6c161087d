package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/molpadia/ytmusic-gateway/internal/domain/entity"
	"github.com/molpadia/ytmusic-gateway/internal/domain/repository"
	"github.com/rs/zerolog"
)

const (
	DefaultHomeLimit    = 3
	DefaultMaxHomeLimit = 100
)

var videoIdPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

type controller struct {
	catalog      repository.Catalog
	compat       bool
	maxHomeLimit int
	corsOrigins  []string
	metrics      *Metrics
}

func newController(catalog repository.Catalog, options ...Option) *controller {
	c := &controller{
		catalog:      catalog,
		maxHomeLimit: DefaultMaxHomeLimit,
		corsOrigins:  []string{"*"},
	}
	for _, applyOption := range options {
		applyOption(c)
	}
	return c
}

func (c *controller) root(w http.ResponseWriter, r *http.Request) error {
	return replyJSON(w, RootResponse{greeting}, http.StatusOK)
}

func (c *controller) health(w http.ResponseWriter, r *http.Request) error {
	return replyJSON(w, HealthResponse{"ok"}, http.StatusOK)
}

// Get the home feed of the catalog.
func (c *controller) getHome(w http.ResponseWriter, r *http.Request) error {
	limit := DefaultHomeLimit
	if q := r.URL.Query(); q.Has("limit") {
		n, err := strconv.Atoi(q.Get("limit"))
		if err != nil {
			return c.invalid(fmt.Sprintf("limit must be an integer, got %q", q.Get("limit")))
		}
		limit = n
	}
	if !c.compat && (limit < 0 || limit > c.maxHomeLimit) {
		return c.invalid(fmt.Sprintf("limit must be between 0 and %d", c.maxHomeLimit))
	}

	data, err := c.delegate("home", func() (json.RawMessage, error) {
		return c.catalog.GetHome(r.Context(), limit)
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("limit", limit).Msg("failed to fetch home feed")
		return c.fault(err)
	}
	return replyJSON(w, successEnvelope(data), http.StatusOK)
}

// Get the song by the video ID.
func (c *controller) getSong(w http.ResponseWriter, r *http.Request) error {
	id := mux.Vars(r)["videoId"]
	if id == "" {
		return c.invalid("video ID must be required")
	}
	if !c.compat && !videoIdPattern.MatchString(id) {
		return c.invalid(fmt.Sprintf("invalid video ID %q", id))
	}

	data, err := c.delegate("song", func() (json.RawMessage, error) {
		return c.catalog.GetSong(r.Context(), id)
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("video_id", id).Msg("failed to fetch song")
		return c.fault(err)
	}
	return replyJSON(w, successEnvelope(data), http.StatusOK)
}

// Call the catalog, turning panics and malformed documents into internal faults.
func (c *controller) delegate(op string, fn func() (json.RawMessage, error)) (data json.RawMessage, err error) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			data, err = nil, entity.NewFault(entity.KindInternal, op, fmt.Sprint(p), nil)
		}
		c.metrics.observeUpstream(op, err, time.Since(start))
	}()
	data, err = fn()
	if err == nil && len(data) > 0 && !json.Valid(data) {
		return nil, entity.NewFault(entity.KindInternal, op, "catalog returned malformed JSON", nil)
	}
	return data, err
}

// Reject the request parameters. The original framework answered
// validation failures with 422, compat mode keeps that.
func (c *controller) invalid(message string) *AppError {
	if c.compat {
		return &AppError{http.StatusUnprocessableEntity, message}
	}
	return &AppError{http.StatusBadRequest, message}
}

// Convert a catalog failure to the error reported to the client.
func (c *controller) fault(err error) *AppError {
	kind := entity.KindOf(err)
	message := err.Error()
	if message == "" {
		message = string(kind)
	}
	if c.compat {
		return &AppError{http.StatusOK, message}
	}
	return &AppError{faultStatus[kind], message}
}
