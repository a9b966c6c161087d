package ytmusic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/molpadia/ytmusic-gateway/internal/domain/entity"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://music.youtube.com"

	clientName      = "WEB_REMIX"
	userAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:88.0) Gecko/20100101 Firefox/88.0"
	maxResponseSize = 16 << 20
)

// Client talks to the InnerTube API behind the YouTube Music web client.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	language   string
	location   string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter

	// Return player documents of unplayable videos instead of a not found fault.
	passUnplayable bool
}

func NewClient(options ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		language:   "en",
		timeout:    15 * time.Second,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(5, 5),
	}
	for _, applyOption := range options {
		applyOption(c)
	}
	return c
}

// The client version is date based, the upstream rejects stale versions.
func clientVersion(now time.Time) string {
	return "1." + now.UTC().Format("20060102") + ".01.00"
}

func (c *Client) requestContext() map[string]interface{} {
	client := map[string]interface{}{
		"clientName":    clientName,
		"clientVersion": clientVersion(time.Now()),
		"hl":            c.language,
	}
	if c.location != "" {
		client["gl"] = c.location
	}
	return map[string]interface{}{
		"client": client,
		"user":   map[string]interface{}{},
	}
}

// Send a request to the given InnerTube endpoint and return the raw response body.
func (c *Client) post(ctx context.Context, endpoint string, body map[string]interface{}, params string) ([]byte, error) {
	logger := zerolog.Ctx(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, entity.NewFault(entity.KindUnavailable, endpoint, "", fmt.Errorf("rate limiter: %w", err))
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body["context"] = c.requestContext()
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, entity.NewFault(entity.KindInternal, endpoint, "", err)
	}
	url := fmt.Sprintf("%s/youtubei/v1/%s?alt=json&prettyPrint=false%s", c.baseURL, endpoint, params)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, entity.NewFault(entity.KindInternal, endpoint, "", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Origin", DefaultBaseURL)
	req.Header.Set("X-Origin", DefaultBaseURL)
	req.Header.Set("Referer", DefaultBaseURL+"/")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, entity.NewFault(entity.KindUnavailable, endpoint, fmt.Sprintf("request to %s timed out", endpoint), err)
		}
		return nil, entity.NewFault(entity.KindUnavailable, endpoint, "", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, entity.NewFault(entity.KindUnavailable, endpoint, "", fmt.Errorf("failed to read response: %w", err))
	}
	logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("innertube request completed")

	if resp.StatusCode >= 300 {
		return nil, statusFault(endpoint, resp.StatusCode, out)
	}
	if !gjson.ValidBytes(out) {
		return nil, entity.NewFault(entity.KindInternal, endpoint, fmt.Sprintf("malformed response from %s", endpoint), nil)
	}
	return out, nil
}

// Map an unsuccessful upstream status to a fault.
func statusFault(endpoint string, code int, body []byte) *entity.Fault {
	msg := fmt.Sprintf("server returned HTTP %d: %s", code, http.StatusText(code))
	if detail := gjson.GetBytes(body, "error.message").String(); detail != "" {
		msg += ": " + detail
	}
	kind := entity.KindInternal
	switch {
	case code == http.StatusNotFound:
		kind = entity.KindNotFound
	case code == http.StatusBadRequest:
		kind = entity.KindInvalid
	case code == http.StatusTooManyRequests || code >= 500:
		kind = entity.KindUnavailable
	}
	return entity.NewFault(kind, endpoint, msg, nil)
}
