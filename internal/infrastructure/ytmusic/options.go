package ytmusic

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLanguage sets the interface language of the returned documents.
func WithLanguage(language string) ClientOption {
	return func(c *Client) {
		c.language = language
	}
}

// WithLocation sets the country the home feed is tailored to.
func WithLocation(location string) ClientOption {
	return func(c *Client) {
		c.location = location
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRateLimit throttles outbound requests to rps per second. A zero rps disables throttling.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUnplayableDocuments makes GetSong return the player document of an
// unplayable video as is, leaving playabilityStatus to the caller.
func WithUnplayableDocuments(pass bool) ClientOption {
	return func(c *Client) {
		c.passUnplayable = pass
	}
}
