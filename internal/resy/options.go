package resy

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Gateway during New.
type Option func(*Gateway) error

// WithBaseURL points the gateway at a different API host, e.g. an httptest server.
func WithBaseURL(raw string) Option {
	return func(g *Gateway) error {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("base url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base url %q must be absolute", raw)
		}
		g.baseURL = strings.TrimRight(raw, "/")
		return nil
	}
}

// WithHTTPClient sets the underlying http.Client. It is copied, not mutated.
// If it carries its own Timeout that value wins over WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *Gateway) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		g.hc = hc
		return nil
	}
}

func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		g.timeout = d
		return nil
	}
}

// WithLocation sets the city filter sent with venue lookups.
func WithLocation(location string) Option {
	return func(g *Gateway) error {
		if strings.TrimSpace(location) == "" {
			return errors.New("location is empty")
		}
		g.location = location
		return nil
	}
}

// WithCoordinates sets the lat/long sent with availability searches.
// The service still requires them even though they do not narrow results.
func WithCoordinates(lat, long float64) Option {
	return func(g *Gateway) error {
		g.lat, g.long = lat, long
		return nil
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(g *Gateway) error {
		g.log = l
		return nil
	}
}

// WithDebugLogging dumps every request and response at debug level, with the
// credential values redacted.
func WithDebugLogging(enabled bool) Option {
	return func(g *Gateway) error {
		g.debug = enabled
		return nil
	}
}
