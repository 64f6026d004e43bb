package resy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/net/http/httpguts"
)

const (
	DefaultBaseURL  = "https://api.resy.com"
	DefaultLocation = "new-york-ny"
	DefaultTimeout  = 3 * time.Second

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
)

const (
	opGetUser               = "get_user"
	opGetVenue              = "get_venue"
	opFindReservation       = "find_reservation"
	opGetReservationDetails = "get_reservation_details"
	opBookReservation       = "book_reservation"
)

// Credentials are the API key and auth token captured from an authenticated
// browser session.
type Credentials struct {
	APIKey    string
	AuthToken string
}

func (c Credentials) authorization() string {
	return fmt.Sprintf(`ResyAPI api_key="%s"`, c.APIKey)
}

// Validate reports whether both values can be sent as HTTP header values.
// Emptiness is not checked; the remote service decides whether a pair is usable.
func (c Credentials) Validate() error {
	if !httpguts.ValidHeaderFieldValue(c.authorization()) {
		return fmt.Errorf("%w: api key is not a valid header value", ErrInvalidCredentials)
	}
	if !httpguts.ValidHeaderFieldValue(c.AuthToken) {
		return fmt.Errorf("%w: auth token is not a valid header value", ErrInvalidCredentials)
	}
	return nil
}

// Commit selects between a dry-run details query and one that issues a book token.
type Commit int

const (
	DryRun        Commit = 0
	GenerateToken Commit = 1
)

// Gateway issues one-shot requests against the Resy private API. It holds no
// mutable state after New returns and is safe for concurrent use.
//
// Request counts and latencies are registered with the prometheus default
// registry; processes embedding a Gateway expose them by serving
// prometheus.DefaultGatherer (e.g. promhttp.Handler()).
type Gateway struct {
	rc    *resty.Client
	creds Credentials

	hc       *http.Client
	baseURL  string
	timeout  time.Duration
	location string
	lat      float64
	long     float64
	debug    bool
	log      zerolog.Logger
}

func New(creds Credentials, opts ...Option) (*Gateway, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	g := &Gateway{
		creds:    creds,
		hc:       &http.Client{},
		baseURL:  DefaultBaseURL,
		timeout:  DefaultTimeout,
		location: DefaultLocation,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	// copy so options never mutate a caller-owned client
	hc := *g.hc
	if hc.Timeout == 0 {
		hc.Timeout = g.timeout
	}
	if g.debug {
		hc.Transport = &debugTransport{base: hc.Transport, log: g.log, secrets: []string{creds.APIKey, creds.AuthToken}}
	}

	g.rc = resty.NewWithClient(&hc).
		SetBaseURL(g.baseURL).
		SetLogger(restyLogger{log: g.log}).
		SetHeaders(map[string]string{
			"User-Agent":            userAgent,
			"Origin":                "https://resy.com",
			"Referrer":              "https://resy.com",
			"X-Origin":              "https://resy.com",
			"Cache-Control":         "no-cache",
			"Authorization":         creds.authorization(),
			"X-Resy-Auth-Token":     creds.AuthToken,
			"X-Resy-Universal-Auth": creds.AuthToken,
		})
	return g, nil
}

// Location is the city filter sent with venue lookups.
func (g *Gateway) Location() string { return g.location }

func (g *Gateway) GetUser(ctx context.Context) (json.RawMessage, error) {
	return g.do(ctx, opGetUser, http.MethodGet, "/2/user", nil)
}

func (g *Gateway) GetVenue(ctx context.Context, venueSlug string) (json.RawMessage, error) {
	return g.do(ctx, opGetVenue, http.MethodGet, "/3/venue", func(r *resty.Request) {
		r.SetQueryParams(map[string]string{
			"url_slug": venueSlug,
			"location": g.location,
		})
	})
}

func (g *Gateway) FindReservation(ctx context.Context, venueID, day string, partySize int) (json.RawMessage, error) {
	return g.do(ctx, opFindReservation, http.MethodGet, "/4/find", func(r *resty.Request) {
		r.SetQueryParams(map[string]string{
			"lat":        formatCoord(g.lat),
			"long":       formatCoord(g.long),
			"day":        day,
			"party_size": strconv.Itoa(partySize),
			"venue_id":   venueID,
		})
	})
}

type detailsRequest struct {
	Commit    Commit `json:"commit"`
	ConfigID  string `json:"config_id"`
	Day       string `json:"day"`
	PartySize int    `json:"party_size"`
}

// GetReservationDetails fetches the booking details for a slot configuration.
// With GenerateToken the response carries a book token for BookReservation.
func (g *Gateway) GetReservationDetails(ctx context.Context, commit Commit, configID string, partySize int, day string) (json.RawMessage, error) {
	body, err := json.Marshal(detailsRequest{Commit: commit, ConfigID: configID, Day: day, PartySize: partySize})
	if err != nil {
		return nil, err
	}
	return g.do(ctx, opGetReservationDetails, http.MethodPost, "/3/details", func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	})
}

// BookReservation commits a booking. The body is form encoded; the payment
// method is a raw JSON fragment, which is what the service expects.
func (g *Gateway) BookReservation(ctx context.Context, bookToken string, paymentID int64) (json.RawMessage, error) {
	return g.do(ctx, opBookReservation, http.MethodPost, "/3/book", func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/x-www-form-urlencoded").SetBody(bookForm(bookToken, paymentID))
	})
}

func bookForm(bookToken string, paymentID int64) string {
	return fmt.Sprintf(`book_token=%s&struct_payment_method={"id":%d}`, url.QueryEscape(bookToken), paymentID)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (g *Gateway) do(ctx context.Context, op, method, path string, prepare func(*resty.Request)) (json.RawMessage, error) {
	req := g.rc.R().SetContext(ctx)
	if prepare != nil {
		prepare(req)
	}

	start := time.Now()
	res, err := req.Execute(method, path)
	elapsed := time.Since(start)
	if err != nil {
		observe(op, "error", elapsed)
		g.log.Debug().Err(err).Str("op", op).Str("method", method).Str("path", path).Dur("elapsed", elapsed).Msg("resy request failed")
		return nil, fmt.Errorf("resy %s: %w", op, err)
	}

	status := res.StatusCode()
	observe(op, strconv.Itoa(status), elapsed)
	g.log.Debug().Str("op", op).Str("method", method).Str("path", path).Int("status", status).Dur("elapsed", elapsed).Msg("resy request")

	body := res.Body()
	if status < 200 || status > 299 {
		return nil, newAPIError(op, status, body)
	}
	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("resy %s: %w (status=%d): %w", op, ErrMalformedResponse, status, err)
	}
	return json.RawMessage(body), nil
}
