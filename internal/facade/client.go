// Package facade resolves a venue from a reservation page URL and runs
// read-only reservation checks against it. It never books.
package facade

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/example/resy-client/internal/domain/reservation"
)

var (
	ErrNoVenueSlug      = errors.New("url has no venues/<slug> segment")
	ErrVenueNotResolved = errors.New("venue not resolved")
)

// Gateway is the part of *resy.Gateway the facade drives.
type Gateway interface {
	GetVenue(ctx context.Context, venueSlug string) (json.RawMessage, error)
	FindReservation(ctx context.Context, venueID, day string, partySize int) (json.RawMessage, error)
}

type Client struct {
	gw  Gateway
	log zerolog.Logger

	venue reservation.Venue
}

type Option func(*Client)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(gw Gateway, opts ...Option) *Client {
	c := &Client{gw: gw, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveVenue looks up the venue named by pageURL and remembers its id for
// later checks. Gateway failures are returned unchanged apart from wrapping.
// A failed attempt leaves the client unresolved.
func (c *Client) ResolveVenue(ctx context.Context, pageURL string) (reservation.Venue, error) {
	c.venue = reservation.Venue{}
	slug := ExtractVenueSlug(pageURL)
	if slug == "" {
		return reservation.Venue{}, fmt.Errorf("%w: %s", ErrNoVenueSlug, pageURL)
	}
	raw, err := c.gw.GetVenue(ctx, slug)
	if err != nil {
		return reservation.Venue{}, fmt.Errorf("resolve venue %q: %w", slug, err)
	}
	v, err := reservation.DecodeVenue(raw)
	if err != nil {
		return reservation.Venue{}, fmt.Errorf("resolve venue %q: %w", slug, err)
	}
	c.venue = v
	c.log.Info().Str("slug", slug).Int64("venue_id", v.ID).Str("name", v.Name).Msg("venue resolved")
	return v, nil
}

// VenueID is "" until ResolveVenue succeeds.
func (c *Client) VenueID() string {
	if c.venue.ID == 0 {
		return ""
	}
	return strconv.FormatInt(c.venue.ID, 10)
}

func (c *Client) Venue() reservation.Venue { return c.venue }

// Slots returns the availability for the resolved venue on day.
func (c *Client) Slots(ctx context.Context, day string, partySize int) ([]reservation.Slot, error) {
	venueID := c.VenueID()
	if venueID == "" {
		return nil, ErrVenueNotResolved
	}
	c.log.Info().Str("venue_id", venueID).Str("day", day).Int("party_size", partySize).Msg("getting slots")
	raw, err := c.gw.FindReservation(ctx, venueID, day, partySize)
	if err != nil {
		return nil, fmt.Errorf("find slots for venue %s: %w", venueID, err)
	}
	slots, err := reservation.DecodeSlots(raw)
	if err != nil {
		return nil, fmt.Errorf("find slots for venue %s: %w", venueID, err)
	}
	return slots, nil
}

// CheckReservations reports whether the resolved venue has any slot on day.
func (c *Client) CheckReservations(ctx context.Context, day string, partySize int) (bool, error) {
	slots, err := c.Slots(ctx, day, partySize)
	if err != nil {
		return false, err
	}
	c.log.Info().Str("venue_id", c.VenueID()).Str("day", day).Int("slots", len(slots)).Msg("checked reservations")
	return len(slots) > 0, nil
}
