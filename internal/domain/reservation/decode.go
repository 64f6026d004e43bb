package reservation

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSchemaMismatch means a payload was valid JSON but not the shape the
// endpoint is documented to return.
var ErrSchemaMismatch = errors.New("response schema mismatch")

func decode(what string, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w: %w", what, ErrSchemaMismatch, err)
	}
	return nil
}

func DecodeUser(raw json.RawMessage) (User, error) {
	var u User
	if err := decode("user", raw, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

type venueResponse struct {
	ID struct {
		Resy int64 `json:"resy"`
	} `json:"id"`
	Name    string `json:"name"`
	URLSlug string `json:"url_slug"`
}

// DecodeVenue requires id.resy; without it the venue cannot be searched.
func DecodeVenue(raw json.RawMessage) (Venue, error) {
	var v venueResponse
	if err := decode("venue", raw, &v); err != nil {
		return Venue{}, err
	}
	if v.ID.Resy == 0 {
		return Venue{}, fmt.Errorf("decode venue: %w: id.resy missing", ErrSchemaMismatch)
	}
	return Venue{ID: v.ID.Resy, Name: v.Name, URLSlug: v.URLSlug}, nil
}

type findResponse struct {
	Results struct {
		Venues []struct {
			Slots []struct {
				Date struct {
					Start string `json:"start"`
					End   string `json:"end"`
				} `json:"date"`
				Config struct {
					Type  string `json:"type"`
					Token string `json:"token"`
				} `json:"config"`
			} `json:"slots"`
		} `json:"venues"`
	} `json:"results"`
}

// DecodeSlots flattens the slots of every venue in a /4/find response.
// No venues means no availability, not an error.
func DecodeSlots(raw json.RawMessage) ([]Slot, error) {
	var res findResponse
	if err := decode("find", raw, &res); err != nil {
		return nil, err
	}
	var out []Slot
	for _, v := range res.Results.Venues {
		for _, s := range v.Slots {
			out = append(out, Slot{
				Start:       s.Date.Start,
				End:         s.Date.End,
				Type:        s.Config.Type,
				ConfigToken: s.Config.Token,
			})
		}
	}
	return out, nil
}

type detailsResponse struct {
	BookToken struct {
		Value       string `json:"value"`
		DateExpires string `json:"date_expires"`
	} `json:"book_token"`
	User struct {
		PaymentMethods []PaymentMethod `json:"payment_methods"`
	} `json:"user"`
}

// DecodeDetails does not require a book token: dry-run queries come back without one.
func DecodeDetails(raw json.RawMessage) (Details, error) {
	var d detailsResponse
	if err := decode("details", raw, &d); err != nil {
		return Details{}, err
	}
	return Details{
		BookToken:        d.BookToken.Value,
		BookTokenExpires: d.BookToken.DateExpires,
		PaymentMethods:   d.User.PaymentMethods,
	}, nil
}

func DecodeBooking(raw json.RawMessage) (Booking, error) {
	var b Booking
	if err := decode("booking", raw, &b); err != nil {
		return Booking{}, err
	}
	if b.ResyToken == "" {
		return Booking{}, fmt.Errorf("decode booking: %w: resy_token missing", ErrSchemaMismatch)
	}
	return b, nil
}
