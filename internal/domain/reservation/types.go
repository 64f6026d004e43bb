package reservation

import "strings"

type PaymentMethod struct {
	ID        int64  `json:"id"`
	IsDefault bool   `json:"is_default"`
	Display   string `json:"display"`
}

// User is the subset of /2/user the client cares about.
type User struct {
	ID             int64           `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"em_address"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}

// DefaultPaymentMethod returns the method flagged default, else the first one.
func (u User) DefaultPaymentMethod() (PaymentMethod, bool) {
	return defaultPaymentMethod(u.PaymentMethods)
}

func defaultPaymentMethod(pms []PaymentMethod) (PaymentMethod, bool) {
	for _, pm := range pms {
		if pm.IsDefault {
			return pm, true
		}
	}
	if len(pms) > 0 {
		return pms[0], true
	}
	return PaymentMethod{}, false
}

type Venue struct {
	ID      int64
	Name    string
	URLSlug string
}

// Slot is one bookable time returned by /4/find.
type Slot struct {
	Start       string // "2006-01-02 15:04:05", restaurant local time
	End         string
	Type        string // e.g. "Dining Room"
	ConfigToken string // config id for /3/details
}

// StartTime is the clock part of Start ("19:00:00"), or "" if Start is malformed.
func (s Slot) StartTime() string {
	pieces := strings.Split(s.Start, " ")
	if len(pieces) < 2 {
		return ""
	}
	return pieces[1]
}

type Details struct {
	BookToken        string
	BookTokenExpires string
	PaymentMethods   []PaymentMethod
}

func (d Details) DefaultPaymentMethod() (PaymentMethod, bool) {
	return defaultPaymentMethod(d.PaymentMethods)
}

type Booking struct {
	ResyToken     string `json:"resy_token"`
	ReservationID int64  `json:"reservation_id"`
}
