package user

import "time"

// Profile is a named set of Resy credentials. APIKey and AuthToken hold
// plaintext in memory and ciphertext at rest.
type Profile struct {
	ID   string
	Name string

	APIKey    string
	AuthToken string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Profile) HasResy() bool {
	return p.APIKey != "" && p.AuthToken != ""
}
