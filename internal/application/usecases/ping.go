package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/resy-client/internal/domain/reservation"
)

type UserFetcher interface {
	GetUser(ctx context.Context) (json.RawMessage, error)
}

// Ping checks that the configured credentials are accepted by fetching the
// authenticated user.
type Ping struct {
	Gateway UserFetcher
}

func (u Ping) Execute(ctx context.Context) (reservation.User, error) {
	if u.Gateway == nil {
		return reservation.User{}, fmt.Errorf("gateway is nil")
	}
	raw, err := u.Gateway.GetUser(ctx)
	if err != nil {
		return reservation.User{}, err
	}
	return reservation.DecodeUser(raw)
}
