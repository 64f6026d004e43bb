package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/resy-client/internal/domain/user"
	"github.com/example/resy-client/internal/internaltypes"
)

type ProfileStore interface {
	Upsert(ctx context.Context, p user.Profile) (user.Profile, error)
	GetByName(ctx context.Context, name string) (user.Profile, error)
	List(ctx context.Context) ([]user.Profile, error)
	Delete(ctx context.Context, name string) error
}

type Sealer interface {
	EncryptToString(plaintext string) (string, error)
	DecryptString(ciphertext string) (string, error)
}

// CredentialsService keeps profile secrets encrypted in the store and
// plaintext in the caller's hands.
type CredentialsService struct {
	Profiles ProfileStore
	AEAD     Sealer
}

func (s CredentialsService) Save(ctx context.Context, p user.Profile) (user.Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return user.Profile{}, fmt.Errorf("%w: name is required", internaltypes.ErrInvalidProfile)
	}
	if !p.HasResy() {
		return user.Profile{}, fmt.Errorf("%w: api key and auth token are required", internaltypes.ErrInvalidProfile)
	}

	sealed := p
	var err error
	if sealed.APIKey, err = s.AEAD.EncryptToString(p.APIKey); err != nil {
		return user.Profile{}, err
	}
	if sealed.AuthToken, err = s.AEAD.EncryptToString(p.AuthToken); err != nil {
		return user.Profile{}, err
	}

	stored, err := s.Profiles.Upsert(ctx, sealed)
	if err != nil {
		return user.Profile{}, err
	}
	stored.APIKey, stored.AuthToken = p.APIKey, p.AuthToken
	return stored, nil
}

func (s CredentialsService) Get(ctx context.Context, name string) (user.Profile, error) {
	p, err := s.Profiles.GetByName(ctx, name)
	if err != nil {
		return user.Profile{}, err
	}
	if p.APIKey, err = s.AEAD.DecryptString(p.APIKey); err != nil {
		return user.Profile{}, fmt.Errorf("decrypt api key for profile %q: %w", name, err)
	}
	if p.AuthToken, err = s.AEAD.DecryptString(p.AuthToken); err != nil {
		return user.Profile{}, fmt.Errorf("decrypt auth token for profile %q: %w", name, err)
	}
	return p, nil
}

// List returns profiles without their secrets.
func (s CredentialsService) List(ctx context.Context) ([]user.Profile, error) {
	ps, err := s.Profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ps {
		ps[i].APIKey, ps[i].AuthToken = "", ""
	}
	return ps, nil
}

func (s CredentialsService) Delete(ctx context.Context, name string) error {
	return s.Profiles.Delete(ctx, name)
}
