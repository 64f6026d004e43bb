package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/example/resy-client/internal/domain/user"
	"github.com/example/resy-client/internal/internaltypes"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepo stores profiles as given. Encryption happens a layer up.
type ProfileRepo struct{ pool *pgxpool.Pool }

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo { return &ProfileRepo{pool: pool} }

// Upsert inserts p or replaces the credentials of the profile with the same
// name. The stored row is returned.
func (r *ProfileRepo) Upsert(ctx context.Context, p user.Profile) (user.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (id, name, resy_api_key, resy_auth_token, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$5)
		ON CONFLICT (name) DO UPDATE
		SET resy_api_key=EXCLUDED.resy_api_key, resy_auth_token=EXCLUDED.resy_auth_token, updated_at=EXCLUDED.updated_at
		RETURNING id, name, resy_api_key, resy_auth_token, created_at, updated_at
	`, p.ID, p.Name, p.APIKey, p.AuthToken, now)
	return scanProfile(row)
}

func (r *ProfileRepo) GetByName(ctx context.Context, name string) (user.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, resy_api_key, resy_auth_token, created_at, updated_at
		FROM profiles WHERE name=$1
	`, name)
	return scanProfile(row)
}

func (r *ProfileRepo) List(ctx context.Context) ([]user.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, resy_api_key, resy_auth_token, created_at, updated_at
		FROM profiles ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []user.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProfileRepo) Delete(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE name=$1`, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return internaltypes.ErrNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (user.Profile, error) {
	var p user.Profile
	if err := row.Scan(&p.ID, &p.Name, &p.APIKey, &p.AuthToken, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, internaltypes.ErrNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}
