package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
	"github.com/surajkarki66/MediLeaf-backend/internal/domain/repository"
)

const profileColumns = `id, user_id, slug, avatar_url, facebook, instagram, linkedin, twitter, created_at, updated_at`

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*entity.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
}

func (r *ProfileRepository) GetBySlug(ctx context.Context, slug string) (*entity.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE slug = $1`, slug)
}

func (r *ProfileRepository) getOne(ctx context.Context, query string, arg any) (*entity.Profile, error) {
	p := &entity.Profile{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&p.ID, &p.UserID, &p.Slug, &p.AvatarURL, &p.Facebook, &p.Instagram,
		&p.LinkedIn, &p.Twitter, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET slug = $1, avatar_url = $2, facebook = $3, instagram = $4, linkedin = $5, twitter = $6, updated_at = $7
		WHERE id = $8
	`, p.Slug, p.AvatarURL, p.Facebook, p.Instagram, p.LinkedIn, p.Twitter, p.UpdatedAt, p.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM profiles WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
