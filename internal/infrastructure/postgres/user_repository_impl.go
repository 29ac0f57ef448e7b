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

const userColumns = `id, first_name, last_name, email, password, contact, country,
	verification_link_expiration, is_verified, is_active, is_staff, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the account, its empty profile and the default group
// membership in one transaction.
func (r *UserRepository) Create(ctx context.Context, u *entity.User, profileSlug string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password, contact, country, verification_link_expiration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_verified, is_active, is_staff, created_at, updated_at
	`, u.FirstName, u.LastName, u.Email, u.Password, u.Contact, u.Country, u.VerificationLinkExpiration)
	if err := row.Scan(&u.ID, &u.IsVerified, &u.IsActive, &u.IsStaff, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapError(err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO profiles (user_id, slug) VALUES ($1, $2)
	`, u.ID, profileSlug); err != nil {
		return mapError(err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO user_groups (user_id, group_id)
		SELECT $1, id FROM groups WHERE name = 'user'
	`, u.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.Contact,
		&u.Country, &u.VerificationLinkExpiration, &u.IsVerified, &u.IsActive, &u.IsStaff,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, contact = $3, country = $4,
			verification_link_expiration = $5, is_active = $6, updated_at = $7
		WHERE id = $8
	`, u.FirstName, u.LastName, u.Contact, u.Country, u.VerificationLinkExpiration, u.IsActive, u.UpdatedAt, u.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password = $1, updated_at = now() WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_verified = TRUE, is_active = TRUE, verification_link_expiration = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
