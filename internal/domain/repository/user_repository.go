package repository

import (
	"context"

	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
)

// UserRepository persists accounts. Create also provisions the user's empty
// profile and default group membership inside the same transaction.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User, profileSlug string) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	MarkVerified(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// ProfileRepository persists user profiles.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*entity.Profile, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}
