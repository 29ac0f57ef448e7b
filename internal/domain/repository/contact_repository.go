package repository

import (
	"context"

	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
)

type ContactRepository interface {
	Create(ctx context.Context, c *entity.Contact) error
	List(ctx context.Context, p ListParams) ([]entity.Contact, int, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, f *entity.Feedback) error
	List(ctx context.Context, p ListParams) ([]entity.Feedback, int, error)
}
