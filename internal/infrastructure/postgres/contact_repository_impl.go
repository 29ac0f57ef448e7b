package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
	"github.com/surajkarki66/MediLeaf-backend/internal/domain/repository"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contacts (full_name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, c.FullName, c.Email, c.Subject, c.Message)
	return row.Scan(&c.ID, &c.CreatedAt)
}

func (r *ContactRepository) List(ctx context.Context, p repository.ListParams) ([]entity.Contact, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM contacts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, full_name, email, subject, message, created_at
		FROM contacts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Subject, &c.Message, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

type FeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *entity.Feedback) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (user_id, image_url, predicted_label, is_correct, actual_label, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, f.UserID, f.ImageURL, f.PredictedLabel, f.IsCorrect, f.ActualLabel, f.Comment)
	return row.Scan(&f.ID, &f.CreatedAt)
}

func (r *FeedbackRepository) List(ctx context.Context, p repository.ListParams) ([]entity.Feedback, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM feedback`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, image_url, predicted_label, is_correct, actual_label, comment, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Feedback
	for rows.Next() {
		var f entity.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.ImageURL, &f.PredictedLabel, &f.IsCorrect,
			&f.ActualLabel, &f.Comment, &f.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	return out, total, rows.Err()
}

var (
	_ repository.ContactRepository  = (*ContactRepository)(nil)
	_ repository.FeedbackRepository = (*FeedbackRepository)(nil)
)
