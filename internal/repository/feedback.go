package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"foodlog/internal/models"
)

const feedbackColumns = `id, fullname, email, email_index, phone, body, created_at`

// FeedbackRepository stores visitor feedback. Contact columns arrive already
// encrypted.
type FeedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	query := r.db.Rebind(`INSERT INTO feedback (fullname, email, email_index, phone, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, query,
		fb.FullName, fb.Email, fb.EmailIndex, fb.Phone, fb.Body, fb.CreatedAt,
	).Scan(&fb.ID); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// List returns up to limit rows, newest first.
func (r *FeedbackRepository) List(ctx context.Context, limit int) ([]models.Feedback, error) {
	out := []models.Feedback{}
	query := r.db.Rebind(`SELECT ` + feedbackColumns + ` FROM feedback ORDER BY created_at DESC, id DESC LIMIT ?`)
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return out, nil
}

// ListByEmailIndex returns rows whose blind email index matches, newest first.
func (r *FeedbackRepository) ListByEmailIndex(ctx context.Context, index string, limit int) ([]models.Feedback, error) {
	out := []models.Feedback{}
	query := r.db.Rebind(`SELECT ` + feedbackColumns + ` FROM feedback WHERE email_index = ? ORDER BY created_at DESC, id DESC LIMIT ?`)
	if err := r.db.SelectContext(ctx, &out, query, index, limit); err != nil {
		return nil, fmt.Errorf("list feedback by email: %w", err)
	}
	return out, nil
}
