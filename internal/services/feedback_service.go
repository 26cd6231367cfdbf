package services

import (
	"context"
	"fmt"

	"foodlog/internal/forms"
	"foodlog/internal/metrics"
	"foodlog/internal/models"
	"foodlog/internal/repository"
)

const maxFeedbackPage = 200

// FeedbackService accepts visitor feedback and serves it back for review.
type FeedbackService struct {
	repo *repository.FeedbackRepository
	enc  *EncryptionService
}

func NewFeedbackService(repo *repository.FeedbackRepository, enc *EncryptionService) *FeedbackService {
	return &FeedbackService{repo: repo, enc: enc}
}

// Submit validates and stores a feedback message. Nothing is written when
// validation fails.
func (s *FeedbackService) Submit(ctx context.Context, f forms.FeedbackForm) (*models.Feedback, error) {
	if err := invalid(f.Validate()); err != nil {
		return nil, err
	}

	fb := &models.Feedback{FullName: f.FullName, Email: f.Email, Phone: f.Phone, Body: f.Body}
	if err := s.enc.EncryptFeedback(fb); err != nil {
		return nil, fmt.Errorf("encrypt feedback: %w", err)
	}
	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}
	metrics.FeedbackReceived.Inc()
	return fb, nil
}

// List returns decrypted feedback, newest first. A non-empty email narrows
// the result to that sender.
func (s *FeedbackService) List(ctx context.Context, email string, limit int) ([]models.Feedback, error) {
	if limit <= 0 || limit > maxFeedbackPage {
		limit = maxFeedbackPage
	}

	var (
		rows []models.Feedback
		err  error
	)
	if email != "" {
		rows, err = s.repo.ListByEmailIndex(ctx, s.enc.EmailIndex(email), limit)
	} else {
		rows, err = s.repo.List(ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if err := s.enc.DecryptFeedback(&rows[i]); err != nil {
			return nil, fmt.Errorf("decrypt feedback %d: %w", rows[i].ID, err)
		}
	}
	return rows, nil
}
