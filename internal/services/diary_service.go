package services

import (
	"context"
	"errors"

	"foodlog/internal/forms"
	"foodlog/internal/metrics"
	"foodlog/internal/models"
	"foodlog/internal/repository"
)

// LogDetail is a log with its entries and their calorie total.
type LogDetail struct {
	Log     models.Log
	Entries []models.Prod
	Total   float64
}

// DiaryService owns the food diary: logs, the entries attached to them and
// the reference lookups used to price those entries.
type DiaryService struct {
	logs  *repository.LogRepository
	foods *repository.FoodRepository
}

func NewDiaryService(logs *repository.LogRepository, foods *repository.FoodRepository) *DiaryService {
	return &DiaryService{logs: logs, foods: foods}
}

func (s *DiaryService) CreateLog(ctx context.Context, userID int, date string) (*models.Log, error) {
	day, ok := forms.ParseDate(date)
	if !ok {
		return nil, ErrInvalidDate
	}
	log := &models.Log{UserID: userID, Date: day}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}
	metrics.LogsCreated.Inc()
	return log, nil
}

// ownedLog loads a log and checks that userID owns it.
func (s *DiaryService) ownedLog(ctx context.Context, userID, logID int) (*models.Log, error) {
	log, err := s.logs.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if log.UserID != userID {
		return nil, ErrNotOwner
	}
	return log, nil
}

func (s *DiaryService) ViewLog(ctx context.Context, userID, logID int) (LogDetail, error) {
	log, err := s.ownedLog(ctx, userID, logID)
	if err != nil {
		return LogDetail{}, err
	}
	entries, err := s.logs.Entries(ctx, log.ID)
	if err != nil {
		return LogDetail{}, err
	}
	return LogDetail{Log: *log, Entries: entries, Total: models.TotalCalories(entries)}, nil
}

func (s *DiaryService) DeleteLog(ctx context.Context, userID, logID int) error {
	log, err := s.ownedLog(ctx, userID, logID)
	if err != nil {
		return err
	}
	err = s.logs.Delete(ctx, log.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLogNotFound
	}
	return err
}

// AddFood prices the requested grams against the reference table and
// attaches the resulting snapshot to the log.
func (s *DiaryService) AddFood(ctx context.Context, userID, logID int, f forms.SearchForm) (*models.Prod, error) {
	log, err := s.ownedLog(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	if err := invalid(f.Validate()); err != nil {
		return nil, err
	}

	food, err := s.foods.GetByName(ctx, f.Food)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}

	prod := &models.Prod{Name: food.Name, Calories: food.CaloriesFor(f.Grams), Grams: f.Grams}
	if err := s.logs.AddEntry(ctx, log.ID, prod); err != nil {
		return nil, err
	}
	metrics.EntriesAdded.Inc()
	return prod, nil
}

func (s *DiaryService) RemoveFood(ctx context.Context, userID, logID, prodID int) error {
	log, err := s.ownedLog(ctx, userID, logID)
	if err != nil {
		return err
	}
	err = s.logs.RemoveEntry(ctx, log.ID, prodID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEntryNotFound
	}
	return err
}

// Calendar lists the user's logs newest first with their totals.
func (s *DiaryService) Calendar(ctx context.Context, userID int) ([]models.LogSummary, error) {
	return s.logs.ListSummaries(ctx, userID)
}

func (s *DiaryService) FoodNames(ctx context.Context) ([]string, error) {
	return s.foods.ListNames(ctx)
}
