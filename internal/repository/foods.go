package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"foodlog/internal/models"
)

// FoodRepository reads the food reference table. Writes happen only through
// db.SeedFoods.
type FoodRepository struct {
	db *sqlx.DB
}

func NewFoodRepository(db *sqlx.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

// GetByName looks a food up by exact name. When the seed holds duplicates
// the first row wins.
func (r *FoodRepository) GetByName(ctx context.Context, name string) (*models.Food, error) {
	var f models.Food
	err := r.db.GetContext(ctx, &f, r.db.Rebind(`SELECT id, name, cal FROM food WHERE name = ? ORDER BY id LIMIT 1`), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get food: %w", err)
	}
	return &f, nil
}

// ListNames returns every distinct reference name in alphabetical order.
func (r *FoodRepository) ListNames(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.db.SelectContext(ctx, &names, `SELECT DISTINCT name FROM food ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list food names: %w", err)
	}
	return names, nil
}
