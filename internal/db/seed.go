package db

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"foodlog/internal/models"
)

//go:embed seed/foods.csv
var defaultFoods []byte

var ErrSeedHeader = errors.New("seed header needs a name column and one of cal, cal_per_gram, kcal_per_100g")

// LoadFoodSeed reads the food reference seed at path, or the embedded
// default when path is empty.
func LoadFoodSeed(path string) ([]models.Food, error) {
	if path == "" {
		return ParseFoods(bytes.NewReader(defaultFoods))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open food seed: %w", err)
	}
	defer f.Close()
	return ParseFoods(f)
}

// ParseFoods reads a CSV export of the nutrition spreadsheet. Rates given per
// 100g are converted to calories per gram.
func ParseFoods(r io.Reader) ([]models.Food, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read seed header: %w", err)
	}
	nameCol, calCol, divisor := -1, -1, 1.0
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			nameCol = i
		case "cal", "cal_per_gram":
			calCol, divisor = i, 1
		case "kcal_per_100g":
			calCol, divisor = i, 100
		}
	}
	if nameCol < 0 || calCol < 0 {
		return nil, ErrSeedHeader
	}

	var foods []models.Food
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read seed line %d: %w", line, err)
		}
		name := strings.TrimSpace(rec[nameCol])
		if name == "" {
			return nil, fmt.Errorf("seed line %d: name is empty", line)
		}
		cal, err := strconv.ParseFloat(strings.TrimSpace(rec[calCol]), 64)
		if err != nil || cal < 0 {
			return nil, fmt.Errorf("seed line %d: invalid calories %q", line, rec[calCol])
		}
		foods = append(foods, models.Food{Name: name, CalPerGram: cal / divisor})
	}
	return foods, nil
}

// SeedFoods replaces the food reference table with foods in one transaction.
// Log entries are snapshots and are not affected.
func SeedFoods(ctx context.Context, db *sqlx.DB, foods []models.Food) (int, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM food`); err != nil {
		return 0, fmt.Errorf("clear food table: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`INSERT INTO food (name, cal) VALUES (?, ?)`))
	if err != nil {
		return 0, fmt.Errorf("prepare food insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range foods {
		if _, err := stmt.ExecContext(ctx, f.Name, f.CalPerGram); err != nil {
			return 0, fmt.Errorf("insert food %q: %w", f.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return len(foods), nil
}
