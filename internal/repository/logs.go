package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"foodlog/internal/models"
)

// LogRepository handles logs and the entries linked to them through log_food.
type LogRepository struct {
	db *sqlx.DB
}

func NewLogRepository(db *sqlx.DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Create(ctx context.Context, log *models.Log) error {
	query := r.db.Rebind(`INSERT INTO log (user_id, date) VALUES (?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, query, log.UserID, log.Date).Scan(&log.ID); err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

func (r *LogRepository) GetByID(ctx context.Context, id int) (*models.Log, error) {
	var l models.Log
	if err := r.db.GetContext(ctx, &l, r.db.Rebind(`SELECT id, user_id, date FROM log WHERE id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get log: %w", err)
	}
	return &l, nil
}

// ListSummaries returns the user's logs, newest date first, each with the sum
// of its entries' calories.
func (r *LogRepository) ListSummaries(ctx context.Context, userID int) ([]models.LogSummary, error) {
	query := r.db.Rebind(`
		SELECT l.id, l.user_id, l.date, COALESCE(SUM(p.cal), 0) AS total
		FROM log l
		LEFT JOIN log_food lf ON lf.log_id = l.id
		LEFT JOIN prod p ON p.id = lf.prod_id
		WHERE l.user_id = ?
		GROUP BY l.id, l.user_id, l.date
		ORDER BY l.date DESC, l.id DESC`)
	out := []models.LogSummary{}
	if err := r.db.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return out, nil
}

// Entries returns the entries linked to a log in insertion order.
func (r *LogRepository) Entries(ctx context.Context, logID int) ([]models.Prod, error) {
	query := r.db.Rebind(`
		SELECT p.id, p.name, p.cal, p.gr
		FROM prod p
		JOIN log_food lf ON lf.prod_id = p.id
		WHERE lf.log_id = ?
		ORDER BY p.id`)
	out := []models.Prod{}
	if err := r.db.SelectContext(ctx, &out, query, logID); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return out, nil
}

// AddEntry stores prod and links it to the log in one transaction.
func (r *LogRepository) AddEntry(ctx context.Context, logID int, prod *models.Prod) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add entry: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowxContext(ctx, tx.Rebind(`INSERT INTO prod (name, cal, gr) VALUES (?, ?, ?) RETURNING id`),
		prod.Name, prod.Calories, prod.Grams).Scan(&prod.ID); err != nil {
		return fmt.Errorf("insert prod: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO log_food (log_id, prod_id) VALUES (?, ?)`), logID, prod.ID); err != nil {
		return fmt.Errorf("link prod: %w", err)
	}
	return tx.Commit()
}

// RemoveEntry unlinks prodID from the log and deletes the entry, which has no
// other owner. Returns ErrNotFound when the entry is not linked to the log.
func (r *LogRepository) RemoveEntry(ctx context.Context, logID, prodID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin remove entry: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM log_food WHERE log_id = ? AND prod_id = ?`), logID, prodID)
	if err != nil {
		return fmt.Errorf("unlink prod: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM prod WHERE id = ?`), prodID); err != nil {
		return fmt.Errorf("delete prod: %w", err)
	}
	return tx.Commit()
}

// Delete removes the log, its association rows and the entries it owned.
func (r *LogRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete log: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM prod WHERE id IN (SELECT prod_id FROM log_food WHERE log_id = ?)`), id); err != nil {
		return fmt.Errorf("delete log entries: %w", err)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM log WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
