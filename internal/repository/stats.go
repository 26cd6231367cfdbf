package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Overview struct {
	TotalUsers    int `db:"total_users" json:"total_users"`
	TotalLogs     int `db:"total_logs" json:"total_logs"`
	TotalEntries  int `db:"total_entries" json:"total_entries"`
	TotalFeedback int `db:"total_feedback" json:"total_feedback"`
	TotalFoods    int `db:"total_foods" json:"total_foods"`
}

// StatsRepository computes administrative counters.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Overview(ctx context.Context) (Overview, error) {
	var out Overview
	err := r.db.GetContext(ctx, &out, `
		SELECT
			(SELECT COUNT(*) FROM "user") AS total_users,
			(SELECT COUNT(*) FROM log) AS total_logs,
			(SELECT COUNT(*) FROM prod) AS total_entries,
			(SELECT COUNT(*) FROM feedback) AS total_feedback,
			(SELECT COUNT(*) FROM food) AS total_foods`)
	if err != nil {
		return Overview{}, fmt.Errorf("overview: %w", err)
	}
	return out, nil
}
