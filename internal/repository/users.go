package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"foodlog/internal/models"
)

const userColumns = `id, fullname, username, email, phone, password, is_admin, created_on, last_login`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user and sets its generated ID. CreatedOn is stamped here
// when zero.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedOn.IsZero() {
		user.CreatedOn = time.Now().UTC()
	}
	query := r.db.Rebind(`INSERT INTO "user" (fullname, username, email, phone, password, is_admin, created_on)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	err := r.db.QueryRowxContext(ctx, query,
		user.FullName, user.Username, user.Email, user.Phone, user.PasswordHash, user.IsAdmin, user.CreatedOn,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = ?`, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = ?`, id)
}

// TouchLastLogin records a successful login at t.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id int, t time.Time) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE "user" SET last_login = ? WHERE id = ?`), t.UTC(), id)
	if err != nil {
		return fmt.Errorf("update last_login: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
