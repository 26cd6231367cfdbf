package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS food (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    cal DOUBLE PRECISION NOT NULL CHECK (cal >= 0)
);

CREATE TABLE IF NOT EXISTS "user" (
    id SERIAL PRIMARY KEY,
    fullname TEXT NOT NULL,
    username TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    phone TEXT NOT NULL,
    password TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT false,
    created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_login TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS log (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES "user"(id) ON DELETE CASCADE,
    date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS prod (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    cal DOUBLE PRECISION NOT NULL,
    gr DOUBLE PRECISION NOT NULL CHECK (gr > 0)
);

CREATE TABLE IF NOT EXISTS log_food (
    log_id INTEGER NOT NULL REFERENCES log(id) ON DELETE CASCADE,
    prod_id INTEGER NOT NULL UNIQUE REFERENCES prod(id) ON DELETE CASCADE,
    PRIMARY KEY (log_id, prod_id)
);

CREATE TABLE IF NOT EXISTS feedback (
    id SERIAL PRIMARY KEY,
    fullname TEXT NOT NULL,
    email TEXT NOT NULL,
    email_index TEXT NOT NULL,
    phone TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_food_name ON food(name);
CREATE INDEX IF NOT EXISTS idx_log_user_date ON log(user_id, date);
CREATE INDEX IF NOT EXISTS idx_feedback_email_index ON feedback(email_index);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS food (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    cal REAL NOT NULL CHECK (cal >= 0)
);

CREATE TABLE IF NOT EXISTS "user" (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    fullname TEXT NOT NULL,
    username TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    phone TEXT NOT NULL,
    password TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT 0,
    created_on TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    last_login TIMESTAMP
);

CREATE TABLE IF NOT EXISTS log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES "user"(id) ON DELETE CASCADE,
    date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS prod (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    cal REAL NOT NULL,
    gr REAL NOT NULL CHECK (gr > 0)
);

CREATE TABLE IF NOT EXISTS log_food (
    log_id INTEGER NOT NULL REFERENCES log(id) ON DELETE CASCADE,
    prod_id INTEGER NOT NULL UNIQUE REFERENCES prod(id) ON DELETE CASCADE,
    PRIMARY KEY (log_id, prod_id)
);

CREATE TABLE IF NOT EXISTS feedback (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    fullname TEXT NOT NULL,
    email TEXT NOT NULL,
    email_index TEXT NOT NULL,
    phone TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_food_name ON food(name);
CREATE INDEX IF NOT EXISTS idx_log_user_date ON log(user_id, date);
CREATE INDEX IF NOT EXISTS idx_feedback_email_index ON feedback(email_index);
`

// RunMigrations creates the schema for the connected dialect. It is safe to
// run on every start.
func RunMigrations(db *sqlx.DB) error {
	schema := sqliteSchema
	if IsPostgres(db) {
		schema = postgresSchema
	}
	_, err := db.ExecContext(context.Background(), schema)
	return err
}
