package models

import "time"

type User struct {
	ID           int        `db:"id" json:"id"`
	FullName     string     `db:"fullname" json:"fullname"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	Phone        string     `db:"phone" json:"phone"`
	PasswordHash string     `db:"password" json:"-"`
	IsAdmin      bool       `db:"is_admin" json:"is_admin"`
	CreatedOn    time.Time  `db:"created_on" json:"created_on"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
}

// Food is a reference row seeded from the nutrition spreadsheet.
// CalPerGram is calories per gram.
type Food struct {
	ID         int     `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	CalPerGram float64 `db:"cal" json:"cal"`
}

// CaloriesFor returns the absolute calories of grams of this food.
func (f Food) CaloriesFor(grams float64) float64 {
	return grams * f.CalPerGram
}

type Log struct {
	ID     int    `db:"id" json:"id"`
	UserID int    `db:"user_id" json:"user_id"`
	Date   string `db:"date" json:"date"` // YYYY-MM-DD
}

// Prod is a food entry snapshotted from the reference table when it was
// added to a log. Calories is absolute, not per gram.
type Prod struct {
	ID       int     `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Calories float64 `db:"cal" json:"cal"`
	Grams    float64 `db:"gr" json:"gr"`
}

type Feedback struct {
	ID         int       `db:"id" json:"id"`
	FullName   string    `db:"fullname" json:"fullname"`
	Email      string    `db:"email" json:"email"`       // Encrypted in DB
	EmailIndex string    `db:"email_index" json:"-"`     // HMAC hash for searching
	Phone      string    `db:"phone" json:"phone"`       // Encrypted in DB
	Body       string    `db:"body" json:"body"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// LogSummary is a log together with the calories of all its entries.
type LogSummary struct {
	Log
	Total float64 `db:"total" json:"total"`
}

// TotalCalories sums the calories of the given entries.
func TotalCalories(prods []Prod) float64 {
	var total float64
	for _, p := range prods {
		total += p.Calories
	}
	return total
}
