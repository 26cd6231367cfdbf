package handlers

import (
	"time"

	"foodlog/internal/models"
	"foodlog/internal/repository"
)

// UserDTO is the public view of an account.
type UserDTO struct {
	ID        int     `json:"id"`
	FullName  string  `json:"fullname"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	IsAdmin   bool    `json:"is_admin"`
	CreatedOn string  `json:"created_on"`
	LastLogin *string `json:"last_login,omitempty"`
}

type FeedbackDTO struct {
	ID        int    `json:"id"`
	FullName  string `json:"fullname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type OverviewDTO struct {
	TotalUsers    int `json:"total_users"`
	TotalLogs     int `json:"total_logs"`
	TotalEntries  int `json:"total_entries"`
	TotalFeedback int `json:"total_feedback"`
	TotalFoods    int `json:"total_foods"`
}

func toDateTimeStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func ToUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		FullName:  u.FullName,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedOn: u.CreatedOn.UTC().Format(time.RFC3339),
		LastLogin: toDateTimeStringPtr(u.LastLogin),
	}
}

// ToFeedbackDTOs expects already decrypted rows.
func ToFeedbackDTOs(rows []models.Feedback) []FeedbackDTO {
	out := make([]FeedbackDTO, 0, len(rows))
	for _, fb := range rows {
		out = append(out, FeedbackDTO{
			ID:        fb.ID,
			FullName:  fb.FullName,
			Email:     fb.Email,
			Phone:     fb.Phone,
			Body:      fb.Body,
			CreatedAt: fb.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func ToOverviewDTO(o repository.Overview) OverviewDTO {
	return OverviewDTO{
		TotalUsers:    o.TotalUsers,
		TotalLogs:     o.TotalLogs,
		TotalEntries:  o.TotalEntries,
		TotalFeedback: o.TotalFeedback,
		TotalFoods:    o.TotalFoods,
	}
}
