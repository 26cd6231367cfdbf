package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewAuthMiddleware([]byte("secret"), time.Hour, false)
	token, err := m.IssueToken(42, time.Now())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	id, err := m.ParseToken(token)
	if err != nil || id != 42 {
		t.Fatalf("ParseToken = %d, %v", id, err)
	}

	other := NewAuthMiddleware([]byte("other"), time.Hour, false)
	if _, err := other.ParseToken(token); err == nil {
		t.Error("token accepted with the wrong secret")
	}

	expired, err := m.IssueToken(42, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ParseToken(expired); err == nil {
		t.Error("expired token accepted")
	}
}

func TestTokensAreUnique(t *testing.T) {
	m := NewAuthMiddleware([]byte("secret"), time.Hour, false)
	now := time.Now()
	a, _ := m.IssueToken(1, now)
	b, _ := m.IssueToken(1, now)
	if a == b {
		t.Error("two tokens issued at the same instant are identical")
	}
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	if id, ok := UserIDFromContext(r.Context()); ok {
		w.Header().Set("X-User", string(rune('0'+id)))
	}
	w.WriteHeader(http.StatusOK)
}

func TestLoadSessionAndRequireAuth(t *testing.T) {
	m := NewAuthMiddleware([]byte("secret"), time.Hour, false)
	h := m.LoadSession(m.RequireAuth(http.HandlerFunc(echoUser)))

	req := httptest.NewRequest(http.MethodGet, "/calendar?x=1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("anonymous status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?next=%2Fcalendar%3Fx%3D1" {
		t.Errorf("Location = %q", loc)
	}

	token, _ := m.IssueToken(7, time.Now())
	req = httptest.NewRequest(http.MethodGet, "/calendar", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Header().Get("X-User") != "7" {
		t.Errorf("cookie session: %d user=%q", rec.Code, rec.Header().Get("X-User"))
	}

	req = httptest.NewRequest(http.MethodGet, "/calendar", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("bearer session status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/calendar", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("bad cookie status = %d", rec.Code)
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("stale session cookie not cleared")
	}
}

func TestRequireAdmin(t *testing.T) {
	m := NewAuthMiddleware([]byte("secret"), time.Hour, false)
	check := func(_ context.Context, id int) (bool, error) {
		switch id {
		case 1:
			return true, nil
		case 3:
			return false, errors.New("db down")
		}
		return false, nil
	}
	h := m.RequireAdmin(check)(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		userID int
		want   int
	}{
		{"anonymous", 0, http.StatusUnauthorized},
		{"admin", 1, http.StatusOK},
		{"regular", 2, http.StatusForbidden},
		{"lookup error", 3, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/overview", nil)
			if tt.userID != 0 {
				req = req.WithContext(WithUserID(req.Context(), tt.userID))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestLoadSessionDropsDeletedUser(t *testing.T) {
	check := func(_ context.Context, id int) (bool, error) {
		switch id {
		case 7:
			return true, nil
		case 9:
			return false, errors.New("db down")
		}
		return false, nil
	}
	m := NewAuthMiddleware([]byte("secret"), time.Hour, false).WithUserCheck(check)
	h := m.LoadSession(m.RequireAuth(http.HandlerFunc(echoUser)))

	serve := func(id int) *httptest.ResponseRecorder {
		token, err := m.IssueToken(id, time.Now())
		if err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodPost, "/create_log", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := serve(7); rec.Code != http.StatusOK || rec.Header().Get("X-User") != "7" {
		t.Errorf("live user: %d user=%q", rec.Code, rec.Header().Get("X-User"))
	}

	rec := serve(8)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("deleted user status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?next=%2Fcreate_log" {
		t.Errorf("Location = %q", loc)
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session of deleted user not cleared")
	}

	if rec := serve(9); rec.Code != http.StatusInternalServerError {
		t.Errorf("lookup error status = %d, want 500", rec.Code)
	}
}
