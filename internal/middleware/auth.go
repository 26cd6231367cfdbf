package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"foodlog/internal/web"
)

// SessionCookie holds the signed session token.
const SessionCookie = "session"

type contextKey string

const userIDKey contextKey = "userID"

var (
	errInvalidSession = errors.New("invalid session token")
	errNoSession      = errors.New("no session")
)

// UserIDFromContext returns the id of the logged in user, if any.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// WithUserID stores the user id in the context.
func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

type AuthMiddleware struct {
	jwtSecret  []byte
	ttl        time.Duration
	secure     bool
	userExists UserChecker
}

// NewAuthMiddleware creates the session middleware. secure marks the cookie
// as HTTPS only.
func NewAuthMiddleware(secret []byte, ttl time.Duration, secure bool) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: secret, ttl: ttl, secure: secure}
}

// IssueToken signs a session token for userID.
func (m *AuthMiddleware) IssueToken(userID int, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.jwtSecret)
}

// ParseToken validates a session token and returns its subject.
func (m *AuthMiddleware) ParseToken(tokenStr string) (int, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.jwtSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", errInvalidSession, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidSession
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, errInvalidSession
	}
	return int(sub), nil
}

// StartSession issues a token and stores it in the session cookie.
func (m *AuthMiddleware) StartSession(w http.ResponseWriter, userID int) error {
	now := time.Now()
	token, err := m.IssueToken(userID, now)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(m.ttl),
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *AuthMiddleware) EndSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserChecker reports whether the account behind a session still exists.
type UserChecker func(ctx context.Context, userID int) (bool, error)

// WithUserCheck makes LoadSession drop sessions whose user is gone.
func (m *AuthMiddleware) WithUserCheck(check UserChecker) *AuthMiddleware {
	m.userExists = check
	return m
}

// sessionUser returns the subject of the bearer token or, failing that, of
// the session cookie.
func (m *AuthMiddleware) sessionUser(r *http.Request) (int, error) {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		if id, err := m.ParseToken(strings.TrimPrefix(authz, "Bearer ")); err == nil {
			return id, nil
		}
	}
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return 0, errNoSession
	}
	return m.ParseToken(c.Value)
}

// LoadSession attaches the user id from a bearer token or the session
// cookie to the request context. Requests without a valid session, or whose
// user no longer exists, pass through anonymously and a stale cookie is
// cleared.
func (m *AuthMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := m.sessionUser(r); err == nil {
			live := true
			if m.userExists != nil {
				live, err = m.userExists(r.Context(), id)
				if err != nil {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
			}
			if live {
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
				return
			}
		}
		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			m.EndSession(w)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth sends anonymous visitors to the login page, remembering where
// they were heading.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			web.AddFlash(w, r, "Please log in to access this page.")
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminChecker reports whether a user may use the admin API.
type AdminChecker func(ctx context.Context, userID int) (bool, error)

// RequireAdmin guards the JSON admin API.
func (m *AuthMiddleware) RequireAdmin(isAdmin AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "missing session")
				return
			}
			admin, err := isAdmin(r.Context(), userID)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, "server error")
				return
			}
			if !admin {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
