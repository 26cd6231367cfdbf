package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "flash"

// AddFlash queues a one-off message for the next rendered page.
func AddFlash(w http.ResponseWriter, r *http.Request, msg string) {
	msgs := readFlashes(r)
	msgs = append(msgs, msg)
	raw, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes returns the queued messages and clears them.
func PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	msgs := readFlashes(r)
	if len(msgs) > 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return msgs
}

func readFlashes(r *http.Request) []string {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var msgs []string
	if json.Unmarshal(raw, &msgs) != nil {
		return nil
	}
	return msgs
}
