package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

const noticeCookie = "notice"

// Notice is a one-shot user-visible message carried across a redirect in a
// short-lived cookie, read and cleared on the next render.
type Notice struct {
	Level string `json:"level"` // success, info, warning, error
	Text  string `json:"text"`
}

func (app *App) setNotice(w http.ResponseWriter, level, text string) {
	payload, err := json.Marshal(Notice{Level: level, Text: text})
	if err != nil {
		log.Errorf("[setNotice] failed to encode notice: %v", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     noticeCookie,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   60,
		SameSite: http.SameSiteLaxMode,
	})
}

func (app *App) popNotice(w http.ResponseWriter, r *http.Request) *Notice {
	c, err := r.Cookie(noticeCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     noticeCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var n Notice
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil
	}

	return &n
}
