package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/khaledAlzeer/BlogWithUsers/internal/models"
)

const (
	SessionCookieName = "session_token"
	FlashCookieName   = "flash"
)

// setSessionCookie stores the session token for the lifetime of the session.
func (app *app) setSessionCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   app.cfg.Auth.SessionTTLHours * 60 * 60,
		HttpOnly: true,
		Secure:   false, // set true behind HTTPS
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}

func (app *app) clearSessionCookie(w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
	http.SetCookie(w, cookie)
}

func (app *app) getSessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// getCurrentUser resolves the session cookie to a user. Expired or unknown
// tokens read as anonymous.
func (app *app) getCurrentUser(r *http.Request) *models.User {
	token := app.getSessionToken(r)
	if token == "" {
		return nil
	}

	user, err := app.SessionService.GetUserBySession(token)
	if err != nil {
		return nil
	}

	return user
}

func (app *app) isAuthenticated(r *http.Request) bool {
	return app.getCurrentUser(r) != nil
}

// isAdmin reports whether the user is the configured admin account.
func (app *app) isAdmin(user *models.User) bool {
	return user != nil && user.ID == app.cfg.Auth.AdminUserID
}

// setFlash stores a one-shot notice shown on the next rendered page.
func (app *app) setFlash(w http.ResponseWriter, message string) {
	cookie := &http.Cookie{
		Name:     FlashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	}
	http.SetCookie(w, cookie)
}

// popFlash reads and clears the flash cookie.
func (app *app) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

// pathID extracts the numeric id from a path like /prefix/{id} or
// /prefix/{id}/suffix.
func pathID(path, prefix, suffix string) (int, bool) {
	idStr := strings.TrimPrefix(path, prefix)
	if suffix != "" {
		idStr = strings.TrimSuffix(idStr, suffix)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
