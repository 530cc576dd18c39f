package web

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/khaledAlzeer/BlogWithUsers/internal/models"
)

type HTMLData struct {
	Title       string
	Path        string
	Flash       string
	FormError   string
	FormErrors  formErrors
	FormData    map[string]string // submitted values echoed back into the form
	CSRFToken   string
	CurrentUser *models.User
	IsAdmin     bool
	IsEdit      bool
	Post        *models.Post
	Posts       []*models.Post
	Comments    []*models.Comment
	Messages    []*models.Message
	Page        int
	TotalPages  int
	PrevPage    int // 0 when on the first page
	NextPage    int // 0 when on the last page
}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
	// gravatar builds the avatar URL shown next to comments
	// (size 100, rating g, retro fallback).
	"gravatar": func(email string) string {
		hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
		return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=100&r=g&d=retro", hash)
	},
}

func (app *app) RenderHTML(w http.ResponseWriter, r *http.Request, pageFile string, data *HTMLData) {
	if data == nil {
		data = &HTMLData{}
	}

	data.Path = r.URL.Path

	if data.CurrentUser == nil {
		data.CurrentUser = app.getCurrentUser(r)
	}
	data.IsAdmin = app.isAdmin(data.CurrentUser)

	// Cookies must go out before the body, so flash and CSRF are resolved here.
	if data.Flash == "" {
		data.Flash = app.popFlash(w, r)
	}
	if data.CSRFToken == "" {
		data.CSRFToken = app.csrfToken(w, r)
	}

	layoutFile := "base.layout.html"

	files := []string{
		filepath.Join(app.HTMLDir, layoutFile),
		filepath.Join(app.HTMLDir, pageFile),
	}

	ts, err := template.New("").Funcs(functions).ParseFiles(files...)
	if err != nil {
		app.ServerError(w, err)
		return
	}

	ts, err = ts.ParseGlob(filepath.Join(app.HTMLDir, "*.partial.html"))
	if err != nil {
		app.ServerError(w, err)
		return
	}

	// Render to a buffer first so a template failure still yields a clean 500.
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		app.ServerError(w, err)
		return
	}

	buf.WriteTo(w)
}
