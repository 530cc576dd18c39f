package web

import (
	"net/http"
	"regexp"
)

var (
	viewPostPattern   = regexp.MustCompile(`^/post/(\d+)$`)
	addCommentPattern = regexp.MustCompile(`^/post/(\d+)/comment$`)
)

func (app *app) routes() http.Handler {
	mux := http.NewServeMux()

	fileServer := http.FileServer(http.Dir(app.StaticDir))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	mux.HandleFunc("/", app.home)
	mux.HandleFunc("/about", app.about)
	mux.HandleFunc("/how-it-works", app.howItWorks)
	mux.HandleFunc("/contact", app.contact)

	// Guest-only routes
	mux.HandleFunc("/register", app.requireGuest(app.register))
	mux.HandleFunc("/login", app.requireGuest(app.login))

	// Authenticated routes
	mux.HandleFunc("/logout", app.requireAuth(app.logout))

	// Admin-only routes
	mux.HandleFunc("/new-post", app.requireAdmin(app.newPost))
	mux.HandleFunc("/edit-post/", app.requireAdmin(app.editPost))
	mux.HandleFunc("/delete/", app.requireAdmin(app.deletePost))
	mux.HandleFunc("/delete-comment/", app.requireAdmin(app.deleteComment))
	mux.HandleFunc("/admin/messages", app.requireAdmin(app.adminMessages))

	mux.HandleFunc("/post/", app.handlePostRoutes)

	return mux
}

// handlePostRoutes dispatches the dynamic /post/ paths.
func (app *app) handlePostRoutes(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	// /post/{id}
	if viewPostPattern.MatchString(path) {
		app.viewPost(w, r)
		return
	}

	// /post/{id}/comment
	if addCommentPattern.MatchString(path) {
		app.requireAuth(app.addComment)(w, r)
		return
	}

	app.NotFound(w)
}
