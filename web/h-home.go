package web

import (
	"net/http"
	"strconv"

	"github.com/khaledAlzeer/BlogWithUsers/internal/models"
)

const postsPerPage = 10

func (app *app) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		app.NotFound(w)
		return
	}
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	count, err := app.PostService.GetPostsCount()
	if err != nil {
		app.ServerError(w, err)
		return
	}
	totalPages := int((count + postsPerPage - 1) / postsPerPage)
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	posts, err := app.PostService.GetAllPosts(postsPerPage, (page-1)*postsPerPage)
	if err != nil {
		app.errorLog.Printf("Failed to get posts: %v", err)
		posts = []*models.Post{}
	}

	data := &HTMLData{
		Title:      "Khaled Blog",
		Posts:      posts,
		Page:       page,
		TotalPages: totalPages,
	}
	if page > 1 {
		data.PrevPage = page - 1
	}
	if page < totalPages {
		data.NextPage = page + 1
	}

	app.RenderHTML(w, r, "home.page.html", data)
}

func (app *app) about(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	app.RenderHTML(w, r, "about.page.html", &HTMLData{Title: "About"})
}

func (app *app) howItWorks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	app.RenderHTML(w, r, "how-it-works.page.html", &HTMLData{Title: "How It Works"})
}
