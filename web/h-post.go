package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/khaledAlzeer/BlogWithUsers/internal/database"
)

// viewPost shows a single post with its comments and the comment form.
func (app *app) viewPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.MethodNotAllowed(w, []string{"GET"})
		return
	}

	id, ok := pathID(r.URL.Path, "/post/", "")
	if !ok {
		app.NotFound(w)
		return
	}

	post, err := app.PostService.GetPost(id)
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	comments, err := app.CommentService.GetPostComments(id)
	if err != nil {
		app.ServerError(w, err)
		return
	}

	data := &HTMLData{
		Title:    post.Title,
		Post:     post,
		Comments: comments,
	}

	app.RenderHTML(w, r, "view-post.page.html", data)
}

// addComment handles POST /post/{id}/comment. Login is enforced by the
// route middleware.
func (app *app) addComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, []string{"POST"})
		return
	}

	if !app.validCSRF(r) {
		app.BadRequest(w)
		return
	}

	id, ok := pathID(r.URL.Path, "/post/", "/comment")
	if !ok {
		app.NotFound(w)
		return
	}

	user := app.getCurrentUser(r)
	text := r.PostFormValue("text")

	comment, err := app.CommentService.CreateComment(text, id, user.ID)
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			app.NotFound(w)
			return
		}

		// Validation failure: re-render the post page with the error inline.
		post, getErr := app.PostService.GetPost(id)
		if getErr != nil {
			app.ServerError(w, getErr)
			return
		}
		comments, getErr := app.CommentService.GetPostComments(id)
		if getErr != nil {
			app.ServerError(w, getErr)
			return
		}
		app.RenderHTML(w, r, "view-post.page.html", &HTMLData{
			Title:     post.Title,
			Post:      post,
			Comments:  comments,
			FormError: err.Error(),
			FormData:  map[string]string{"text": text},
		})
		return
	}

	app.infoLog.Printf("Comment created: ID=%d, Post=%d, Author=%q", comment.ID, id, user.Name)

	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
}

// newPost lets the admin author a post.
func (app *app) newPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.RenderHTML(w, r, "make-post.page.html", &HTMLData{Title: "New Post"})
		return
	}

	if !app.validCSRF(r) {
		app.BadRequest(w)
		return
	}

	title := r.PostFormValue("title")
	subtitle := r.PostFormValue("subtitle")
	body := r.PostFormValue("body")
	imgURL := r.PostFormValue("img_url")
	projectURL := r.PostFormValue("project_url")
	user := app.getCurrentUser(r)

	formData := map[string]string{
		"title":       title,
		"subtitle":    subtitle,
		"body":        body,
		"img_url":     imgURL,
		"project_url": projectURL,
	}

	fe := formErrors{}
	fe.required("title", title)
	fe.maxLength("title", title, 250)
	fe.required("subtitle", subtitle)
	fe.required("body", body)
	fe.required("img_url", imgURL)
	if !fe.valid() {
		app.RenderHTML(w, r, "make-post.page.html", &HTMLData{
			Title:      "New Post",
			FormErrors: fe,
			FormData:   formData,
		})
		return
	}

	post, err := app.PostService.CreatePost(title, subtitle, body, imgURL, projectURL, user.ID)
	if err != nil {
		app.RenderHTML(w, r, "make-post.page.html", &HTMLData{
			Title:     "New Post",
			FormError: err.Error(),
			FormData:  formData,
		})
		return
	}

	app.infoLog.Printf("Post created: ID=%d, Title=%q, Author=%q", post.ID, post.Title, user.Name)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// editPost lets the admin rework an existing post.
func (app *app) editPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/edit-post/", "")
	if !ok {
		app.NotFound(w)
		return
	}

	post, err := app.PostService.GetPost(id)
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	if r.Method != http.MethodPost {
		app.RenderHTML(w, r, "make-post.page.html", &HTMLData{
			Title:  "Edit Post",
			IsEdit: true,
			Post:   post,
			FormData: map[string]string{
				"title":       post.Title,
				"subtitle":    post.Subtitle,
				"body":        post.Body,
				"img_url":     post.ImgURL,
				"project_url": post.ProjectURL,
			},
		})
		return
	}

	if !app.validCSRF(r) {
		app.BadRequest(w)
		return
	}

	title := r.PostFormValue("title")
	subtitle := r.PostFormValue("subtitle")
	body := r.PostFormValue("body")
	imgURL := r.PostFormValue("img_url")
	projectURL := r.PostFormValue("project_url")

	formData := map[string]string{
		"title":       title,
		"subtitle":    subtitle,
		"body":        body,
		"img_url":     imgURL,
		"project_url": projectURL,
	}

	err = app.PostService.UpdatePost(id, title, subtitle, body, imgURL, projectURL)
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			app.NotFound(w)
			return
		}
		app.RenderHTML(w, r, "make-post.page.html", &HTMLData{
			Title:     "Edit Post",
			IsEdit:    true,
			Post:      post,
			FormError: err.Error(),
			FormData:  formData,
		})
		return
	}

	app.infoLog.Printf("Post updated: ID=%d, Title=%q", id, title)

	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
}

// deletePost handles POST /delete/{id}. Comments go with the post.
func (app *app) deletePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, []string{"POST"})
		return
	}

	if !app.validCSRF(r) {
		app.BadRequest(w)
		return
	}

	id, ok := pathID(r.URL.Path, "/delete/", "")
	if !ok {
		app.NotFound(w)
		return
	}

	if err := app.PostService.DeletePost(id); err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	app.infoLog.Printf("Post deleted: ID=%d", id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// deleteComment handles POST /delete-comment/{id}.
func (app *app) deleteComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, []string{"POST"})
		return
	}

	if !app.validCSRF(r) {
		app.BadRequest(w)
		return
	}

	id, ok := pathID(r.URL.Path, "/delete-comment/", "")
	if !ok {
		app.NotFound(w)
		return
	}

	comment, err := app.CommentService.GetComment(id)
	if err != nil {
		if errors.Is(err, database.ErrCommentNotFound) {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	if err := app.CommentService.DeleteComment(id); err != nil {
		app.ServerError(w, err)
		return
	}

	app.infoLog.Printf("Comment deleted: ID=%d, Post=%d", id, comment.PostID)
	http.Redirect(w, r, "/post/"+strconv.Itoa(comment.PostID), http.StatusSeeOther)
}
