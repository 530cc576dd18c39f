package web

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/khaledAlzeer/BlogWithUsers/internal/config"
	"github.com/khaledAlzeer/BlogWithUsers/internal/database"
	"github.com/khaledAlzeer/BlogWithUsers/internal/models"
)

const testCSRFToken = "11111111-1111-1111-1111-111111111111"

func newTestApp(t *testing.T) *app {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := database.NewDatabase(dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Server.Addr = ":0"
	cfg.UI.HTMLDir = "../ui/html"
	cfg.UI.StaticDir = "../ui/static"
	cfg.Auth.AdminUserID = 1
	cfg.Auth.SessionTTLHours = 24

	discard := log.New(io.Discard, "", 0)

	return &app{
		infoLog:        discard,
		errorLog:       discard,
		cfg:            cfg,
		HTMLDir:        cfg.UI.HTMLDir,
		StaticDir:      cfg.UI.StaticDir,
		Database:       db,
		UserService:    database.NewUserService(db),
		SessionService: database.NewSessionService(db, 24*time.Hour),
		PostService:    database.NewPostService(db),
		CommentService: database.NewCommentService(db),
		MessageService: database.NewMessageService(db),
	}
}

// registerUser creates an account straight through the service layer. The
// first one registered becomes the admin (ID 1).
func registerUser(t *testing.T, app *app, name, email string) *models.User {
	t.Helper()

	user, err := app.UserService.CreateUser(name, email, "password123")
	if err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	return user
}

func sessionCookie(t *testing.T, app *app, userID int) *http.Cookie {
	t.Helper()

	session, err := app.SessionService.CreateSession(userID)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return &http.Cookie{Name: SessionCookieName, Value: session.Token}
}

func get(t *testing.T, app *app, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)
	return rr
}

// postForm submits a form with a matching CSRF cookie and hidden field.
func postForm(t *testing.T, app *app, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	form.Set(CSRFFieldName, testCSRFToken)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: testCSRFToken})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)
	return rr
}

func TestAnonymousCannotComment(t *testing.T) {
	app := newTestApp(t)
	admin := registerUser(t, app, "Admin", "admin@example.com")

	post, err := app.PostService.CreatePost("A Post", "Sub", "Body", "https://img.example/1.jpg", "", admin.ID)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	rr := postForm(t, app, "/post/1/comment", url.Values{"text": {"sneaky comment"}})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected %d, got %d", http.StatusSeeOther, rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}

	count, err := app.CommentService.GetCommentsCount(post.ID)
	if err != nil {
		t.Fatalf("GetCommentsCount: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no comments, got %d", count)
	}
}

func TestLoggedInUserCanComment(t *testing.T) {
	app := newTestApp(t)
	admin := registerUser(t, app, "Admin", "admin@example.com")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	post, err := app.PostService.CreatePost("A Post", "Sub", "Body", "https://img.example/1.jpg", "", admin.ID)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	cookie := sessionCookie(t, app, reader.ID)
	rr := postForm(t, app, "/post/1/comment", url.Values{"text": {"great read"}}, cookie)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected %d, got %d: %s", http.StatusSeeOther, rr.Code, rr.Body.String())
	}

	count, err := app.CommentService.GetCommentsCount(post.ID)
	if err != nil {
		t.Fatalf("GetCommentsCount: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 comment, got %d", count)
	}
}

func TestNonAdminCannotManagePosts(t *testing.T) {
	app := newTestApp(t)
	admin := registerUser(t, app, "Admin", "admin@example.com")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	post, err := app.PostService.CreatePost("A Post", "Sub", "Body", "https://img.example/1.jpg", "", admin.ID)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	cookie := sessionCookie(t, app, reader.ID)

	for _, path := range []string{"/new-post", "/edit-post/1"} {
		if rr := get(t, app, path, cookie); rr.Code != http.StatusForbidden {
			t.Errorf("GET %s as non-admin: expected 403, got %d", path, rr.Code)
		}
	}

	rr := postForm(t, app, "/delete/1", url.Values{}, cookie)
	if rr.Code != http.StatusForbidden {
		t.Errorf("POST /delete/1 as non-admin: expected 403, got %d", rr.Code)
	}

	if _, err := app.PostService.GetPost(post.ID); err != nil {
		t.Errorf("post should have survived: %v", err)
	}

	// Anonymous visitors are sent to the login page instead.
	if rr := get(t, app, "/new-post"); rr.Code != http.StatusSeeOther {
		t.Errorf("GET /new-post anonymously: expected redirect, got %d", rr.Code)
	}
}

func TestAdminCanCreatePost(t *testing.T) {
	app := newTestApp(t)
	admin := registerUser(t, app, "Admin", "admin@example.com")
	cookie := sessionCookie(t, app, admin.ID)

	form := url.Values{
		"title":    {"Shipping Day"},
		"subtitle": {"Notes from the release"},
		"body":     {"It went fine."},
		"img_url":  {"https://img.example/ship.jpg"},
		// project_url deliberately omitted
	}
	rr := postForm(t, app, "/new-post", form, cookie)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected %d, got %d: %s", http.StatusSeeOther, rr.Code, rr.Body.String())
	}

	posts, err := app.PostService.GetAllPosts(10, 0)
	if err != nil {
		t.Fatalf("GetAllPosts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].ProjectURL != "" {
		t.Errorf("expected empty project URL, got %q", posts[0].ProjectURL)
	}
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "Alice", "alice@example.com")

	form := url.Values{
		"name":     {"Alice Again"},
		"email":    {"alice@example.com"},
		"password": {"password456"},
		"confirm":  {"password456"},
	}
	rr := postForm(t, app, "/register", form)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected %d, got %d", http.StatusSeeOther, rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}

	var count int64
	app.Database.Conn.Table("users").Count(&count)
	if count != 1 {
		t.Errorf("expected 1 user row, got %d", count)
	}
}

func TestContactFormCreatesOneMessage(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"message": {"Love the blog."},
	}
	// No session cookie: the contact form works for anonymous visitors.
	rr := postForm(t, app, "/contact", form)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected %d, got %d: %s", http.StatusSeeOther, rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/contact" {
		t.Errorf("expected redirect to /contact, got %q", loc)
	}

	count, err := app.MessageService.GetMessagesCount()
	if err != nil {
		t.Fatalf("GetMessagesCount: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 message row, got %d", count)
	}
}

func TestPostWithoutCSRFRejected(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"message": {"No token here."},
	}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rr.Code)
	}

	count, err := app.MessageService.GetMessagesCount()
	if err != nil {
		t.Fatalf("GetMessagesCount: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no message rows, got %d", count)
	}
}

func TestViewMissingPost(t *testing.T) {
	app := newTestApp(t)

	if rr := get(t, app, "/post/999"); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
	if rr := get(t, app, "/post/not-a-number"); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for junk id, got %d", rr.Code)
	}
}

func TestAdminCanDeleteComment(t *testing.T) {
	app := newTestApp(t)
	admin := registerUser(t, app, "Admin", "admin@example.com")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	post, err := app.PostService.CreatePost("A Post", "Sub", "Body", "https://img.example/1.jpg", "", admin.ID)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	comment, err := app.CommentService.CreateComment("remove me", post.ID, reader.ID)
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	cookie := sessionCookie(t, app, admin.ID)
	rr := postForm(t, app, "/delete-comment/1", url.Values{}, cookie)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected %d, got %d", http.StatusSeeOther, rr.Code)
	}

	if _, err := app.CommentService.GetComment(comment.ID); err == nil {
		t.Error("comment should have been deleted")
	}
}

func TestHomePageRenders(t *testing.T) {
	app := newTestApp(t)
	admin := registerUser(t, app, "Admin", "admin@example.com")

	if _, err := app.PostService.CreatePost("Hello World", "Sub", "Body", "https://img.example/1.jpg", "", admin.ID); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	rr := get(t, app, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Hello World") {
		t.Error("expected the post title on the home page")
	}
}

func TestHomePagePaginatesAllPosts(t *testing.T) {
	app := newTestApp(t)
	admin := registerUser(t, app, "Admin", "admin@example.com")

	for i := 1; i <= 21; i++ {
		title := fmt.Sprintf("Post Number %02d", i)
		img := fmt.Sprintf("https://img.example/%d.jpg", i)
		if _, err := app.PostService.CreatePost(title, "Sub", "Body", img, "", admin.ID); err != nil {
			t.Fatalf("CreatePost %q: %v", title, err)
		}
	}

	rr := get(t, app, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Post Number 21") {
		t.Error("expected the newest post on the first page")
	}
	if strings.Contains(body, "Post Number 01") {
		t.Error("did not expect the oldest post on the first page")
	}
	if !strings.Contains(body, "/?page=2") {
		t.Error("expected a link to the next page")
	}

	rr = get(t, app, "/?page=3")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on page 3, got %d", rr.Code)
	}
	body = rr.Body.String()
	if !strings.Contains(body, "Post Number 01") {
		t.Error("expected the oldest post on the last page")
	}
	if !strings.Contains(body, "/?page=2") {
		t.Error("expected a link back to the previous page")
	}

	// An out-of-range page clamps to the last one instead of going blank.
	rr = get(t, app, "/?page=99")
	if !strings.Contains(rr.Body.String(), "Post Number 01") {
		t.Error("expected an out-of-range page to clamp to the last page")
	}
}

func TestViewPostRendersComments(t *testing.T) {
	app := newTestApp(t)
	admin := registerUser(t, app, "Admin", "admin@example.com")
	reader := registerUser(t, app, "Reader", "reader@example.com")

	post, err := app.PostService.CreatePost("A Post", "Sub", "Body", "https://img.example/1.jpg", "", admin.ID)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if _, err := app.CommentService.CreateComment("insightful remark", post.ID, reader.ID); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	rr := get(t, app, "/post/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, "insightful remark") {
		t.Error("expected the comment text on the post page")
	}
	if !strings.Contains(body, "gravatar.com/avatar") {
		t.Error("expected a gravatar avatar next to the comment")
	}
}

func TestGuestOnlyRoutesRedirectLoggedInUsers(t *testing.T) {
	app := newTestApp(t)
	user := registerUser(t, app, "Alice", "alice@example.com")
	cookie := sessionCookie(t, app, user.ID)

	for _, path := range []string{"/register", "/login"} {
		rr := get(t, app, path, cookie)
		if rr.Code != http.StatusSeeOther {
			t.Errorf("GET %s logged in: expected redirect, got %d", path, rr.Code)
		}
	}
}
