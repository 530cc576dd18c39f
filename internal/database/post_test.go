package database

import (
	"errors"
	"testing"
	"time"
)

func TestCreatePostWithoutProjectLink(t *testing.T) {
	db := newTestDB(t)
	ps := NewPostService(db)
	userID := createTestUser(t, db, "Admin", "admin@example.com")

	post, err := ps.CreatePost("First Post", "A subtitle", "Some body text", "https://img.example/1.jpg", "", userID)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	got, err := ps.GetPost(post.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.ProjectURL != "" {
		t.Errorf("expected empty project URL, got %q", got.ProjectURL)
	}
	if got.Author.ID != userID {
		t.Errorf("author not preloaded: got ID %d, want %d", got.Author.ID, userID)
	}
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	db := newTestDB(t)
	ps := NewPostService(db)
	userID := createTestUser(t, db, "Admin", "admin@example.com")

	if _, err := ps.CreatePost("Same Title", "One", "Body", "https://img.example/1.jpg", "", userID); err != nil {
		t.Fatalf("first CreatePost: %v", err)
	}

	_, err := ps.CreatePost("Same Title", "Two", "Other body", "https://img.example/2.jpg", "", userID)
	if !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
}

func TestUpdatePostKeepsOwnTitle(t *testing.T) {
	db := newTestDB(t)
	ps := NewPostService(db)
	userID := createTestUser(t, db, "Admin", "admin@example.com")

	post, err := ps.CreatePost("Stable Title", "Sub", "Body", "https://img.example/1.jpg", "", userID)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	// Editing without renaming must not trip the uniqueness check.
	err = ps.UpdatePost(post.ID, "Stable Title", "New sub", "New body", "https://img.example/2.jpg", "https://proj.example")
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	got, err := ps.GetPost(post.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Subtitle != "New sub" || got.ProjectURL != "https://proj.example" {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestDeletePostCascadesComments(t *testing.T) {
	db := newTestDB(t)
	ps := NewPostService(db)
	cs := NewCommentService(db)

	adminID := createTestUser(t, db, "Admin", "admin@example.com")
	readerID := createTestUser(t, db, "Reader", "reader@example.com")

	post, err := ps.CreatePost("Commented Post", "Sub", "Body", "https://img.example/1.jpg", "", adminID)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	for _, text := range []string{"first!", "nice post"} {
		if _, err := cs.CreateComment(text, post.ID, readerID); err != nil {
			t.Fatalf("CreateComment: %v", err)
		}
	}

	if err := ps.DeletePost(post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	if _, err := ps.GetPost(post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound after delete, got %v", err)
	}

	count, err := cs.GetCommentsCount(post.ID)
	if err != nil {
		t.Fatalf("GetCommentsCount: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 comments after post delete, got %d", count)
	}
}

func TestGetAllPostsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ps := NewPostService(db)
	userID := createTestUser(t, db, "Admin", "admin@example.com")

	for _, title := range []string{"Older", "Newer"} {
		if _, err := ps.CreatePost(title, "Sub", "Body", "https://img.example/1.jpg", "", userID); err != nil {
			t.Fatalf("CreatePost %q: %v", title, err)
		}
		time.Sleep(10 * time.Millisecond) // distinct creation timestamps
	}

	posts, err := ps.GetAllPosts(10, 0)
	if err != nil {
		t.Fatalf("GetAllPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID < posts[1].ID {
		t.Errorf("expected newest post first, got order %d, %d", posts[0].ID, posts[1].ID)
	}
}

func TestDeleteMissingPost(t *testing.T) {
	db := newTestDB(t)
	ps := NewPostService(db)

	if err := ps.DeletePost(42); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}
