package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/khaledAlzeer/BlogWithUsers/internal/models"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrLongTitle        = errors.New("title must not exceed 250 characters")
	ErrDuplicateTitle   = errors.New("a post with that title already exists")
	ErrEmptySubtitle    = errors.New("subtitle cannot be empty")
	ErrEmptyBody        = errors.New("post body cannot be empty")
	ErrEmptyImgURL      = errors.New("image URL cannot be empty")
	ErrPostCreateFailed = errors.New("failed to create post")
	ErrPostUpdateFailed = errors.New("failed to update post")
	ErrPostDeleteFailed = errors.New("failed to delete post")
)

type PostService struct {
	db *Database
}

func NewPostService(db *Database) *PostService {
	return &PostService{db: db}
}

// CreatePost inserts a new post. The project URL is optional and persists
// as an empty string when absent. Authorization is the caller's job.
func (ps *PostService) CreatePost(title, subtitle, body, imgURL, projectURL string, authorID int) (*models.Post, error) {
	title = strings.TrimSpace(title)
	subtitle = strings.TrimSpace(subtitle)
	body = strings.TrimSpace(body)
	imgURL = strings.TrimSpace(imgURL)
	projectURL = strings.TrimSpace(projectURL)

	if err := ps.validatePostData(title, subtitle, body, imgURL); err != nil {
		return nil, err
	}
	if err := ps.checkTitleUniqueness(title, 0); err != nil {
		return nil, err
	}

	post := models.Post{
		Title:      title,
		Subtitle:   subtitle,
		Body:       body,
		ImgURL:     imgURL,
		ProjectURL: projectURL,
		AuthorID:   authorID,
	}
	if err := ps.db.Conn.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPostCreateFailed, err)
	}

	return &post, nil
}

// GetPost returns a post with its author. Comments are loaded separately
// through the CommentService.
func (ps *PostService) GetPost(id int) (*models.Post, error) {
	var post models.Post

	err := ps.db.Conn.
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return &post, nil
}

// GetAllPosts returns posts with their authors, newest first.
func (ps *PostService) GetAllPosts(limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post

	err := ps.db.Conn.
		Preload("Author").
		Order("created DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// UpdatePost rewrites the editable fields of a post.
func (ps *PostService) UpdatePost(id int, title, subtitle, body, imgURL, projectURL string) error {
	title = strings.TrimSpace(title)
	subtitle = strings.TrimSpace(subtitle)
	body = strings.TrimSpace(body)
	imgURL = strings.TrimSpace(imgURL)
	projectURL = strings.TrimSpace(projectURL)

	if err := ps.validatePostData(title, subtitle, body, imgURL); err != nil {
		return err
	}
	if err := ps.checkTitleUniqueness(title, id); err != nil {
		return err
	}

	result := ps.db.Conn.Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":       title,
		"subtitle":    subtitle,
		"body":        body,
		"img_url":     imgURL,
		"project_url": projectURL,
	})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrPostUpdateFailed, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// DeletePost removes a post and its comments in one transaction.
func (ps *PostService) DeletePost(id int) error {
	return ps.db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPostDeleteFailed, err)
		}

		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrPostDeleteFailed, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}

		return nil
	})
}

func (ps *PostService) GetPostsCount() (int64, error) {
	var count int64
	err := ps.db.Conn.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// checkTitleUniqueness rejects a title already used by another post.
// excludeID lets an edit keep its own title.
func (ps *PostService) checkTitleUniqueness(title string, excludeID int) error {
	var count int64
	err := ps.db.Conn.Model(&models.Post{}).
		Where("title = ? AND id != ?", title, excludeID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check title uniqueness: %v", err)
	}
	if count > 0 {
		return ErrDuplicateTitle
	}
	return nil
}

func (ps *PostService) validatePostData(title, subtitle, body, imgURL string) error {
	if len(title) == 0 {
		return ErrEmptyTitle
	}
	if len(title) > 250 {
		return ErrLongTitle
	}
	if len(subtitle) == 0 {
		return ErrEmptySubtitle
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	if len(imgURL) == 0 {
		return ErrEmptyImgURL
	}
	return nil
}
