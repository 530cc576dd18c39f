package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/khaledAlzeer/BlogWithUsers/internal/models"
)

var (
	ErrCommentNotFound     = errors.New("comment not found")
	ErrEmptyCommentText    = errors.New("comment cannot be empty")
	ErrLongCommentText     = errors.New("comment must not exceed 2000 characters")
	ErrCommentCreateFailed = errors.New("failed to create comment")
	ErrCommentDeleteFailed = errors.New("failed to delete comment")
)

type CommentService struct {
	db *Database
}

func NewCommentService(db *Database) *CommentService {
	return &CommentService{db: db}
}

// CreateComment attaches a comment to an existing post. Comments are
// immutable afterwards.
func (cs *CommentService) CreateComment(text string, postID, authorID int) (*models.Comment, error) {
	text = strings.TrimSpace(text)

	if err := cs.validateCommentText(text); err != nil {
		return nil, err
	}

	// The target post must exist before we hang a comment on it.
	var count int64
	if err := cs.db.Conn.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommentCreateFailed, err)
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	comment := models.Comment{
		Text:     text,
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := cs.db.Conn.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommentCreateFailed, err)
	}

	return &comment, nil
}

// GetComment returns a comment with its author.
func (cs *CommentService) GetComment(id int) (*models.Comment, error) {
	var comment models.Comment

	err := cs.db.Conn.Preload("Author").First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return &comment, nil
}

// GetPostComments returns a post's comments with authors, oldest first.
func (cs *CommentService) GetPostComments(postID int) ([]*models.Comment, error) {
	var comments []*models.Comment

	err := cs.db.Conn.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (cs *CommentService) DeleteComment(id int) error {
	result := cs.db.Conn.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrCommentDeleteFailed, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// GetCommentsCount returns the number of comments on a post.
func (cs *CommentService) GetCommentsCount(postID int) (int64, error) {
	var count int64
	err := cs.db.Conn.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (cs *CommentService) validateCommentText(text string) error {
	if len(text) == 0 {
		return ErrEmptyCommentText
	}
	if len(text) > 2000 {
		return ErrLongCommentText
	}
	return nil
}
