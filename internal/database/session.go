package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khaledAlzeer/BlogWithUsers/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionCreation = errors.New("failed to create session")
	ErrSessionDeletion = errors.New("failed to delete session")
)

type SessionService struct {
	db  *Database
	ttl time.Duration
}

func NewSessionService(db *Database, ttl time.Duration) *SessionService {
	return &SessionService{db: db, ttl: ttl}
}

// CreateSession replaces any existing sessions of the user with a fresh one.
func (ss *SessionService) CreateSession(userID int) (*models.Session, error) {
	if err := ss.DeleteUserSessions(userID); err != nil {
		return nil, fmt.Errorf("failed to delete old sessions: %v", err)
	}

	now := time.Now()
	session := models.Session{
		Token:   uuid.NewString(),
		UserID:  userID,
		Expires: now.Add(ss.ttl),
		Created: now,
	}
	if err := ss.db.Conn.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	return &session, nil
}

// GetSession looks up a session by token. Expired sessions are removed on
// the way out.
func (ss *SessionService) GetSession(token string) (*models.Session, error) {
	var session models.Session

	err := ss.db.Conn.Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if time.Now().After(session.Expires) {
		ss.DeleteSession(token)
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// GetUserBySession resolves a session token to its user.
func (ss *SessionService) GetUserBySession(token string) (*models.User, error) {
	session, err := ss.GetSession(token)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = ss.db.Conn.First(&user, session.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Session points at a vanished user, drop it.
			ss.DeleteSession(token)
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (ss *SessionService) DeleteSession(token string) error {
	result := ss.db.Conn.Where("token = ?", token).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrSessionDeletion, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteUserSessions removes every session belonging to the user.
func (ss *SessionService) DeleteUserSessions(userID int) error {
	err := ss.db.Conn.Where("user_id = ?", userID).Delete(&models.Session{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionDeletion, err)
	}
	return nil
}

// CleanupExpiredSessions removes sessions past their expiry.
func (ss *SessionService) CleanupExpiredSessions() error {
	err := ss.db.Conn.Where("expires < ?", time.Now()).Delete(&models.Session{}).Error
	if err != nil {
		return fmt.Errorf("failed to clean up expired sessions: %v", err)
	}
	return nil
}
