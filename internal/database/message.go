package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khaledAlzeer/BlogWithUsers/internal/models"
)

var (
	ErrEmptyMessageName    = errors.New("name cannot be empty")
	ErrEmptyMessageEmail   = errors.New("email cannot be empty")
	ErrInvalidMessageEmail = errors.New("email address is not valid")
	ErrEmptyMessageBody    = errors.New("message cannot be empty")
	ErrLongMessageBody     = errors.New("message must not exceed 5000 characters")
	ErrMessageCreateFailed = errors.New("failed to save message")
)

type MessageService struct {
	db *Database
}

func NewMessageService(db *Database) *MessageService {
	return &MessageService{db: db}
}

// CreateMessage stores a contact-form submission. No account required,
// phone is optional.
func (ms *MessageService) CreateMessage(name, email, phone, body string) (*models.Message, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	body = strings.TrimSpace(body)

	if err := ms.validateMessageData(name, email, body); err != nil {
		return nil, err
	}

	message := models.Message{
		Name:  name,
		Email: email,
		Phone: phone,
		Body:  body,
	}
	if err := ms.db.Conn.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMessageCreateFailed, err)
	}

	return &message, nil
}

// GetAllMessages returns every contact message, newest first. Admin inbox only.
func (ms *MessageService) GetAllMessages() ([]*models.Message, error) {
	var messages []*models.Message

	err := ms.db.Conn.Order("created DESC").Find(&messages).Error
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (ms *MessageService) GetMessagesCount() (int64, error) {
	var count int64
	err := ms.db.Conn.Model(&models.Message{}).Count(&count).Error
	return count, err
}

func (ms *MessageService) validateMessageData(name, email, body string) error {
	if len(name) == 0 {
		return ErrEmptyMessageName
	}
	if len(email) == 0 {
		return ErrEmptyMessageEmail
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidMessageEmail
	}
	if len(body) == 0 {
		return ErrEmptyMessageBody
	}
	if len(body) > 5000 {
		return ErrLongMessageBody
	}
	return nil
}
