package database

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/khaledAlzeer/BlogWithUsers/internal/models"
)

var (
	ErrEmailExists        = errors.New("an account with that email already exists")
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrLongName           = errors.New("name must not exceed 100 characters")
	ErrEmptyEmail         = errors.New("email cannot be empty")
	ErrLongEmail          = errors.New("email must not exceed 100 characters")
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrShortPassword      = errors.New("password must be at least 6 characters")
	ErrLongPassword       = errors.New("password must not exceed 128 characters")
	ErrPasswordHashFailed = errors.New("failed to hash password")
	ErrUserCreateFailed   = errors.New("failed to create user")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailNotFound      = errors.New("no account with that email")
	ErrIncorrectPassword  = errors.New("incorrect password")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type UserService struct {
	db *Database
}

func NewUserService(db *Database) *UserService {
	return &UserService{db: db}
}

// CreateUser validates the registration data, rejects duplicate emails,
// hashes the password and inserts the row.
func (us *UserService) CreateUser(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := us.validateUserData(name, email, password); err != nil {
		return nil, err
	}

	if err := us.checkEmailUniqueness(email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordHashFailed, err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
	}
	if err := us.db.Conn.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserCreateFailed, err)
	}

	return &user, nil
}

// VerifyUser checks login credentials and returns the matching user.
func (us *UserService) VerifyUser(email, password string) (*models.User, error) {
	var user models.User

	err := us.db.Conn.Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	return &user, nil
}

func (us *UserService) checkEmailUniqueness(email string) error {
	var count int64
	err := us.db.Conn.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check email uniqueness: %v", err)
	}
	if count > 0 {
		return ErrEmailExists
	}
	return nil
}

func (us *UserService) validateUserData(name, email, password string) error {
	if err := us.validateName(name); err != nil {
		return err
	}
	if err := us.validateEmail(email); err != nil {
		return err
	}
	if err := us.validatePassword(password); err != nil {
		return err
	}
	return nil
}

func (us *UserService) validateName(name string) error {
	if len(name) == 0 {
		return ErrEmptyName
	}
	if len(name) > 100 {
		return ErrLongName
	}
	return nil
}

func (us *UserService) validateEmail(email string) error {
	if len(email) == 0 {
		return ErrEmptyEmail
	}
	if len(email) > 100 {
		return ErrLongEmail
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func (us *UserService) validatePassword(password string) error {
	if len(password) < 6 {
		return ErrShortPassword
	}
	if len(password) > 128 {
		return ErrLongPassword
	}
	return nil
}
