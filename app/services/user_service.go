package services

import (
	"errors"
	"fmt"

	"inkwell/app/models"
	"inkwell/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUnknownEmail is returned when logging in with an email that has no
	// account.
	ErrUnknownEmail = errors.New("email does not exist")
	// ErrWrongPassword is returned when the password does not match the
	// stored hash.
	ErrWrongPassword = errors.New("password incorrect")
)

// HashPassword returns a salted one-way hash of plaintext. Each call draws a
// fresh salt, so two hashes of the same password differ.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext reproduces hash. A malformed hash
// is a mismatch, never an error.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// UserService handles registration and credential checks
type UserService struct {
	users repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates a new account. The email must not already be registered;
// the password is stored only as a salted hash.
func (s *UserService) Register(name, email, password string) (*models.User, error) {
	_, err := s.users.GetByEmail(email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate looks up the account by email and verifies the password.
// The two failure cases stay distinct so the login page can show which one
// occurred.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, err
	}

	if !CheckPassword(user.Password, password) {
		return nil, ErrWrongPassword
	}
	return user, nil
}

// GetByID fetches a user by id.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.users.GetByID(id)
}
