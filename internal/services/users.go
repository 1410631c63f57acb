package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Rustaman1280/tefacontoh/internal/models"
	"github.com/Rustaman1280/tefacontoh/internal/types"
	"gorm.io/gorm"
)

// RegisterInput is a new account request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService manages accounts and sign-in.
type UserService struct {
	db   *gorm.DB
	auth *Authenticator
	inv  *invalidator
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and signs a token for it. An empty role
// becomes "user".
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, types.NewValidationError("Email already exists")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	user := &models.User{Name: in.Name, Email: email, Password: hash, Role: role}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, writeError(err, "Email already exists")
	}
	s.inv.stats(ctx)

	return s.result(user)
}

// Login verifies credentials. Unknown email and wrong password fail alike.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewUnauthorizedError("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(user.Password, password) {
		return nil, types.NewUnauthorizedError("Invalid credentials")
	}
	return s.result(&user)
}

func (s *UserService) result(user *models.User) (*AuthResult, error) {
	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Get loads a user by id.
func (s *UserService) Get(ctx context.Context, id models.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err, "User")
	}
	return &user, nil
}

// Authenticate resolves a bearer token to the acting user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.auth.ParseToken(token)
	if err != nil {
		return nil, err
	}
	id, err := models.ParseUUID(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.Get(ctx, id)
	if types.IsNotFound(err) {
		return nil, ErrInvalidToken
	}
	return user, err
}
