package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	"github.com/kevmogita/duka-pos/internal/domain/repository"
	"github.com/kevmogita/duka-pos/pkg/apperror"
	"github.com/kevmogita/duka-pos/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User  *entity.User
	Token string
}

// Login authenticates a user and returns a signed token. Deactivated
// accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPassword(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperror.NewAppError(403, "Account is deactivated")
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.FullName, user.Role.String())
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:  user,
		Token: token,
	}, nil
}

// GetCurrentUser returns the account behind an authenticated request
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}
