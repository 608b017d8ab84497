package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	"github.com/kevmogita/duka-pos/internal/domain/enum"
	"github.com/kevmogita/duka-pos/internal/domain/repository"
	"github.com/kevmogita/duka-pos/pkg/apperror"
	"github.com/kevmogita/duka-pos/pkg/utils"
)

// UserService handles user account management
type UserService struct {
	userRepo repository.UserRepository
	saleRepo repository.SaleRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, saleRepo repository.SaleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		saleRepo: saleRepo,
	}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Username string
	FullName string
	Password string
	Role     string
}

// CreateUser creates a new store account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	role := enum.Role(input.Role)
	if !role.Valid() {
		return nil, apperror.NewBadRequestError("Invalid role: " + input.Role)
	}

	if len(input.Password) < 6 {
		return nil, apperror.NewBadRequestError("Password must be at least 6 characters")
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: input.Username,
		FullName: input.FullName,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput represents the update user input. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	FullName *string
	Password *string
	Role     *string
	IsActive *bool
}

// UpdateUser updates a store account
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			return nil, apperror.NewBadRequestError("Password must be at least 6 characters")
		}
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if input.Role != nil {
		role := enum.Role(*input.Role)
		if !role.Valid() {
			return nil, apperror.NewBadRequestError("Invalid role: " + *input.Role)
		}
		user.Role = role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a store account. Users cannot delete themselves.
// Accounts that have recorded sales are deactivated instead of deleted so
// the ledger's clerk attribution keeps resolving.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return apperror.NewBadRequestError("Cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	sales, err := s.saleRepo.CountByClerk(ctx, id)
	if err != nil {
		return err
	}
	if sales > 0 {
		user.IsActive = false
		return s.userRepo.Update(ctx, user)
	}

	return s.userRepo.Delete(ctx, id)
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers lists all store accounts
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.List(ctx)
}
