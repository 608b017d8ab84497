package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/application/service"
	"github.com/kevmogita/duka-pos/internal/domain/entity"
	"github.com/kevmogita/duka-pos/internal/domain/enum"
	"github.com/kevmogita/duka-pos/pkg/apperror"
	"github.com/kevmogita/duka-pos/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== TEST HELPERS =====

func newTestUser(t *testing.T, username, password string, role enum.Role) *entity.User {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{
		ID:       uuid.New(),
		Username: username,
		FullName: "Test " + username,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
}

func newAuthService(users ...*entity.User) (*service.AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo(users...)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	return service.NewAuthService(repo, jwtManager), repo
}

// ===== LOGIN =====

func TestLogin(t *testing.T) {
	// GIVEN: an active clerk account
	clerk := newTestUser(t, "clerk1", "clerk123", enum.RoleClerk)
	svc, _ := newAuthService(clerk)

	// WHEN: the clerk logs in with the right password
	out, err := svc.Login(context.Background(), &service.LoginInput{
		Username: "clerk1",
		Password: "clerk123",
	})

	// THEN: a token is issued whose claims identify the account
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, clerk.ID, out.User.ID)

	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	claims, err := jwtManager.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, clerk.ID, claims.UserID)
	assert.Equal(t, "clerk1", claims.Username)
	assert.Equal(t, "clerk", claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	clerk := newTestUser(t, "clerk1", "clerk123", enum.RoleClerk)
	svc, _ := newAuthService(clerk)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "clerk1", password: "wrong"},
		{name: "unknown user", username: "ghost", password: "clerk123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN: login runs with bad credentials
			out, err := svc.Login(context.Background(), &service.LoginInput{
				Username: tt.username,
				Password: tt.password,
			})

			// THEN: the same invalid-credentials error comes back either way,
			// so callers cannot tell which usernames exist
			assert.Nil(t, out)
			assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
		})
	}
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	// GIVEN: a deactivated account with a valid password
	former := newTestUser(t, "former", "former123", enum.RoleEmployee)
	former.IsActive = false
	svc, _ := newAuthService(former)

	// WHEN: the account tries to log in
	out, err := svc.Login(context.Background(), &service.LoginInput{
		Username: "former",
		Password: "former123",
	})

	// THEN: login is forbidden
	assert.Nil(t, out)
	require.Error(t, err)
	assert.Equal(t, 403, apperror.GetAppError(err).Code)
}

func TestGetCurrentUser(t *testing.T) {
	manager := newTestUser(t, "manager", "manager123", enum.RoleManager)
	svc, _ := newAuthService(manager)

	// WHEN: the authenticated user is fetched
	user, err := svc.GetCurrentUser(context.Background(), manager.ID)

	// THEN: the account comes back
	require.NoError(t, err)
	assert.Equal(t, "manager", user.Username)

	// WHEN: the token references a deleted account
	_, err = svc.GetCurrentUser(context.Background(), uuid.New())

	// THEN: it is a not-found error
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

// ===== ACCOUNT MANAGEMENT =====

func TestCreateUserValidation(t *testing.T) {
	existing := newTestUser(t, "clerk1", "clerk123", enum.RoleClerk)
	svc := service.NewUserService(newFakeUserRepo(existing), newFakeSaleRepo())

	tests := []struct {
		name     string
		input    service.CreateUserInput
		wantMsg  string
		wantCode int
	}{
		{
			name:     "invalid role",
			input:    service.CreateUserInput{Username: "new1", FullName: "New One", Password: "secret1", Role: "admin"},
			wantMsg:  "Invalid role",
			wantCode: 400,
		},
		{
			name:     "short password",
			input:    service.CreateUserInput{Username: "new2", FullName: "New Two", Password: "abc", Role: "clerk"},
			wantMsg:  "at least 6 characters",
			wantCode: 400,
		},
		{
			name:     "duplicate username",
			input:    service.CreateUserInput{Username: "clerk1", FullName: "Imposter", Password: "secret1", Role: "clerk"},
			wantMsg:  "already taken",
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.CreateUser(context.Background(), &tt.input)

			require.Nil(t, user)
			require.Error(t, err)
			appErr := apperror.GetAppError(err)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Contains(t, appErr.Message, tt.wantMsg)
		})
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewUserService(repo, newFakeSaleRepo())

	// WHEN: an account is created
	user, err := svc.CreateUser(context.Background(), &service.CreateUserInput{
		Username: "clerk3",
		FullName: "Third Clerk",
		Password: "clerk123",
		Role:     "clerk",
	})

	// THEN: the stored password is a hash that verifies, never the plaintext
	require.NoError(t, err)
	assert.NotEqual(t, "clerk123", user.Password)
	assert.True(t, utils.CheckPassword("clerk123", user.Password))
}

func TestDeleteUserRefusesSelfDelete(t *testing.T) {
	manager := newTestUser(t, "manager", "manager123", enum.RoleManager)
	clerk := newTestUser(t, "clerk1", "clerk123", enum.RoleClerk)
	repo := newFakeUserRepo(manager, clerk)
	svc := service.NewUserService(repo, newFakeSaleRepo())

	// WHEN: the manager deletes their own account
	err := svc.DeleteUser(context.Background(), manager.ID, manager.ID)

	// THEN: the delete is refused
	require.Error(t, err)
	assert.Contains(t, apperror.GetAppError(err).Message, "own account")

	// WHEN: the manager deletes another account
	err = svc.DeleteUser(context.Background(), manager.ID, clerk.ID)

	// THEN: the account is gone
	require.NoError(t, err)
	gone, err := repo.GetByID(context.Background(), clerk.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestDeleteUserWithSalesAttributionDeactivates(t *testing.T) {
	// GIVEN: a clerk who has recorded a sale
	manager := newTestUser(t, "manager", "manager123", enum.RoleManager)
	clerk := newTestUser(t, "clerk1", "clerk123", enum.RoleClerk)
	userRepo := newFakeUserRepo(manager, clerk)
	saleRepo := newFakeSaleRepo()
	rice := newTestItem("GRC001", "Basmati Rice", 12000, 9000, 50)
	require.NoError(t, saleRepo.Create(context.Background(), &entity.Sale{
		TransactionNumber: "TXN20260314103000001",
		ClerkID:           clerk.ID,
		ClerkName:         clerk.FullName,
		SaleDate:          time.Now(),
		Items: []entity.SaleLineItem{{
			ItemID: rice.ID, ItemCode: rice.Code, ItemName: rice.Name,
			Quantity: 1, UnitPrice: rice.UnitPrice, CostPrice: rice.CostPrice,
			TotalPrice: rice.UnitPrice, Profit: rice.UnitPrice - rice.CostPrice,
		}},
	}))
	svc := service.NewUserService(userRepo, saleRepo)

	// WHEN: the manager deletes the clerk
	err := svc.DeleteUser(context.Background(), manager.ID, clerk.ID)

	// THEN: the account is deactivated, not removed, so the ledger's clerk
	// reference still resolves
	require.NoError(t, err)
	kept, err := userRepo.GetByID(context.Background(), clerk.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.False(t, kept.IsActive)
}
