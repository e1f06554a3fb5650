package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tradefeed/internal/models"
	"tradefeed/internal/repositories"
	"tradefeed/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = "user-123"
		}).
		Return(nil).Once()

	user, token, err := authService.Register(ctx, services.RegisterInput{
		Username:  "testuser",
		Email:     "test@example.com",
		Password:  "password123",
		Firstname: "Test",
		Lastname:  "User",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])
	mockRepo.AssertExpectations(t)

	// Repository failure
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(fmt.Errorf("db down")).Once()
	_, _, err = authService.Register(ctx, services.RegisterInput{Username: "other", Password: "password123"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register user")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)
	ctx := context.Background()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	got, token, err := authService.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Contains(t, claims, "exp")

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	_, _, err = authService.Login(ctx, "test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Test invalid credentials (user not found)
	mockRepo.On("GetByEmail", ctx, "missing@example.com").
		Return(nil, fmt.Errorf("user with email missing@example.com %w", repositories.ErrNotFound)).Once()
	_, _, err = authService.Login(ctx, "missing@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Infrastructure errors are not masked as bad credentials
	mockRepo.On("GetByEmail", ctx, "broken@example.com").Return(nil, fmt.Errorf("connection reset")).Once()
	_, _, err = authService.Login(ctx, "broken@example.com", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret, time.Hour)

	token, err := authService.IssueToken(&models.User{ID: "user-1", Username: "alice"})
	require.NoError(t, err)
	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["username"])

	// Signed with another secret
	other := services.NewAuthService(new(MockUserRepository), "another_secret", time.Hour)
	foreign, err := other.IssueToken(&models.User{ID: "user-1"})
	require.NoError(t, err)
	_, err = authService.ValidateToken(foreign)
	assert.Error(t, err)

	// Expired
	expiring := services.NewAuthService(new(MockUserRepository), testJWTSecret, -time.Minute)
	expired, err := expiring.IssueToken(&models.User{ID: "user-1"})
	require.NoError(t, err)
	_, err = authService.ValidateToken(expired)
	assert.Error(t, err)

	_, err = authService.ValidateToken("not-a-token")
	assert.Error(t, err)
}
