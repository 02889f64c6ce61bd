package services_test

import (
	"fmt"
	"testing"
	"time"

	"kino/internal/models"
	"kino/internal/repositories"
	"kino/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Successful registration stores a hashed password, never the raw one
	var created *models.User
	mockRepo.On("GetByEmail", "a@b.com").Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
	}).Return(nil).Once()

	err := authService.Register("a@b.com", "pw")
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "a@b.com", created.Email)
	assert.NotEqual(t, "pw", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("pw")))
	assert.False(t, created.IsAdmin)
	mockRepo.AssertExpectations(t)

	// Registering the same email twice yields a conflict, never a second record
	mockRepo.On("GetByEmail", "a@b.com").Return(&models.User{ID: "1", Email: "a@b.com"}, nil).Once()
	err = authService.Register("a@b.com", "pw")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		IsAdmin:  true,
	}

	// Successful login issues a token carrying id and admin flag
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.Login(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte("test_jwt_secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, true, claims["isAdmin"])
	mockRepo.AssertExpectations(t)

	// Malformed email is rejected before any lookup
	_, err = authService.Login("not-an-email", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidEmail)
	mockRepo.AssertNotCalled(t, "GetByEmail", "not-an-email")

	// Unknown email and wrong password are distinct error kinds
	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	_, err = authService.Login("ghost@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrEmailNotFound)
	assert.NotErrorIs(t, err, services.ErrWrongPassword)

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.Login(user.Email, "wrongpassword")
	assert.ErrorIs(t, err, services.ErrWrongPassword)
	assert.NotErrorIs(t, err, services.ErrEmailNotFound)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      "user-123",
		"isAdmin": false,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte("test_jwt_secret"))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["id"])
	assert.Equal(t, false, claims["isAdmin"])

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Token signed with a different secret
	otherSecret, _ := token.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(otherSecret)
	assert.Error(t, err)

	// Expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte("test_jwt_secret"))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
}
