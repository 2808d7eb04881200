package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockAuthUC struct {
	mock.Mock
}

func (m *MockAuthUC) Register(ctx context.Context, username, email, password string, role domain.Role) error {
	return m.Called(ctx, username, email, password, role).Error(0)
}
func (m *MockAuthUC) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
func (m *MockAuthUC) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}
func (m *MockAuthUC) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockAuthUC) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}
func (m *MockAuthUC) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

const testSecret = "test-secret"

func authTestRouter(authUC domain.AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Init()

	cfg := &config.Config{JWTSecret: testSecret}
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.AuthMiddleware(cfg, authUC))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(domain.KeyUserID)))
	})
	return r
}

func doAuthRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleJobSeeker}
	token, err := auth.GenerateToken(testSecret, user.ID.Hex(), time.Hour)
	assert.NoError(t, err)

	t.Run("Should reject a missing header", func(t *testing.T) {
		w := doAuthRequest(authTestRouter(new(MockAuthUC)), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should reject a token signed with a different secret", func(t *testing.T) {
		forged, _ := auth.GenerateToken("other-secret", user.ID.Hex(), time.Hour)
		w := doAuthRequest(authTestRouter(new(MockAuthUC)), forged)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should reject a valid token whose user no longer exists", func(t *testing.T) {
		authUC := new(MockAuthUC)
		authUC.On("GetCurrentUser", mock.Anything, user.ID.Hex()).
			Return(nil, apperror.NotFound("User not found"))

		w := doAuthRequest(authTestRouter(authUC), token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should surface a store failure as 500, not an invalid session", func(t *testing.T) {
		authUC := new(MockAuthUC)
		authUC.On("GetCurrentUser", mock.Anything, user.ID.Hex()).
			Return(nil, apperror.Internal(errors.New("connection refused")))

		w := doAuthRequest(authTestRouter(authUC), token)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "User not found")
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("Should set the storage-derived identity in the context", func(t *testing.T) {
		authUC := new(MockAuthUC)
		authUC.On("GetCurrentUser", mock.Anything, user.ID.Hex()).Return(user, nil)

		w := doAuthRequest(authTestRouter(authUC), token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user.ID.Hex(), w.Body.String())
	})
}
