package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/hotel-management-backend/config"
	"github.com/sharath018/hotel-management-backend/internal/auth"
)

type stubAuthService struct {
	user auth.User
	err  error
}

func (s *stubAuthService) Register(auth.RegisterInput) error { return nil }
func (s *stubAuthService) Login(auth.LoginInput) (*auth.TokenPair, *auth.User, error) {
	return nil, nil, nil
}
func (s *stubAuthService) Refresh(string) (string, error)          { return "", nil }
func (s *stubAuthService) GetUserByID(uint) (auth.User, error)     { return s.user, s.err }
func (s *stubAuthService) RequestPasswordReset(string) error       { return nil }
func (s *stubAuthService) ResetPassword(string, string) error      { return nil }
func (s *stubAuthService) Logout() error                           { return nil }

func signedToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(userID),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runOptionalAuth(t *testing.T, cfg *config.Config, svc auth.Service, authHeader string) (AccessContext, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/rooms", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	OptionalAuthMiddleware(cfg, svc)(c)
	require.False(t, c.IsAborted())
	return GetAccessContext(c)
}

func TestOptionalAuthAnonymousPassesThrough(t *testing.T) {
	cfg := &config.Config{JWTAccessSecret: "secret"}

	_, ok := runOptionalAuth(t, cfg, &stubAuthService{}, "")
	assert.False(t, ok)
}

func TestOptionalAuthBadTokenPassesThroughAnonymously(t *testing.T) {
	cfg := &config.Config{JWTAccessSecret: "secret"}

	_, ok := runOptionalAuth(t, cfg, &stubAuthService{}, "Bearer not-a-token")
	assert.False(t, ok)
}

func TestOptionalAuthValidStaffTokenSetsContext(t *testing.T) {
	cfg := &config.Config{JWTAccessSecret: "secret"}
	svc := &stubAuthService{user: auth.User{
		ID:    7,
		Email: "manager@hotel.test",
		Role:  auth.UserRole{RoleName: RoleManager},
	}}

	accessCtx, ok := runOptionalAuth(t, cfg, svc, "Bearer "+signedToken(t, "secret", 7))
	require.True(t, ok)
	assert.Equal(t, uint(7), accessCtx.UserID)
	assert.True(t, accessCtx.IsStaff())
}
