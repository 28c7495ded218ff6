package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sharath018/hotel-management-backend/config"
	"github.com/sharath018/hotel-management-backend/utils"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service interface {
	Register(input RegisterInput) error
	Login(input LoginInput) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	GetUserByID(userID uint) (User, error)

	// Password reset methods
	RequestPasswordReset(email string) error
	ResetPassword(token string, newPassword string) error
	Logout() error
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register creates a guest account. Staff accounts are created by admins
// through the user management module.
func (s *service) Register(in RegisterInput) error {
	role, err := s.repo.FindRoleByName("guest")
	if err != nil {
		return errors.New("guest role not configured")
	}

	if _, err := s.repo.FindByEmail(in.Email); err == nil {
		return errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	phone := cleanPhone(in.Phone)

	user := &User{
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Status:       "active",
		Phone:        phone,
	}

	return s.repo.Create(user)
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

func (s *service) Login(in LoginInput) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(in.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.New("couldn't find your account")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, errors.New("invalid credentials")
	}

	if user.Status == "inactive" {
		return nil, nil, errors.New("your account is inactive")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, user, nil
}

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role_id": user.RoleID,
		"role":    user.Role.RoleName,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role_id": user.RoleID,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil || claims["role_id"] == nil {
		return "", errors.New("invalid token claims")
	}

	userID := uint(claims["user_id"].(float64))
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return "", errors.New("user not found")
	}

	return s.generateAccessToken(&user)
}

// =============================
// Forgot Password
// =============================

func (s *service) RequestPasswordReset(email string) error {
	user, err := s.repo.FindByEmail(strings.ToLower(email))
	if err != nil {
		return errors.New("user not found")
	}

	resetToken := generateSecureToken()
	ttl := 15 * time.Minute
	key := fmt.Sprintf("reset_token:%s", resetToken)

	// Store user ID as value
	err = utils.SetToken(key, fmt.Sprint(user.ID), ttl)
	if err != nil {
		return errors.New("could not save reset token")
	}

	if err := utils.SendResetLink(user.Email, resetToken); err != nil {
		return errors.New("failed to send email")
	}

	return nil
}

func (s *service) ResetPassword(token string, newPassword string) error {
	key := fmt.Sprintf("reset_token:%s", token)
	val, err := utils.GetToken(key)
	if err != nil {
		return errors.New("invalid or expired token")
	}

	var userID uint
	if _, err = fmt.Sscan(val, &userID); err != nil {
		return errors.New("invalid token data")
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return errors.New("user not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err = s.repo.Update(&user); err != nil {
		return errors.New("failed to update password")
	}

	_ = utils.DeleteToken(key) // Cleanup token

	return nil
}

// =============================
// Logout
// =============================

func (s *service) Logout() error {
	// JWT is stateless, frontend just clears the token
	return nil
}

// =============================
// Get User By ID
// =============================

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

// =============================
// Helpers
// =============================

func generateSecureToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

var nonDigit = regexp.MustCompile(`\D`)

func cleanPhone(raw string) string {
	return nonDigit.ReplaceAllString(raw, "")
}
