package user

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/sharath018/hotel-management-backend/internal/auditlog"
	"github.com/sharath018/hotel-management-backend/internal/auth"
	"github.com/sharath018/hotel-management-backend/middleware"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrUnknownRole     = errors.New("unknown role")
	ErrCannotDemote    = errors.New("cannot change your own role")
	ErrInvalidStatus   = errors.New("status must be active or inactive")
	ErrGuestUnmanaged  = errors.New("guest accounts are managed via registration")
	ErrSelfDeactivate  = errors.New("cannot deactivate your own account")
)

// CreateStaffRequest provisions a staff account with a known password.
// Guests self-register through the auth endpoints instead.
type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserRequest edits an account. Role and Status are staff-only fields.
type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

type Service interface {
	ListUsers(ctx context.Context, filters Filters) ([]auth.User, int64, error)
	GetUser(ctx context.Context, id uint) (*auth.User, error)
	CreateStaff(ctx context.Context, req CreateStaffRequest, actorID uint, ip string) (*auth.User, error)
	UpdateUser(ctx context.Context, id uint, req UpdateUserRequest, actor middleware.AccessContext, ip string) (*auth.User, error)
	UpdateMyProfile(ctx context.Context, userID uint, name, phone string) (*auth.User, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

type service struct {
	repo     Repository
	authRepo auth.Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, authRepo auth.Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, authRepo: authRepo, auditSvc: auditSvc}
}

func (s *service) ListUsers(ctx context.Context, filters Filters) ([]auth.User, int64, error) {
	return s.repo.List(ctx, filters)
}

func (s *service) GetUser(ctx context.Context, id uint) (*auth.User, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateStaff provisions an account for any staff role. The guest role is
// rejected here; guests use the public registration flow.
func (s *service) CreateStaff(ctx context.Context, req CreateStaffRequest, actorID uint, ip string) (*auth.User, error) {
	if req.Role == middleware.RoleGuest {
		return nil, ErrGuestUnmanaged
	}

	role, err := s.authRepo.FindRoleByName(req.Role)
	if err != nil {
		return nil, ErrUnknownRole
	}

	if _, err := s.authRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &auth.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		RoleID:       role.ID,
		Status:       "active",
	}
	if err := s.authRepo.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	u.Role = *role

	s.audit(ctx, actorID, u.ID, "USER_CREATED", map[string]interface{}{
		"email": u.Email,
		"role":  role.RoleName,
	}, ip)

	return u, nil
}

// UpdateUser edits another account. Actors cannot change their own role or
// deactivate themselves, which keeps at least one working admin session.
func (s *service) UpdateUser(ctx context.Context, id uint, req UpdateUserRequest, actor middleware.AccessContext, ip string) (*auth.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := map[string]interface{}{}

	if req.Name != nil {
		u.Name = *req.Name
		details["name"] = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Role != nil {
		if u.ID == actor.UserID {
			return nil, ErrCannotDemote
		}
		role, err := s.authRepo.FindRoleByName(*req.Role)
		if err != nil {
			return nil, ErrUnknownRole
		}
		u.RoleID = role.ID
		u.Role = *role
		details["role"] = role.RoleName
	}
	if req.Status != nil {
		if *req.Status != "active" && *req.Status != "inactive" {
			return nil, ErrInvalidStatus
		}
		if u.ID == actor.UserID && *req.Status == "inactive" {
			return nil, ErrSelfDeactivate
		}
		u.Status = *req.Status
		details["status"] = *req.Status
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.audit(ctx, actor.UserID, u.ID, "USER_UPDATED", details, ip)

	return u, nil
}

// UpdateMyProfile lets any authenticated user edit their own contact details.
func (s *service) UpdateMyProfile(ctx context.Context, userID uint, name, phone string) (*auth.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		u.Name = name
	}
	if phone != "" {
		u.Phone = phone
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

func (s *service) CountByRole(ctx context.Context) (map[string]int64, error) {
	return s.repo.CountByRole(ctx)
}

func (s *service) audit(ctx context.Context, actorID, targetID uint, action string, details map[string]interface{}, ip string) {
	if s.auditSvc == nil {
		return
	}
	tid := targetID
	if err := s.auditSvc.LogAction(ctx, &actorID, "user", &tid, action, details, ip, "success"); err != nil {
		log.Printf("⚠️ Failed to write audit log for %s: %v", action, err)
	}
}
