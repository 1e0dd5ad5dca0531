package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"impactcore/internal/model"
	"impactcore/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs for Request validation
type CreateUserRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Role           string `json:"role" binding:"required,oneof=admin staff member"`
	OrganizationID string `json:"organization_id" binding:"omitempty,uuid"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	OrganizationID *uuid.UUID `json:"organization_id"`
	PointsBalance  int64      `json:"points_balance"`
	CreatedAt      string     `json:"created_at"`
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID uuid.UUID, role string) (string, time.Time, error)
}

// UserService defines the interface for business logic related to User
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
}

type userService struct {
	repo    repository.UserRepository
	orgRepo repository.OrganizationRepository
	tokens  TokenIssuer
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, orgRepo repository.OrganizationRepository, tokens TokenIssuer) UserService {
	return &userService{repo: repo, orgRepo: orgRepo, tokens: tokens}
}

func validateRole(role string) bool {
	return role == model.RoleAdmin || role == model.RoleStaff || role == model.RoleMember
}

func mapToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		PointsBalance:  user.PointsBalance,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
	}
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if !validateRole(req.Role) {
		return nil, fmt.Errorf("%w: role must be admin, staff or member", ErrInvalidInput)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %w", ErrAlreadyExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &model.User{
		Name:  req.Name,
		Email: email,
		Role:  req.Role,
	}

	if req.OrganizationID != "" {
		orgID, err := uuid.Parse(req.OrganizationID)
		if err != nil {
			return nil, fmt.Errorf("%w: organization_id", ErrInvalidInput)
		}
		if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
			return nil, wrapLookup(err, "organization")
		}
		user.OrganizationID = &orgID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}
	user.Password = string(hashedPassword)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &TokenResponse{Token: token, ExpiresAt: expiresAt.Format(time.RFC3339)}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrInvalidInput)
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapLookup(err, "user")
	}
	return mapToResponse(user), nil
}
