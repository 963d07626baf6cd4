package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/forgo/shepherd/api/internal/database"
	"github.com/forgo/shepherd/api/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor (10-14 recommended for production)
const bcryptCost = 12

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	UpdateRole(ctx context.Context, userID string, role model.UserRole) error
	TouchLogin(ctx context.Context, userID string) error
}

// InvitationGate validates and consumes invitation tokens during registration
type InvitationGate interface {
	Validate(ctx context.Context, token, email string) (*model.Invitation, error)
	Accept(ctx context.Context, inv *model.Invitation) error
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo            UserRepository
	tokenService        *TokenService
	invitations         InvitationGate
	requireInvitation   bool
	bootstrapAdminEmail string
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo     UserRepository
	TokenService *TokenService
	Invitations  InvitationGate
	// RequireInvitation rejects registrations without a valid invitation token
	RequireInvitation bool
	// BootstrapAdminEmail may register without an invitation and becomes admin
	BootstrapAdminEmail string
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:            cfg.UserRepo,
		tokenService:        cfg.TokenService,
		invitations:         cfg.Invitations,
		requireInvitation:   cfg.RequireInvitation,
		bootstrapAdminEmail: normalizeEmail(cfg.BootstrapAdminEmail),
	}
}

// Register creates a new account. The role comes from the invitation, or is
// member when the invitation gate is off.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	role := model.UserRoleMember
	var inv *model.Invitation

	switch {
	case s.bootstrapAdminEmail != "" && email == s.bootstrapAdminEmail:
		role = model.UserRoleAdmin
	case req.InvitationToken != "":
		if s.invitations == nil {
			return nil, ErrInvitationNotFound
		}
		found, err := s.invitations.Validate(ctx, req.InvitationToken, email)
		if err != nil {
			return nil, err
		}
		inv = found
		role = found.Role
	case s.requireInvitation:
		return nil, ErrInvitationRequired
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     email,
		Hash:      &hash,
		Firstname: trimmedPtr(req.Firstname),
		Lastname:  trimmedPtr(req.Lastname),
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if inv != nil {
		if err := s.invitations.Accept(ctx, inv); err != nil {
			slog.Warn("invitation accept failed after registration",
				slog.String("invitation_id", inv.ID),
				slog.String("user_id", user.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.Bool("invited", inv != nil),
	)

	tokens, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{User: user, Tokens: tokens}, nil
}

// Login authenticates a user with email/password
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Hash == nil || *user.Hash == "" {
		return nil, ErrInvalidCredentials
	}
	if !checkPassword(req.Password, *user.Hash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLogin(ctx, user.ID); err != nil {
		slog.Warn("failed to record login", slog.String("user_id", user.ID), slog.String("error", err.Error()))
	}

	tokens, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{User: user, Tokens: tokens}, nil
}

// Refresh rotates a refresh token. The new access token carries the user's
// current role.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	stored, err := s.tokenService.ResolveRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}

	return s.tokenService.RotateRefreshToken(ctx, refreshToken, user)
}

// Logout revokes one refresh token, or every token of the user when none is given
func (s *AuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		return s.tokenService.RevokeAllUserTokens(ctx, userID)
	}

	stored, err := s.tokenService.ResolveRefreshToken(ctx, refreshToken)
	if err != nil {
		// Already unusable
		return nil
	}
	if stored.UserID != userID {
		return ErrForbidden
	}
	return s.tokenService.RevokeRefreshToken(ctx, refreshToken)
}

// Me returns the authenticated user
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Helper functions

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func validatePassword(password string) error {
	if len(password) < model.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > model.MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	return dotIndex < len(email)-1
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
