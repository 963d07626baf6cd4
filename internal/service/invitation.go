package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/forgo/shepherd/api/internal/email"
	"github.com/forgo/shepherd/api/internal/metrics"
	"github.com/forgo/shepherd/api/internal/model"
)

// Actor is the authenticated user performing a staff operation
type Actor struct {
	ID   string
	Name string
	Role model.UserRole
}

// InvitationRepository defines the interface for invitation storage
type InvitationRepository interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetByTokenHash(ctx context.Context, hash string) (*model.Invitation, error)
	GetByID(ctx context.Context, id string) (*model.Invitation, error)
	List(ctx context.Context) ([]*model.Invitation, error)
	MarkAccepted(ctx context.Context, id string) (bool, error)
	Revoke(ctx context.Context, id string) (bool, error)
	DeleteExpired(ctx context.Context) (int, error)
}

// UserLookup is the part of the user store invitations need
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// CreatedInvitation is returned to staff after an invitation is sent
type CreatedInvitation struct {
	Invitation *model.Invitation `json:"invitation"`
	AcceptURL  string            `json:"accept_url"`
}

// InvitationService issues and redeems staff invitations
type InvitationService struct {
	repo      InvitationRepository
	users     UserLookup
	mailer    email.Mailer
	metrics   *metrics.Metrics
	ttl       time.Duration
	acceptURL string
	church    string
	now       func() time.Time
}

// InvitationServiceConfig holds configuration for the invitation service
type InvitationServiceConfig struct {
	Repo      InvitationRepository
	Users     UserLookup
	Mailer    email.Mailer
	Metrics   *metrics.Metrics
	TTL       time.Duration // Default: 7 days
	AcceptURL string        // registration page; the token is appended as ?invitation=
	Church    string
}

// NewInvitationService creates a new invitation service
func NewInvitationService(cfg InvitationServiceConfig) *InvitationService {
	if cfg.TTL == 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	return &InvitationService{
		repo:      cfg.Repo,
		users:     cfg.Users,
		mailer:    cfg.Mailer,
		metrics:   cfg.Metrics,
		ttl:       cfg.TTL,
		acceptURL: cfg.AcceptURL,
		church:    cfg.Church,
		now:       time.Now,
	}
}

// Create stores a pending invitation and emails the link. Only admins may
// invite admins. When delivery fails the invitation is revoked.
func (s *InvitationService) Create(ctx context.Context, actor Actor, req model.CreateInvitationRequest) (*CreatedInvitation, error) {
	addr := normalizeEmail(req.Email)
	if !isValidEmail(addr) {
		return nil, ErrInvalidEmail
	}

	role := req.Role
	if role == "" {
		role = model.UserRoleMember
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if role == model.UserRoleAdmin && actor.Role != model.UserRoleAdmin {
		return nil, ErrForbidden
	}

	existing, err := s.users.GetByEmail(ctx, addr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	token, err := generateOpaqueToken()
	if err != nil {
		return nil, err
	}

	inv := &model.Invitation{
		Email:     addr,
		Role:      role,
		TokenHash: hashToken(token),
		InvitedBy: actor.ID,
		ExpiresOn: s.now().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	link := s.link(token)
	msg, err := email.RenderInvitation(email.InvitationData{
		To:          addr,
		Name:        req.Name,
		InviterName: actor.Name,
		Church:      s.church,
		Role:        string(role),
		AcceptURL:   link,
		ExpiresOn:   inv.ExpiresOn,
	})
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		s.metrics.InvitationSent(metrics.OutcomeError)
		slog.Error("invitation delivery failed",
			slog.String("invitation_id", inv.ID),
			slog.String("error", err.Error()),
		)
		if _, revokeErr := s.repo.Revoke(ctx, inv.ID); revokeErr != nil {
			slog.Warn("failed to revoke undelivered invitation", slog.String("invitation_id", inv.ID))
		}
		return nil, fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	s.metrics.InvitationSent(metrics.OutcomeSuccess)
	slog.Info("invitation sent",
		slog.String("invitation_id", inv.ID),
		slog.String("invited_by", actor.ID),
		slog.String("role", string(role)),
	)
	return &CreatedInvitation{Invitation: inv, AcceptURL: link}, nil
}

// List returns all invitations with their effective status
func (s *InvitationService) List(ctx context.Context) ([]*model.Invitation, error) {
	invitations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for _, inv := range invitations {
		inv.Status = inv.EffectiveStatus(now)
	}
	return invitations, nil
}

// Revoke cancels a pending invitation
func (s *InvitationService) Revoke(ctx context.Context, id string) error {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return ErrInvitationNotFound
	}
	if err := s.usable(inv); err != nil && !errors.Is(err, ErrInvitationExpired) {
		return err
	}

	changed, err := s.repo.Revoke(ctx, inv.ID)
	if err != nil {
		return err
	}
	if !changed {
		return ErrInvitationUsed
	}
	return nil
}

// Check returns the public view of a usable invitation token
func (s *InvitationService) Check(ctx context.Context, token string) (*model.InvitationCheck, error) {
	inv, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	return &model.InvitationCheck{Email: inv.Email, Role: inv.Role, ExpiresOn: inv.ExpiresOn}, nil
}

// Validate returns the invitation for token when it is usable by addr
func (s *InvitationService) Validate(ctx context.Context, token, addr string) (*model.Invitation, error) {
	inv, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.Email != normalizeEmail(addr) {
		return nil, ErrInvitationEmail
	}
	return inv, nil
}

// Accept marks the invitation used. A second accept fails.
func (s *InvitationService) Accept(ctx context.Context, inv *model.Invitation) error {
	ok, err := s.repo.MarkAccepted(ctx, inv.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvitationUsed
	}
	return nil
}

// DeleteExpired removes pending invitations past their expiry
func (s *InvitationService) DeleteExpired(ctx context.Context) (int, error) {
	return s.repo.DeleteExpired(ctx)
}

func (s *InvitationService) lookup(ctx context.Context, token string) (*model.Invitation, error) {
	if token == "" {
		return nil, ErrInvitationNotFound
	}
	inv, err := s.repo.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvitationNotFound
	}
	if err := s.usable(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvitationService) usable(inv *model.Invitation) error {
	switch inv.EffectiveStatus(s.now()) {
	case model.InvitationStatusPending:
		return nil
	case model.InvitationStatusAccepted:
		return ErrInvitationUsed
	case model.InvitationStatusRevoked:
		return ErrInvitationRevoked
	default:
		return ErrInvitationExpired
	}
}

func (s *InvitationService) link(token string) string {
	u, err := url.Parse(s.acceptURL)
	if err != nil || s.acceptURL == "" {
		return "?invitation=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("invitation", token)
	u.RawQuery = q.Encode()
	return u.String()
}
