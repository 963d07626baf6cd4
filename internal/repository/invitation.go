package repository

import (
	"context"
	"errors"
	"time"

	"github.com/forgo/shepherd/api/internal/database"
	"github.com/forgo/shepherd/api/internal/model"
)

// InvitationRepository handles invitation data access
type InvitationRepository struct {
	db database.Database
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db database.Database) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create stores a pending invitation
func (r *InvitationRepository) Create(ctx context.Context, inv *model.Invitation) error {
	query := `
		CREATE invitation CONTENT {
			email: $email,
			role: $role,
			token_hash: $token_hash,
			invited_by: type::record($invited_by),
			status: "pending",
			expires_on: <datetime>$expires_on,
			created_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"email":      inv.Email,
		"role":       string(inv.Role),
		"token_hash": inv.TokenHash,
		"invited_by": recordID("user", inv.InvitedBy),
		"expires_on": inv.ExpiresOn.UTC().Format(time.RFC3339),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	inv.ID = created.ID
	inv.Status = model.InvitationStatusPending
	inv.CreatedOn = created.CreatedOn
	return nil
}

// GetByTokenHash looks an invitation up by its token hash; nil when unknown
func (r *InvitationRepository) GetByTokenHash(ctx context.Context, hash string) (*model.Invitation, error) {
	query := `SELECT * FROM invitation WHERE token_hash = $hash LIMIT 1`
	vars := map[string]interface{}{"hash": hash}

	return r.getOne(ctx, query, vars)
}

// GetByID retrieves an invitation; nil when it does not exist
func (r *InvitationRepository) GetByID(ctx context.Context, id string) (*model.Invitation, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": recordID("invitation", id)}

	return r.getOne(ctx, query, vars)
}

// List returns invitations, newest first
func (r *InvitationRepository) List(ctx context.Context) ([]*model.Invitation, error) {
	query := `SELECT * FROM invitation ORDER BY created_on DESC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records := resultRecords(result)
	invitations := make([]*model.Invitation, 0, len(records))
	for _, data := range records {
		invitations = append(invitations, parseInvitation(data))
	}
	return invitations, nil
}

// MarkAccepted moves a pending, unexpired invitation to accepted. It reports
// false when the invitation was already used, revoked or expired.
func (r *InvitationRepository) MarkAccepted(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE type::record($id) SET
			status = "accepted",
			accepted_on = time::now()
		WHERE status = "pending" AND expires_on > time::now()
		RETURN AFTER
	`
	vars := map[string]interface{}{"id": recordID("invitation", id)}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}
	return len(resultRecords(result)) > 0, nil
}

// Revoke cancels a pending invitation and reports whether one was changed
func (r *InvitationRepository) Revoke(ctx context.Context, id string) (bool, error) {
	query := `UPDATE type::record($id) SET status = "revoked" WHERE status = "pending" RETURN AFTER`
	vars := map[string]interface{}{"id": recordID("invitation", id)}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}
	return len(resultRecords(result)) > 0, nil
}

// DeleteExpired removes pending invitations past their expiry
func (r *InvitationRepository) DeleteExpired(ctx context.Context) (int, error) {
	query := `DELETE invitation WHERE status = "pending" AND expires_on < time::now() RETURN BEFORE`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return 0, err
	}
	return len(resultRecords(result)), nil
}

func (r *InvitationRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.Invitation, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := asRecord(result)
	if err != nil || data == nil {
		return nil, err
	}
	return parseInvitation(data), nil
}

func parseInvitation(data map[string]interface{}) *model.Invitation {
	return &model.Invitation{
		ID:         convertSurrealID(data["id"]),
		Email:      getString(data, "email"),
		Role:       model.UserRole(getString(data, "role")),
		TokenHash:  getString(data, "token_hash"),
		InvitedBy:  convertSurrealID(data["invited_by"]),
		Status:     model.InvitationStatus(getString(data, "status")),
		ExpiresOn:  getTimeValue(data, "expires_on"),
		AcceptedOn: getTime(data, "accepted_on"),
		CreatedOn:  getTimeValue(data, "created_on"),
	}
}
