package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/shepherd/api/internal/database"
	"github.com/forgo/shepherd/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	role := user.Role
	if role == "" {
		role = model.UserRoleMember
	}

	query := `
		CREATE user CONTENT {
			email: $email,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			firstname: IF $firstname IS NOT NULL THEN $firstname ELSE NONE END,
			lastname: IF $lastname IS NOT NULL THEN $lastname ELSE NONE END,
			role: $role,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"email":     user.Email,
		"hash":      ptrToNone(user.Hash),
		"firstname": ptrToNone(user.Firstname),
		"lastname":  ptrToNone(user.Lastname),
		"role":      role,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.Role = role
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by ID; nil when it does not exist
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": recordID("user", id)}

	return r.getOne(ctx, query, vars)
}

// GetByEmail retrieves a user by email; nil when it does not exist
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	return r.getOne(ctx, query, vars)
}

// List returns every user ordered by email
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT * FROM user ORDER BY email ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	records := resultRecords(result)
	users := make([]*model.User, 0, len(records))
	for _, data := range records {
		users = append(users, parseUser(data))
	}
	return users, nil
}

// UpdateRole changes a user's role and revokes their live refresh tokens in
// the same transaction
func (r *UserRepository) UpdateRole(ctx context.Context, userID string, role model.UserRole) error {
	id := recordID("user", userID)

	return database.NewAtomicBatch().
		Add(`UPDATE type::record($id) SET role = $role, updated_on = time::now()`, map[string]interface{}{
			"id":   id,
			"role": role,
		}).
		Add(`UPDATE refresh_token SET revoked_on = time::now() WHERE user = type::record($owner) AND revoked_on IS NONE`, map[string]interface{}{
			"owner": id,
		}).
		Execute(ctx, r.db)
}

// TouchLogin records a successful login
func (r *UserRepository) TouchLogin(ctx context.Context, userID string) error {
	query := `UPDATE type::record($id) SET login_on = time::now()`
	vars := map[string]interface{}{"id": recordID("user", userID)}

	return r.db.Execute(ctx, query, vars)
}

func (r *UserRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
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
	return parseUser(data), nil
}

func parseUser(data map[string]interface{}) *model.User {
	return &model.User{
		ID:        convertSurrealID(data["id"]),
		Email:     getString(data, "email"),
		Hash:      getStringPtr(data, "hash"),
		Firstname: getStringPtr(data, "firstname"),
		Lastname:  getStringPtr(data, "lastname"),
		Role:      model.UserRole(getString(data, "role")),
		CreatedOn: getTimeValue(data, "created_on"),
		UpdatedOn: getTimeValue(data, "updated_on"),
		LoginOn:   getTime(data, "login_on"),
	}
}
