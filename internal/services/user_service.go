package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/fittrack-be/internal/auth"
	"github.com/isdelr/fittrack-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, email, password string) (models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (models.User, error)
	UpdateUser(ctx context.Context, callerID, id int64, email, password string) (models.User, error)
	DeleteUser(ctx context.Context, callerID, id int64) error
}

// UserService provides business logic for user management.
type UserService struct {
	db     *sql.DB
	hasher *auth.PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, hasher *auth.PasswordHasher) *UserService {
	return &UserService{db: db, hasher: hasher}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT id, email, password_hash, created_at FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user with ID %d: %w", id, ErrUserNotFound)
	}
	return user, err
}

// getUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) getUserByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT id, email, password_hash, created_at FROM users WHERE email = ? ORDER BY id LIMIT 1", email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user with email %s: %w", email, ErrUserNotFound)
	}
	return user, err
}

// GetAllUsers lists every account.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT id, email, password_hash, created_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CreateUser registers a new user, hashing their password.
func (s *UserService) CreateUser(ctx context.Context, email, password string) (models.User, error) {
	if _, err := s.getUserByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return models.User{}, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	execCtx, cancel := withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(execCtx, "INSERT INTO users (email, password_hash) VALUES (?, ?)", email, hashed)
	if err != nil {
		return models.User{}, err
	}
	if err := expectOneRow(res, "insert user"); err != nil {
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(ctx, id)
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.getUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return models.User{}, fmt.Errorf("authentication failed: %w", ErrInvalidCredentials)
	}
	if err != nil {
		return models.User{}, err
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return models.User{}, fmt.Errorf("authentication failed: %w", ErrInvalidCredentials)
	}
	return user, nil
}

// UpdateUser changes the email and/or password of the caller's own account.
// Empty arguments keep the stored value.
func (s *UserService) UpdateUser(ctx context.Context, callerID, id int64, email, password string) (models.User, error) {
	if callerID != id {
		return models.User{}, ErrNotOwner
	}
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if email == "" && password == "" {
		return user, nil
	}

	if email != "" && email != user.Email {
		existing, err := s.getUserByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != id:
			return models.User{}, fmt.Errorf("email %s: %w", email, ErrEmailTaken)
		case err != nil && !errors.Is(err, ErrUserNotFound):
			return models.User{}, err
		}
		user.Email = email
	}
	if password != "" {
		if user.PasswordHash, err = s.hasher.Hash(password); err != nil {
			return models.User{}, err
		}
	}

	execCtx, cancel := withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(execCtx, "UPDATE users SET email = ?, password_hash = ? WHERE id = ?", user.Email, user.PasswordHash, id)
	if err != nil {
		return models.User{}, err
	}
	if err := expectOneRow(res, "update user"); err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(ctx, id)
}

// DeleteUser removes the caller's own account. Workouts and events cascade.
func (s *UserService) DeleteUser(ctx context.Context, callerID, id int64) error {
	if callerID != id {
		return ErrNotOwner
	}
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectOneRow(res, "delete user")
}

func scanUser(scanner rowScanner) (models.User, error) {
	var user models.User
	err := scanner.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	return user, err
}
