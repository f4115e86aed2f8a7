package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Senegura/TicketSystem/internal/domain"
)

// UserRepository defines persistence access for credential records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository returns a SQLite-backed implementation.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user and assigns the store-generated identifier.
// A duplicate username is reported as ErrDuplicateUsername.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO Users (Username, UserType, PasswordHash, Iterations, Salt, HashAlgorithm)
        VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		int(user.UserType),
		user.PasswordHash,
		user.Iterations,
		user.Salt,
		user.HashAlgorithm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("read inserted user id: %w", err)
	}
	user.ID = id
	return nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT Id, Username, UserType, PasswordHash, Iterations, Salt, HashAlgorithm
        FROM Users`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.UserType,
			&user.PasswordHash,
			&user.Iterations,
			&user.Salt,
			&user.HashAlgorithm,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT Id, Username, UserType, PasswordHash, Iterations, Salt, HashAlgorithm
        FROM Users WHERE Id = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT Id, Username, UserType, PasswordHash, Iterations, Salt, HashAlgorithm
        FROM Users WHERE Username = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

// Update rewrites the credential record by identifier. A duplicate username
// is reported as ErrDuplicateUsername, a missing record as ErrUserNotFound.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE Users
        SET Username = ?, UserType = ?, PasswordHash = ?, Iterations = ?, Salt = ?, HashAlgorithm = ?
        WHERE Id = ?`

	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		int(user.UserType),
		user.PasswordHash,
		user.Iterations,
		user.Salt,
		user.HashAlgorithm,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM Users WHERE Id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.UserType,
		&user.PasswordHash,
		&user.Iterations,
		&user.Salt,
		&user.HashAlgorithm,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// isUniqueViolation matches the driver's unique-constraint failure on the
// username column.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: Users.Username")
}
