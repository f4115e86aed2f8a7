package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/Senegura/TicketSystem/internal/config"
	"github.com/Senegura/TicketSystem/internal/crypto"
	"github.com/Senegura/TicketSystem/internal/domain"
	"github.com/Senegura/TicketSystem/internal/repository"
	"github.com/Senegura/TicketSystem/pkg/util"
)

// loginFailedMessage is returned for unknown usernames and wrong passwords
// alike, so a caller cannot probe which usernames exist.
const loginFailedMessage = "Invalid username or password"

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	iterations int
	algorithm  crypto.Algorithm
	saltSize   int
}

// NewAuthService builds the service. The hashing parameters from cfg apply
// to newly registered users only; verification always uses the parameters
// stored with each user.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	saltSize := cfg.SaltSize
	if saltSize <= 0 {
		saltSize = crypto.DefaultSaltSize
	}
	return &AuthService{
		users:      users,
		iterations: cfg.HashIterations,
		algorithm:  crypto.Algorithm(cfg.HashAlgorithm),
		saltSize:   saltSize,
	}
}

// Register creates a credential record for a new account, hashing the
// password with the current default parameters. A taken username fails
// with a CONFLICT domain error.
func (s *AuthService) Register(ctx context.Context, username, password string, userType domain.UserType) (*domain.User, error) {
	if username == "" {
		return nil, util.NewValidationError("username is required", nil)
	}
	if password == "" {
		return nil, util.NewValidationError("password is required", nil)
	}
	if !userType.Valid() {
		return nil, util.NewValidationError("unknown user type", nil)
	}

	salt, err := crypto.GenerateSalt(s.saltSize)
	if err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(password, salt, s.iterations, s.algorithm)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:      username,
		UserType:      userType,
		PasswordHash:  hash,
		Iterations:    s.iterations,
		Salt:          base64.StdEncoding.EncodeToString(salt),
		HashAlgorithm: string(s.algorithm),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, util.NewConflict(fmt.Sprintf("username %q already exists", username), nil)
		}
		return nil, err
	}
	return user, nil
}

// Login verifies a username/password pair. The password is rehashed with
// the salt, iteration count and algorithm stored for that user, never the
// current defaults, so accounts hashed under older policies keep working.
// Authentication failure is a result, not an error.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	failed := domain.LoginResult{Success: false, ErrorMessage: loginFailedMessage}
	if username == "" || password == "" {
		return failed, nil
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return failed, nil
		}
		return domain.LoginResult{}, err
	}

	salt, err := base64.StdEncoding.DecodeString(user.Salt)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("decode stored salt for user %d: %w", user.ID, err)
	}

	computed, err := crypto.HashPassword(password, salt, user.Iterations, crypto.Algorithm(user.HashAlgorithm))
	if err != nil {
		return domain.LoginResult{}, err
	}

	if computed != user.PasswordHash {
		return failed, nil
	}

	return domain.LoginResult{
		Success:  true,
		UserID:   user.ID,
		UserType: user.UserType,
	}, nil
}
