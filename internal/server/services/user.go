// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and issuing JWTs.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/cryptox"
	"github.com/dmitrijs2005/pitchpoa/internal/server/auth"
	"github.com/dmitrijs2005/pitchpoa/internal/server/config"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/dmitrijs2005/pitchpoa/internal/server/repositories/repomanager"
	"github.com/jmoiron/sqlx"
)

const minPasswordLength = 6

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	db                          *sqlx.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserService(db *sqlx.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and signs the caller in.
func (s *UserService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, common.NewValidationError("A valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, common.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)
	hash, err := cryptox.HashPassword(pw)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return s.issue(user)
}

// Login verifies credentials. Unknown email and wrong password both yield
// common.ErrorInvalidCredentials after a comparable amount of work.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = cryptox.CheckPassword(s.timingHash(), pw)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := cryptox.CheckPassword(user.PasswordHash, pw)
	if err != nil {
		return nil, fmt.Errorf("error checking password: %w", err)
	}
	if !ok {
		return nil, common.ErrorInvalidCredentials
	}
	return s.issue(user)
}

// Me returns the account behind a verified identity.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// --- helpers below ---

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *UserService) timingHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = cryptox.HashPassword([]byte("not-a-real-password"))
	})
	return s.dummyHash
}
