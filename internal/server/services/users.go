package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ansapra/ansapra/internal/common"
	"github.com/ansapra/ansapra/internal/dbx"
	"github.com/ansapra/ansapra/internal/server/auth"
	"github.com/ansapra/ansapra/internal/server/config"
	"github.com/ansapra/ansapra/internal/server/models"
	"github.com/ansapra/ansapra/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// TokenValidity is the configured lifetime of issued session tokens; the
// transport uses it for cookie expiry.
func (s *UserService) TokenValidity() time.Duration {
	return s.tokenValidityDuration
}

// emptyProfile reports whether the questionnaire payload carries no
// answers. An absent field, JSON null, and an empty object or array all
// count as missing.
func emptyProfile(profile json.RawMessage) bool {
	switch strings.TrimSpace(string(profile)) {
	case "", "null", "{}", "[]":
		return true
	}
	return false
}

// Register creates an account with default settings and issues its first
// session token. A duplicate email yields common.ErrAlreadyExists; missing
// fields yield common.ErrInvalidInput.
func (s *UserService) Register(ctx context.Context, email, password string, profile json.RawMessage) (*models.User, string, error) {

	if email == "" || password == "" || emptyProfile(profile) {
		return nil, "", common.ErrInvalidInput
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Profile:      profile,
		Settings:     models.DefaultSettings(),
		LastPage:     models.DefaultLastPage,
	}

	err = withTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		user, err = s.repomanager.Users(tx).Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, "", common.ErrAlreadyExists
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// Login verifies the credentials and issues a fresh session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {

	if email == "" || password == "" {
		return nil, "", common.ErrInvalidInput
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", common.ErrInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// Authenticate resolves a session token to its user. Expired, malformed,
// wrongly signed, or deleted-user tokens all fail; callers treat any failure
// as anonymous.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	return user, nil
}

func (s *UserService) GetSettings(ctx context.Context, userID string) (models.Settings, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.Settings{}, common.ErrNotFound
		}
		return models.Settings{}, common.ErrInternal
	}
	return user.Settings, nil
}

// UpdateSettings merges the patch into the stored settings. The repository
// performs the read-merge-write atomically (row lock on Postgres, one mutex
// hold in memory), so concurrent merges serialize and cannot lose keys.
func (s *UserService) UpdateSettings(ctx context.Context, userID string, patch models.SettingsPatch) (models.Settings, error) {

	var merged models.Settings

	err := withTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		merged, err = s.repomanager.Users(tx).MergeSettings(ctx, userID, patch)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.Settings{}, common.ErrNotFound
		}
		return models.Settings{}, common.ErrInternal
	}

	return merged, nil
}

// DeleteAccount removes the user and all their reading records.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {

	err := withTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Records(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return common.ErrInternal
	}

	return nil
}
