package service

import (
	"context"
	"fmt"
	"time"

	"inventory-sync-gateway/internal/core/domain"
	"inventory-sync-gateway/internal/core/ports"
	"inventory-sync-gateway/pkg/apperror"
)

// AuthServiceImpl implements ports.AuthService. It gates the webhook
// configuration surface behind a single password.
type AuthServiceImpl struct {
	credRepo        ports.CredentialRepository
	hashSvc         ports.HashService
	tokenSvc        ports.TokenService
	deviceID        string
	defaultPassword string
}

// NewAuthService creates a new AuthServiceImpl. defaultPassword seeds the
// credential on first login if none has been stored yet.
func NewAuthService(
	credRepo ports.CredentialRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	deviceID string,
	defaultPassword string,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		credRepo:        credRepo,
		hashSvc:         hashSvc,
		tokenSvc:        tokenSvc,
		deviceID:        deviceID,
		defaultPassword: defaultPassword,
	}
}

// Login exchanges the settings password for a session token.
func (s *AuthServiceImpl) Login(ctx context.Context, password string) (string, time.Time, error) {
	hash, err := s.currentHash(ctx)
	if err != nil {
		return "", time.Time{}, err
	}

	valid, err := s.hashSvc.Verify(password, hash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidPassword()
	}

	token, expiry, err := s.tokenSvc.Generate(s.deviceID)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}
	return token, expiry, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, current, next string) error {
	if next == "" {
		return apperror.Validation("new password must not be empty")
	}

	hash, err := s.currentHash(ctx)
	if err != nil {
		return err
	}

	valid, err := s.hashSvc.Verify(current, hash)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return apperror.ErrInvalidPassword()
	}

	newHash, err := s.hashSvc.Hash(next)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}
	if err := s.credRepo.Set(ctx, &domain.SettingsCredential{
		PasswordHash: newHash,
		UpdatedAt:    time.Now().UTC(),
	}); err != nil {
		return apperror.ErrStorage(fmt.Errorf("store credential: %w", err))
	}
	return nil
}

// currentHash returns the stored password hash, seeding it from the
// configured default on first use.
func (s *AuthServiceImpl) currentHash(ctx context.Context) (string, error) {
	cred, err := s.credRepo.Get(ctx)
	if err != nil {
		return "", apperror.ErrStorage(fmt.Errorf("load credential: %w", err))
	}
	if cred != nil {
		return cred.PasswordHash, nil
	}

	if s.defaultPassword == "" {
		return "", apperror.ErrInvalidPassword()
	}

	hash, err := s.hashSvc.Hash(s.defaultPassword)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("hash default password: %w", err))
	}
	if err := s.credRepo.Set(ctx, &domain.SettingsCredential{
		PasswordHash: hash,
		UpdatedAt:    time.Now().UTC(),
	}); err != nil {
		return "", apperror.ErrStorage(fmt.Errorf("seed credential: %w", err))
	}
	return hash, nil
}
