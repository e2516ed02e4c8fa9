package postgres

import (
	"context"
	"testing"
	"time"

	"inventory-sync-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCredentialRepo(mock)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"password_hash", "updated_at"}).
		AddRow("$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", now)

	mock.ExpectQuery("SELECT password_hash, updated_at FROM settings_credential").
		WillReturnRows(rows)

	cred, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Contains(t, cred.PasswordHash, "argon2id")
}

func TestCredentialRepo_Get_NoneStored(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCredentialRepo(mock)

	mock.ExpectQuery("SELECT password_hash, updated_at FROM settings_credential").
		WillReturnError(pgx.ErrNoRows)

	cred, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cred)
}

func TestCredentialRepo_Set(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCredentialRepo(mock)
	cred := &domain.SettingsCredential{
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		UpdatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO settings_credential").
		WithArgs(cred.PasswordHash, cred.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Set(context.Background(), cred))
	assert.NoError(t, mock.ExpectationsWereMet())
}
