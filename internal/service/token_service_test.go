package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "inventory-sync-gateway")

	token, expiry, err := svc.Generate("device-test")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "device-test", claims.DeviceID)
}

func TestJWTTokenService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "inventory-sync-gateway")
	other := NewJWTTokenService("different-secret", time.Hour, "inventory-sync-gateway")

	token, _, err := svc.Generate("device-test")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_RejectsExpired(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", -time.Minute, "inventory-sync-gateway")

	token, _, err := svc.Generate("device-test")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_RejectsGarbage(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "inventory-sync-gateway")

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
