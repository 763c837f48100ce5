package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "unit-test-secret",
		TokenExp:    exp,
		TokenIssuer: "aau-found-it-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	user := &models.User{ID: "u-123", Email: "ada@aau.edu.ng", Name: "Ada"}
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-123", claims.UserID)
	assert.Equal(t, "ada@aau.edu.ng", claims.Email)
	assert.Equal(t, string(models.RoleMember), claims.Role)
}

func TestAdminDeskGetsAdminRole(t *testing.T) {
	svc := newTestService(time.Hour)

	user := &models.User{ID: models.AdminID, Email: models.AdminEmail, Name: models.AdminName}
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.GenerateToken(&models.User{ID: "u-1", Email: "x@aau.edu.ng"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(JWTConfig{SecretKey: "different", TokenExp: time.Hour, TokenIssuer: "x"})

	token, err := svc.GenerateToken(&models.User{ID: "u-1", Email: "x@aau.edu.ng"})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("Basic dXNlcg==")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
