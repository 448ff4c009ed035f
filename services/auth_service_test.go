package services

import (
	"testing"

	"github.com/pcm-backend/dto"
	"github.com/pcm-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register(dto.RegisterRequest{
		Email:    "site.lead@pcm.test",
		Password: "hunter22",
		Name:     strPtr("Site Lead"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "hunter22", user.Password, "password must be hashed")

	resp, err := svc.Login(dto.LoginRequest{Email: "site.lead@pcm.test", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.Password)

	claims, err := ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(models.RoleMember), claims.Role)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(dto.RegisterRequest{
		Email:    "dup@pcm.test",
		Password: "password1",
		Username: strPtr("dupuser"),
	})
	require.NoError(t, err)

	_, err = svc.Register(dto.RegisterRequest{Email: "dup@pcm.test", Password: "password2"})
	assert.EqualError(t, err, "email already registered")

	_, err = svc.Register(dto.RegisterRequest{
		Email:    "other@pcm.test",
		Password: "password2",
		Username: strPtr("dupuser"),
	})
	assert.EqualError(t, err, "username already taken")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(dto.RegisterRequest{Email: "x@pcm.test", Password: "correct-pass"})
	require.NoError(t, err)

	_, err = svc.Login(dto.LoginRequest{Email: "x@pcm.test", Password: "wrong-pass"})
	assert.EqualError(t, err, "invalid email or password")

	_, err = svc.Login(dto.LoginRequest{Email: "nobody@pcm.test", Password: "whatever"})
	assert.EqualError(t, err, "invalid email or password")
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, _, err := GenerateToken("uid-1", "a@b.c", "member")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
