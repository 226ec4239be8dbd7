package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/menucraft/backend/internal/models"
)

func setupAuthDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupAuthDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	token, err := svc.Register(ctx, "Ada", "ada@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Registering the same email again fails.
	_, err = svc.Register(ctx, "Ada", "ada@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserExists)

	token, err = svc.Login(ctx, "ada@example.com", "password123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Ada", claims.Username)
	assert.NotEmpty(t, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupAuthDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenInvalid(t *testing.T) {
	svc := NewAuthService(nil, "test-secret")

	claims, err := svc.ValidateToken("invalid.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with a different secret is rejected too.
	other := NewAuthService(nil, "other-secret")
	db := setupAuthDB(t)
	real := NewAuthService(db, "test-secret")
	token, err := real.Register(context.Background(), "Ada", "ada@example.com", "password123")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
