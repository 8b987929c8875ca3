package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"compliance-backend/apperr"
	"compliance-backend/models"
)

var testSecret = []byte("test-secret")

func TestLoginIssuesUsableToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, 30*time.Minute)
	seedUser(t, db, "asha")

	token, user, err := svc.Login(context.Background(), "asha", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, user.LastLogin)

	resolved, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "asha", resolved.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, 30*time.Minute)
	seedUser(t, db, "asha")

	_, _, err := svc.Login(context.Background(), "asha", "wrong-password")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, 30*time.Minute)

	_, _, err := svc.Login(context.Background(), "nobody", "password123")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLoginRejectsNonActiveUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, 30*time.Minute)
	user := seedUser(t, db, "asha")
	require.NoError(t, db.Model(user).Update("status", models.StatusPending).Error)

	_, _, err := svc.Login(context.Background(), "asha", "password123")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, 30*time.Minute)
	seedUser(t, db, "asha")

	// Issue a token from an hour in the past so it is already expired.
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := svc.Login(context.Background(), "asha", "password123")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, 30*time.Minute)

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestRegisterDefaultsAndConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, 30*time.Minute)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ravi@example.com",
		Username: "ravi",
		FullName: "Ravi Kumar",
		Password: "password123",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleClient, user.Role)
	require.Equal(t, models.StatusPending, user.Status)
	require.NotEqual(t, "password123", string(user.HashedPassword))

	_, err = svc.Register(context.Background(), RegisterInput{
		Email:    "other@example.com",
		Username: "ravi",
		FullName: "Someone Else",
		Password: "password123",
	})
	require.True(t, errors.Is(err, apperr.ErrConflict))

	_, err = svc.Register(context.Background(), RegisterInput{
		Email:    "ravi@example.com",
		Username: "ravi2",
		FullName: "Someone Else",
		Password: "password123",
	})
	require.True(t, errors.Is(err, apperr.ErrConflict))
}
