package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"compliance-backend/apperr"
	"compliance-backend/models"
)

func TestUserStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	actor := seedUser(t, db, "admin")
	user := seedUser(t, db, "ravi")
	require.NoError(t, db.Model(user).Update("status", models.StatusPending).Error)

	// pending -> suspended is not a legal move.
	suspended := string(models.StatusSuspended)
	_, err := svc.Update(context.Background(), user.ID, UpdateUserInput{Status: &suspended}, actor.ID)
	require.ErrorIs(t, err, apperr.ErrValidation)

	// pending -> active, active -> suspended, suspended -> active.
	for _, next := range []string{"active", "suspended", "active", "inactive"} {
		status := next
		updated, err := svc.Update(context.Background(), user.ID, UpdateUserInput{Status: &status}, actor.ID)
		require.NoError(t, err, "transition to %s", next)
		require.Equal(t, models.UserStatus(next), updated.Status)
	}
}

func TestUserUpdateWritesAuditLog(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	actor := seedUser(t, db, "admin")
	user := seedUser(t, db, "ravi")

	name := "Ravi K"
	_, err := svc.Update(context.Background(), user.ID, UpdateUserInput{FullName: &name}, actor.ID)
	require.NoError(t, err)

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, actor.ID, logs[0].UserID)
	require.Equal(t, "UPDATE_USER", logs[0].Action)
	require.NotEmpty(t, logs[0].OldValues)
	require.NotEmpty(t, logs[0].NewValues)
}

func TestUserUpdateEmailConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	actor := seedUser(t, db, "admin")
	user := seedUser(t, db, "ravi")

	email := actor.Email
	_, err := svc.Update(context.Background(), user.ID, UpdateUserInput{Email: &email}, actor.ID)
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestUserUpdatePasswordRehashes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	actor := seedUser(t, db, "admin")
	user := seedUser(t, db, "ravi")
	oldHash := string(user.HashedPassword)

	password := "new-password-9"
	updated, err := svc.Update(context.Background(), user.ID, UpdateUserInput{Password: &password}, actor.ID)
	require.NoError(t, err)
	require.NotEqual(t, oldHash, string(updated.HashedPassword))
	require.NoError(t, updated.ComparePassword("new-password-9"))
}

func TestUserDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	actor := seedUser(t, db, "admin")
	user := seedUser(t, db, "ravi")

	require.NoError(t, svc.Delete(context.Background(), user.ID, actor.ID))
	_, err := svc.Get(context.Background(), user.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRolePermissionRequiresPermission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	_, err := svc.CreateRolePermission(context.Background(), CreateRolePermissionInput{
		Role:         "manager",
		PermissionID: 42,
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	perm, err := svc.CreatePermission(context.Background(), CreatePermissionInput{
		Name:     "clients.read",
		Resource: "clients",
		Action:   "read",
	})
	require.NoError(t, err)

	rp, err := svc.CreateRolePermission(context.Background(), CreateRolePermissionInput{
		Role:         "manager",
		PermissionID: perm.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleManager, rp.Role)
}
