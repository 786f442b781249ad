package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campusmitra/portal/internal/model"
	appErr "github.com/campusmitra/portal/internal/pkg/errors"
	"github.com/campusmitra/portal/internal/repo"
	"github.com/campusmitra/portal/test/testutil"
)

func TestUserRepoCreateAndGet(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	ctx := context.Background()
	now := time.Now().UnixMilli()

	user := &model.User{
		ID:           "user-1",
		Email:        "student@example.edu",
		Name:         "Student One",
		Role:         model.RoleStudent,
		PasswordHash: "hash",
		Ctime:        now,
		Mtime:        now,
	}
	require.NoError(t, users.Create(ctx, user))

	byEmail, err := users.GetByEmail(ctx, "student@example.edu")
	require.NoError(t, err)
	require.Equal(t, "user-1", byEmail.ID)
	require.Equal(t, model.RoleStudent, byEmail.Role)

	byID, err := users.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "student@example.edu", byID.Email)

	_, err = users.GetByID(ctx, "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	ctx := context.Background()
	now := time.Now().UnixMilli()

	first := &model.User{ID: "user-1", Email: "dup@example.edu", Role: model.RoleStudent, PasswordHash: "h", Ctime: now, Mtime: now}
	require.NoError(t, users.Create(ctx, first))

	second := &model.User{ID: "user-2", Email: "dup@example.edu", Role: model.RoleStudent, PasswordHash: "h", Ctime: now, Mtime: now}
	require.ErrorIs(t, users.Create(ctx, second), appErr.ErrConflict)
}

func TestUserRepoUpdateRole(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	ctx := context.Background()
	now := time.Now().UnixMilli()

	user := &model.User{ID: "user-1", Email: "t@example.edu", Role: model.RoleStudent, PasswordHash: "h", Ctime: now, Mtime: now}
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, users.UpdateRole(ctx, "user-1", model.RoleAdmin, now+1))

	got, err := users.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, got.Role)
	require.Equal(t, now+1, got.Mtime)
}
