package job_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campusmitra/portal/internal/job"
	"github.com/campusmitra/portal/internal/model"
	"github.com/campusmitra/portal/internal/repo"
	"github.com/campusmitra/portal/test/testutil"
)

func TestHistoryRetentionJobSweepsOldAnonymousExchanges(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	exchanges := repo.NewExchangeRepo(db)
	ctx := context.Background()
	now := time.Now().UnixMilli()

	add := func(id, userID string, ctime int64) {
		require.NoError(t, exchanges.Create(ctx, &model.ChatExchange{
			ID:        id,
			UserID:    userID,
			SessionID: "sess",
			Message:   "hello",
			Response:  "hi",
			Language:  "en",
			Ctime:     ctime,
			Mtime:     ctime,
		}))
	}
	old := now - (31 * 24 * time.Hour).Milliseconds()
	add("ex-old-anon", model.AnonymousUserID, old)
	add("ex-new-anon", model.AnonymousUserID, now)
	add("ex-old-user", "user-1", old)

	j := job.NewHistoryRetentionJob(exchanges, 30*24*time.Hour)
	require.Equal(t, "history_retention", j.Name())
	require.NoError(t, j.Run(ctx))

	count, err := exchanges.CountByUser(ctx, model.AnonymousUserID, "")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// Authenticated history is never swept.
	count, err = exchanges.CountByUser(ctx, "user-1", "")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}
