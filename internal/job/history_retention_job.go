package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/campusmitra/portal/internal/repo"
)

// HistoryRetentionJob prunes anonymous chat exchanges past the retention
// window. Authenticated users own their history and clear it themselves.
type HistoryRetentionJob struct {
	exchanges *repo.ExchangeRepo
	maxAge    time.Duration
}

func NewHistoryRetentionJob(exchanges *repo.ExchangeRepo, maxAge time.Duration) *HistoryRetentionJob {
	return &HistoryRetentionJob{exchanges: exchanges, maxAge: maxAge}
}

func (j *HistoryRetentionJob) Name() string {
	return "history_retention"
}

func (j *HistoryRetentionJob) Run(ctx context.Context) error {
	if j.exchanges == nil || j.maxAge <= 0 {
		return nil
	}
	cutoff := time.Now().Add(-j.maxAge).UnixMilli()
	deleted, err := j.exchanges.DeleteAnonymousBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		logutil.GetLogger(ctx).Info("anonymous history pruned", zap.Int64("deleted", deleted))
	}
	return nil
}
