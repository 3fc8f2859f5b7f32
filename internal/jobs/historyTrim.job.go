package jobs

import (
	"context"

	"galhub/internal/models"
	"galhub/internal/repositories"
	"galhub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// HistoryTrimJob is a nightly safety net for the recently-played ledger. The
// record path keeps every history at or under the capacity on its own; this
// job cleans up any excess left behind by crashes or manual data edits.
type HistoryTrimJob struct {
	recentGameRepo     repositories.RecentGameRepository
	transactionService *services.TransactionService
	log                logger.Logger
	schedule           services.Schedule
}

func NewHistoryTrimJob(
	recentGameRepo repositories.RecentGameRepository,
	transactionService *services.TransactionService,
	schedule services.Schedule,
) *HistoryTrimJob {
	return &HistoryTrimJob{
		recentGameRepo:     recentGameRepo,
		transactionService: transactionService,
		log:                logger.New("historyTrimJob"),
		schedule:           schedule,
	}
}

func (j *HistoryTrimJob) Name() string {
	return "RecentGamesHistoryTrim"
}

func (j *HistoryTrimJob) Schedule() services.Schedule {
	return j.schedule
}

func (j *HistoryTrimJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	var trimmed int64
	err := j.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		uids, err := j.recentGameRepo.UsersOverCapacity(ctx, tx, models.MaxRecentGames)
		if err != nil {
			return log.Err("failed to find users over capacity", err)
		}

		for _, uid := range uids {
			if err := j.recentGameRepo.LockUserHistory(ctx, tx, uid); err != nil {
				return log.Err("failed to lock user history", err, "uid", uid)
			}

			deleted, err := j.recentGameRepo.TrimUser(ctx, tx, uid, models.MaxRecentGames)
			if err != nil {
				return log.Err("failed to trim user history", err, "uid", uid)
			}
			trimmed += deleted
		}

		return nil
	})
	if err != nil {
		return err
	}

	if trimmed > 0 {
		log.Info("Trimmed excess recent game entries", "entries", trimmed)
	}

	return nil
}
