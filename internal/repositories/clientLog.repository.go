package repositories

import (
	"context"

	"galhub/internal/database"
	. "galhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

type ClientLogRepository interface {
	CreateBatch(ctx context.Context, entries []*ClientLog) error
	GetBySession(ctx context.Context, sessionID string, limit int) ([]*ClientLog, error)
}

type clientLogRepository struct {
	db  database.DB
	log logger.Logger
}

func NewClientLogRepository(db database.DB) ClientLogRepository {
	return &clientLogRepository{
		db:  db,
		log: logger.New("clientLogRepository"),
	}
}

func (r *clientLogRepository) CreateBatch(ctx context.Context, entries []*ClientLog) error {
	log := r.log.Function("CreateBatch")

	if len(entries) == 0 {
		return nil
	}

	if err := r.db.SQLWithContext(ctx).Create(&entries).Error; err != nil {
		return log.Err("failed to create client log batch", err, "count", len(entries))
	}

	return nil
}

func (r *clientLogRepository) GetBySession(
	ctx context.Context,
	sessionID string,
	limit int,
) ([]*ClientLog, error) {
	log := r.log.Function("GetBySession")

	entries := []*ClientLog{}
	err := r.db.SQLWithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("logged_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, log.Err("failed to get client logs", err, "sessionID", sessionID)
	}

	return entries, nil
}
