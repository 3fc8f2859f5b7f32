package logsController

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "galhub/internal/models"
	"galhub/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
)

const (
	MaxBatchSize     = 100
	MaxMessageLength = 2000
)

var ErrValidation = errors.New("validation error")

var allowedLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

type LogsController struct {
	clientLogRepo repositories.ClientLogRepository
}

type LogEntryRequest struct {
	Level    string         `json:"level"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
	LoggedAt string         `json:"loggedAt"`
}

type LogBatchRequest struct {
	SessionID string            `json:"sessionId"`
	Logs      []LogEntryRequest `json:"logs"`
}

type LogBatchResponse struct {
	Success   bool `json:"success"`
	Processed int  `json:"processed"`
}

type LogsControllerInterface interface {
	ProcessLogBatch(ctx context.Context, user *User, request *LogBatchRequest) (*LogBatchResponse, error)
}

func New(repos repositories.Repository) LogsControllerInterface {
	return &LogsController{
		clientLogRepo: repos.ClientLog,
	}
}

func (c *LogsController) ProcessLogBatch(
	ctx context.Context,
	user *User,
	request *LogBatchRequest,
) (*LogBatchResponse, error) {
	log := logger.New("logsController").TraceFromContext(ctx).Function("ProcessLogBatch")

	if len(request.Logs) == 0 {
		return &LogBatchResponse{Success: true, Processed: 0}, nil
	}

	if request.SessionID == "" {
		return nil, log.ErrorWithType(ErrValidation, "session ID is required")
	}

	if len(request.Logs) > MaxBatchSize {
		return nil, log.ErrorWithType(
			ErrValidation,
			"batch exceeds maximum size",
			"count", len(request.Logs),
			"max", MaxBatchSize,
		)
	}

	entries := make([]*ClientLog, 0, len(request.Logs))
	for _, entry := range request.Logs {
		if !allowedLevels[entry.Level] {
			return nil, log.ErrorWithType(ErrValidation, "invalid log level", "level", entry.Level)
		}

		if entry.Message == "" || len(entry.Message) > MaxMessageLength {
			return nil, log.ErrorWithType(ErrValidation, "invalid log message")
		}

		loggedAt := time.Now().UTC()
		if entry.LoggedAt != "" {
			parsed, err := time.Parse(time.RFC3339, entry.LoggedAt)
			if err != nil {
				return nil, log.ErrorWithType(
					ErrValidation,
					"invalid loggedAt, expected RFC3339",
					"loggedAt", entry.LoggedAt,
				)
			}
			loggedAt = parsed
		}

		clientLog := &ClientLog{
			UID:       user.UID,
			SessionID: request.SessionID,
			Level:     entry.Level,
			Message:   entry.Message,
			LoggedAt:  loggedAt,
		}

		if entry.Metadata != nil {
			metadataJSON, err := json.Marshal(entry.Metadata)
			if err != nil {
				return nil, log.ErrorWithType(ErrValidation, "metadata is not serializable")
			}
			clientLog.Metadata = datatypes.JSON(metadataJSON)
		}

		entries = append(entries, clientLog)
	}

	if err := c.clientLogRepo.CreateBatch(ctx, entries); err != nil {
		return nil, err
	}

	return &LogBatchResponse{
		Success:   true,
		Processed: len(entries),
	}, nil
}
