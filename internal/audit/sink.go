package audit

import (
	"context"
	"encoding/json"

	"tindapos/internal/model"
	"tindapos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// storeSink persists events as system_log rows and mirrors them to the
// process logger. Persistence failures are logged and swallowed: an audit
// write must never surface as a caller error.
type storeSink struct {
	repo repository.SystemLogRepository
	log  zerolog.Logger
}

// NewStoreSink returns an EventSink backed by the system_logs table.
func NewStoreSink(repo repository.SystemLogRepository, log zerolog.Logger) EventSink {
	return &storeSink{repo: repo, log: log}
}

func (s *storeSink) Emit(ctx context.Context, level, module, action, message string, actorID *uuid.UUID, meta map[string]interface{}) {
	entry := &model.SystemLog{
		Level:   level,
		Module:  module,
		Action:  action,
		Message: message,
		UserID:  actorID,
	}
	if addr, ok := OriginFrom(ctx); ok {
		entry.IPAddress = &addr
	}
	if len(meta) > 0 {
		if raw, err := json.Marshal(meta); err == nil {
			entry.Meta = raw
		}
	}

	ev := s.log.WithLevel(zerologLevel(level)).
		Str("module", module).
		Str("action", action)
	if actorID != nil {
		ev = ev.Str("actor_id", actorID.String())
	}
	if len(meta) > 0 {
		ev = ev.Interface("meta", meta)
	}
	ev.Msg(message)

	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).
			Str("module", module).
			Str("action", action).
			Msg("failed to persist system event")
	}
}

func zerologLevel(level string) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		// info and audit both map to info
		return zerolog.InfoLevel
	}
}

// NopSink discards every event. Used in tests and tooling that has no store.
type NopSink struct{}

func (NopSink) Emit(context.Context, string, string, string, string, *uuid.UUID, map[string]interface{}) {
}

var _ EventSink = NopSink{}
