package service

import (
	"context"
	"encoding/json"

	"tindapos/internal/dto"
	"tindapos/internal/repository"
)

// LogService exposes the system event log to admins.
type LogService interface {
	List(ctx context.Context, filter dto.SystemLogFilter) (*dto.SystemLogListResponse, error)
}

type logService struct {
	logs repository.SystemLogRepository
}

func NewLogService(logs repository.SystemLogRepository) LogService {
	return &logService{logs: logs}
}

func (s *logService) List(ctx context.Context, filter dto.SystemLogFilter) (*dto.SystemLogListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	entries, total, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.SystemLogListResponse{
		Data:  make([]dto.SystemLogResponse, 0, len(entries)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range entries {
		e := &entries[i]
		item := dto.SystemLogResponse{
			ID:        e.ID.String(),
			Level:     e.Level,
			Module:    e.Module,
			Action:    e.Action,
			Message:   e.Message,
			IPAddress: e.IPAddress,
			CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if e.UserID != nil {
			id := e.UserID.String()
			item.UserID = &id
		}
		if e.User != nil {
			item.UserName = e.User.Name
		}
		if len(e.Meta) > 0 {
			item.Meta = json.RawMessage(e.Meta)
		}
		resp.Data = append(resp.Data, item)
	}
	return resp, nil
}
