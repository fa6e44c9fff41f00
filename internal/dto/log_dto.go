package dto

import "encoding/json"

// SystemLogFilter is bound from the query string of GET /api/logs.
type SystemLogFilter struct {
	Level    string `form:"level"  validate:"omitempty,oneof=debug info warn error audit"`
	Module   string `form:"module"`
	UserID   string `form:"user_id" validate:"omitempty,uuid"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=500"`
}

type SystemLogResponse struct {
	ID        string          `json:"id"`
	Level     string          `json:"level"`
	Module    string          `json:"module"`
	Action    string          `json:"action"`
	Message   string          `json:"message"`
	UserID    *string         `json:"user_id,omitempty"`
	UserName  string          `json:"user_name,omitempty"`
	IPAddress *string         `json:"ip_address,omitempty"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	CreatedAt string          `json:"created_at"`
}

type SystemLogListResponse struct {
	Data  []SystemLogResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
