package handler

import (
	"net/http"

	"tindapos/internal/dto"
	"tindapos/internal/service"

	"github.com/gin-gonic/gin"
)

type LogHandler struct {
	logs service.LogService
}

func NewLogHandler(logs service.LogService) *LogHandler {
	return &LogHandler{logs: logs}
}

// List godoc
// @Summary  Browse system event logs
// @Tags     logs
// @Security BearerAuth
// @Router   /logs [get]
func (h *LogHandler) List(c *gin.Context) {
	var filter dto.SystemLogFilter
	if !bindQuery(c, &filter) {
		return
	}

	resp, err := h.logs.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
