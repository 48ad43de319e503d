package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/getmentor/mentorship-portal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogsHandler accepts log batches from the portal's pages and appends them as
// JSON lines to a dedicated sink (a rotating frontend.log in production)
type LogsHandler struct {
	sink io.Writer
	mu   sync.Mutex
}

type LogEntry struct {
	Timestamp string         `json:"timestamp" binding:"max=64"`
	Level     string         `json:"level" binding:"required,oneof=debug info warn error"`
	Message   string         `json:"message" binding:"required,max=2000"`
	Context   map[string]any `json:"context,omitempty"`
}

type LogBatchRequest struct {
	Logs []LogEntry `json:"logs" binding:"required,max=100,dive"`
}

func NewLogsHandler(sink io.Writer) *LogsHandler {
	return &LogsHandler{sink: sink}
}

// ReceiveFrontendLogs handles POST /api/v1/logs
func (h *LogsHandler) ReceiveFrontendLogs(c *gin.Context) {
	var req LogBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", ParseValidationErrors(err), err)
		return
	}

	if len(req.Logs) == 0 {
		respondError(c, http.StatusBadRequest, "No logs provided", nil)
		return
	}

	if err := h.write(req.Logs); err != nil {
		logger.LogError(err, "Failed to write frontend logs", zap.Int("count", len(req.Logs)))
		respondError(c, http.StatusInternalServerError, "Failed to write logs", err)
		return
	}

	logger.Debug("Received frontend logs", zap.Int("count", len(req.Logs)))
	c.JSON(http.StatusOK, gin.H{"success": true, "received": len(req.Logs)})
}

func (h *LogsHandler) write(logs []LogEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	encoder := json.NewEncoder(h.sink)
	for _, entry := range logs {
		line := make(map[string]any, len(entry.Context)+4)
		for k, v := range entry.Context {
			line[k] = v
		}
		// reserved keys win over context fields
		line["ts"] = entry.Timestamp
		line["level"] = entry.Level
		line["msg"] = entry.Message
		line["service"] = "portal-web"

		if err := encoder.Encode(line); err != nil {
			return fmt.Errorf("failed to encode log entry: %w", err)
		}
	}
	return nil
}
