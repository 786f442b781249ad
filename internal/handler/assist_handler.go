package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusmitra/portal/internal/pkg/response"
	"github.com/campusmitra/portal/internal/service"
)

type AssistHandler struct {
	assist *service.AssistService
}

func NewAssistHandler(assist *service.AssistService) *AssistHandler {
	return &AssistHandler{assist: assist}
}

type assistMessageRequest struct {
	Message   string `json:"message"`
	Language  string `json:"language"`
	SessionID string `json:"session_id"`
}

func (h *AssistHandler) Message(c *gin.Context) {
	var req assistMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	result, err := h.assist.Ask(c.Request.Context(), service.AskInput{
		UserID:    getUserID(c),
		Message:   req.Message,
		Language:  req.Language,
		SessionID: req.SessionID,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AssistHandler) History(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	result, err := h.assist.History(c.Request.Context(), getUserID(c), c.Query("session_id"), page, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

type clearHistoryRequest struct {
	SessionID string `json:"session_id"`
}

func (h *AssistHandler) ClearHistory(c *gin.Context) {
	var req clearHistoryRequest
	// An empty body clears everything for the caller.
	_ = c.ShouldBindJSON(&req)
	deleted, err := h.assist.ClearHistory(c.Request.Context(), getUserID(c), req.SessionID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}

func (h *AssistHandler) Languages(c *gin.Context) {
	response.Success(c, gin.H{"languages": h.assist.Languages()})
}

func (h *AssistHandler) Analytics(c *gin.Context) {
	start, ok := queryDate(c, "start_date", 0)
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid_start_date", "expected YYYY-MM-DD")
		return
	}
	end, ok := queryDate(c, "end_date", 0)
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid_end_date", "expected YYYY-MM-DD")
		return
	}
	if end > 0 {
		// Make the end date inclusive.
		end += int64(24*time.Hour/time.Millisecond) - 1
	}
	result, err := h.assist.Analytics(c.Request.Context(), start, end)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

type addDocumentRequest struct {
	Content  string `json:"content"`
	Language string `json:"language"`
	Category string `json:"category"`
}

func (h *AssistHandler) AddDocument(c *gin.Context) {
	var req addDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	id, err := h.assist.AddDocument(req.Content, req.Language, req.Category)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (h *AssistHandler) DocumentStats(c *gin.Context) {
	response.Success(c, h.assist.DocumentStats())
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value := c.Query(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func queryDate(c *gin.Context, key string, fallback int64) (int64, bool) {
	value := c.Query(key)
	if value == "" {
		return fallback, true
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return 0, false
	}
	return parsed.UnixMilli(), true
}
