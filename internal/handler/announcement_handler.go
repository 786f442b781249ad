package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusmitra/portal/internal/pkg/response"
	"github.com/campusmitra/portal/internal/service"
)

type AnnouncementHandler struct {
	announcements *service.AnnouncementService
}

func NewAnnouncementHandler(announcements *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

type announcementRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Category      string `json:"category"`
	AttachmentURL string `json:"attachment_url"`
	Pinned        bool   `json:"pinned"`
}

func (r announcementRequest) toInput() service.AnnouncementInput {
	return service.AnnouncementInput{
		Title:         r.Title,
		Content:       r.Content,
		Category:      r.Category,
		AttachmentURL: r.AttachmentURL,
		Pinned:        r.Pinned,
	}
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	item, err := h.announcements.Create(c.Request.Context(), getUserID(c), req.toInput())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	limit := uint(0)
	offset := uint(0)
	if value := c.Query("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = uint(parsed)
		}
	}
	if value := c.Query("offset"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			offset = uint(parsed)
		}
	}
	items, err := h.announcements.List(c.Request.Context(), c.Query("category"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *AnnouncementHandler) Get(c *gin.Context) {
	item, err := h.announcements.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	err := h.announcements.Update(c.Request.Context(), getUserID(c), getUserRole(c), c.Param("id"), req.toInput())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	err := h.announcements.Delete(c.Request.Context(), getUserID(c), getUserRole(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
