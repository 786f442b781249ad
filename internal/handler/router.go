package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusmitra/portal/internal/middleware"
	"github.com/campusmitra/portal/internal/model"
)

type RouterDeps struct {
	Auth          *AuthHandler
	Announcements *AnnouncementHandler
	Assist        *AssistHandler
	Files         *FileHandler
	JWTSecret     []byte
	ChatRateLimit time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/logout", deps.Auth.Logout)

	api.GET("/assist/languages", deps.Assist.Languages)
	api.GET("/files/:key", deps.Files.Get)

	// Anonymous visitors can chat too, so the message route only picks up
	// identity when a token is present.
	messageGroup := api.Group("")
	messageGroup.Use(middleware.OptionalJWTAuth(deps.JWTSecret))
	if deps.ChatRateLimit > 0 {
		messageGroup.Use(middleware.RateLimit(deps.ChatRateLimit))
	}
	messageGroup.POST("/assist/message", deps.Assist.Message)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.GET("/announcements", deps.Announcements.List)
	authGroup.GET("/announcements/:id", deps.Announcements.Get)
	authGroup.GET("/assist/history", deps.Assist.History)
	authGroup.DELETE("/assist/history", deps.Assist.ClearHistory)

	staffGroup := authGroup.Group("")
	staffGroup.Use(middleware.RequireRoles(model.RoleTeacher, model.RoleAdmin))
	staffGroup.POST("/announcements", deps.Announcements.Create)
	staffGroup.PUT("/announcements/:id", deps.Announcements.Update)
	staffGroup.DELETE("/announcements/:id", deps.Announcements.Delete)
	staffGroup.POST("/files/upload", deps.Files.Upload)

	adminGroup := authGroup.Group("")
	adminGroup.Use(middleware.RequireRoles(model.RoleAdmin))
	adminGroup.GET("/admin/assist/analytics", deps.Assist.Analytics)
	adminGroup.POST("/admin/assist/documents", deps.Assist.AddDocument)
	adminGroup.GET("/admin/assist/documents/stats", deps.Assist.DocumentStats)
}
