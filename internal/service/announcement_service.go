package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/campusmitra/portal/internal/model"
	appErr "github.com/campusmitra/portal/internal/pkg/errors"
	"github.com/campusmitra/portal/internal/repo"
)

type AnnouncementService struct {
	announcements *repo.AnnouncementRepo
	markdown      goldmark.Markdown
}

func NewAnnouncementService(announcements *repo.AnnouncementRepo) *AnnouncementService {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	return &AnnouncementService{announcements: announcements, markdown: md}
}

type AnnouncementInput struct {
	Title         string
	Content       string
	Category      string
	AttachmentURL string
	Pinned        bool
}

func (s *AnnouncementService) Create(ctx context.Context, authorID string, in AnnouncementInput) (*model.Announcement, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, appErr.Validation("title", "title is required")
	}
	now := time.Now().UnixMilli()
	pinned := 0
	if in.Pinned {
		pinned = 1
	}
	item := &model.Announcement{
		ID:            newID(),
		AuthorID:      authorID,
		Title:         strings.TrimSpace(in.Title),
		Content:       in.Content,
		Category:      strings.TrimSpace(in.Category),
		AttachmentURL: in.AttachmentURL,
		Pinned:        pinned,
		Ctime:         now,
		Mtime:         now,
	}
	if err := s.announcements.Create(ctx, item); err != nil {
		return nil, err
	}
	item.ContentHTML = s.render(item.Content)
	return item, nil
}

func (s *AnnouncementService) Get(ctx context.Context, id string) (*model.Announcement, error) {
	item, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.ContentHTML = s.render(item.Content)
	return item, nil
}

func (s *AnnouncementService) List(ctx context.Context, category string, limit, offset uint) ([]*model.Announcement, error) {
	items, err := s.announcements.List(ctx, category, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.ContentHTML = s.render(item.Content)
	}
	return items, nil
}

func (s *AnnouncementService) Update(ctx context.Context, callerID, callerRole, id string, in AnnouncementInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return appErr.Validation("title", "title is required")
	}
	existing, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Teachers may only touch their own posts; admins may touch any.
	if callerRole != model.RoleAdmin && existing.AuthorID != callerID {
		return appErr.ErrForbidden
	}
	pinned := 0
	if in.Pinned {
		pinned = 1
	}
	update := map[string]interface{}{
		"title":          strings.TrimSpace(in.Title),
		"content":        in.Content,
		"category":       strings.TrimSpace(in.Category),
		"attachment_url": in.AttachmentURL,
		"pinned":         pinned,
		"mtime":          time.Now().UnixMilli(),
	}
	return s.announcements.Update(ctx, id, update)
}

func (s *AnnouncementService) Delete(ctx context.Context, callerID, callerRole, id string) error {
	existing, err := s.announcements.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if callerRole != model.RoleAdmin && existing.AuthorID != callerID {
		return appErr.ErrForbidden
	}
	return s.announcements.Delete(ctx, id)
}

func (s *AnnouncementService) render(content string) string {
	if content == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return buf.String()
}
