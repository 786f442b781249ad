package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/campusmitra/portal/internal/model"
	"github.com/campusmitra/portal/internal/pkg/dbutil"
	appErr "github.com/campusmitra/portal/internal/pkg/errors"
)

var announcementFields = []string{
	"id", "author_id", "title", "content", "category", "attachment_url",
	"pinned", "ctime", "mtime",
}

type AnnouncementRepo struct {
	db *sql.DB
}

func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo {
	return &AnnouncementRepo{db: db}
}

func (r *AnnouncementRepo) Create(ctx context.Context, item *model.Announcement) error {
	data := map[string]interface{}{
		"id":             item.ID,
		"author_id":      item.AuthorID,
		"title":          item.Title,
		"content":        item.Content,
		"category":       item.Category,
		"attachment_url": item.AttachmentURL,
		"pinned":         item.Pinned,
		"ctime":          item.Ctime,
		"mtime":          item.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("announcements", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *AnnouncementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("announcements", where, announcementFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanAnnouncement(rows)
}

func (r *AnnouncementRepo) List(ctx context.Context, category string, limit, offset uint) ([]*model.Announcement, error) {
	where := map[string]interface{}{
		"_orderby": "pinned desc, ctime desc",
	}
	if category != "" {
		where["category"] = category
	}
	if limit > 0 {
		where["_limit"] = []uint{offset, limit}
	}
	sqlStr, args, err := builder.BuildSelect("announcements", where, announcementFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []*model.Announcement
	for rows.Next() {
		item, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *AnnouncementRepo) Update(ctx context.Context, id string, update map[string]interface{}) error {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildUpdate("announcements", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *AnnouncementRepo) Delete(ctx context.Context, id string) error {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildDelete("announcements", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func scanAnnouncement(rows *sql.Rows) (*model.Announcement, error) {
	var item model.Announcement
	if err := rows.Scan(
		&item.ID, &item.AuthorID, &item.Title, &item.Content, &item.Category,
		&item.AttachmentURL, &item.Pinned, &item.Ctime, &item.Mtime,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
