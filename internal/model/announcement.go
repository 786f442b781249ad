package model

type Announcement struct {
	ID            string `json:"id"`
	AuthorID      string `json:"author_id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	ContentHTML   string `json:"content_html,omitempty"`
	Category      string `json:"category"`
	AttachmentURL string `json:"attachment_url,omitempty"`
	Pinned        int    `json:"pinned"`
	Ctime         int64  `json:"ctime"`
	Mtime         int64  `json:"mtime"`
}
