package model

// AnonymousUserID is the sentinel principal for unauthenticated chat turns.
const AnonymousUserID = "anonymous"

// ChatExchange is one persisted turn of the campus assistant. Sessions have
// no entity of their own; SessionID is only a grouping key over exchanges.
type ChatExchange struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	SessionID       string   `json:"session_id"`
	Message         string   `json:"message"`
	Response        string   `json:"response"`
	Language        string   `json:"language"`
	Confidence      float64  `json:"confidence"`
	ResponseTimeMs  int64    `json:"response_time_ms"`
	IsFromRetrieval bool     `json:"is_from_retrieval"`
	Context         []string `json:"context"`
	Ctime           int64    `json:"ctime"`
	Mtime           int64    `json:"mtime"`
}
