package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Chunk is one stored unit of retrievable text. Immutable once added.
type Chunk struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Language    Language  `json:"language"`
	Category    string    `json:"category"`
	LastUpdated time.Time `json:"last_updated"`
}

// Store is the append-only in-memory knowledge base. It only grows: there is
// no update or delete, so concurrent scans only race with appends and never
// observe torn entries.
type Store struct {
	mu     sync.RWMutex
	chunks []Chunk
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Add(content string, lang Language, category string) string {
	chunk := Chunk{
		ID:          uuid.NewString(),
		Content:     content,
		Language:    lang,
		Category:    category,
		LastUpdated: time.Now(),
	}
	s.mu.Lock()
	s.chunks = append(s.chunks, chunk)
	s.mu.Unlock()
	return chunk.ID
}

// ByLanguage returns a snapshot of all chunks tagged with lang, in insertion
// order.
func (s *Store) ByLanguage(lang Language) []Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Chunk
	for _, chunk := range s.chunks {
		if chunk.Language == lang {
			out = append(out, chunk)
		}
	}
	return out
}

type Stats struct {
	Total      int              `json:"total"`
	ByLanguage map[Language]int `json:"by_language"`
	ByCategory map[string]int   `json:"by_category"`
}

// Stats recomputes the aggregate on every call; the corpus is small enough
// that caching would not pay for itself.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := Stats{
		Total:      len(s.chunks),
		ByLanguage: make(map[Language]int),
		ByCategory: make(map[string]int),
	}
	for _, chunk := range s.chunks {
		stats.ByLanguage[chunk.Language]++
		stats.ByCategory[chunk.Category]++
	}
	return stats
}
