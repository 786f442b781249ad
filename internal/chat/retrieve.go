package chat

import (
	"sort"
	"strings"
)

const defaultRetrieveLimit = 3

// Retriever ranks chunks by raw token overlap. Deliberately a minimal
// heuristic: no stemming, no dedup, no length normalization.
type Retriever struct {
	store *Store
	limit int
}

func NewRetriever(store *Store) *Retriever {
	return &Retriever{store: store, limit: defaultRetrieveLimit}
}

// Search returns up to limit chunks in lang (falling back to the ENGLISH
// subset when lang has no chunks) ordered by descending overlap score.
// Chunks with zero overlapping tokens never appear. Ties keep the store's
// enumeration order.
func (r *Retriever) Search(query string, lang Language) []Chunk {
	candidates := r.store.ByLanguage(lang)
	if len(candidates) == 0 {
		candidates = r.store.ByLanguage(LanguageEnglish)
	}
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		chunk Chunk
		score int
	}
	var matches []scored
	for _, chunk := range candidates {
		content := strings.ToLower(chunk.Content)
		score := 0
		for _, token := range tokens {
			if strings.Contains(content, token) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scored{chunk: chunk, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > r.limit {
		matches = matches[:r.limit]
	}
	out := make([]Chunk, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.chunk)
	}
	return out
}
