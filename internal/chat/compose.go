package chat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/campusmitra/portal/internal/ai"
)

// Composer turns retrieved snippets into an answer. The generative call is
// best-effort: any failure degrades to the deterministic template and never
// reaches the caller.
type Composer struct {
	generator ai.IGenerator
	cache     *expirable.LRU[string, string]
}

func NewComposer(generator ai.IGenerator) *Composer {
	return &Composer{
		generator: generator,
		cache:     expirable.NewLRU[string, string](1024, nil, 2*time.Hour),
	}
}

func (c *Composer) Compose(ctx context.Context, query string, snippets []string, lang Language) (answer string) {
	defer func() {
		if r := recover(); r != nil {
			logutil.GetLogger(ctx).Error("composer panicked", zap.Any("reason", r))
			answer = TechnicalDifficultyMessage(lang)
		}
	}()

	if len(snippets) == 0 {
		return NoInfoMessage(lang)
	}
	if c.generator != nil {
		prompt := buildPrompt(query, snippets)
		key := cacheKey(prompt, lang)
		if cached, ok := c.cache.Get(key); ok {
			return cached
		}
		text, err := c.generator.Generate(ctx, prompt)
		if err != nil {
			logutil.GetLogger(ctx).Warn("generative composition failed, using template", zap.Error(err))
		} else if text != "" {
			c.cache.Add(key, text)
			return text
		}
	}
	// Only the strongest snippet is surfaced in the template answer; the full
	// context list is still persisted with the exchange.
	return AnswerPrefix(lang) + snippets[0]
}

func buildPrompt(query string, snippets []string) string {
	var b strings.Builder
	b.WriteString("Context: ")
	b.WriteString(strings.Join(snippets, "\n\n"))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(query)
	b.WriteString("\n\nAnswer:")
	return b.String()
}

func cacheKey(prompt string, lang Language) string {
	hash := sha256.Sum256([]byte(string(lang) + ":" + prompt))
	return hex.EncodeToString(hash[:])
}
