package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/campusmitra/portal/internal/chat"
	"github.com/campusmitra/portal/internal/model"
	appErr "github.com/campusmitra/portal/internal/pkg/errors"
	"github.com/campusmitra/portal/internal/repo"
)

const (
	maxMessageChars = 1000
	maxHistoryLimit = 100

	greetingConfidence = 0.9
	// Zero snippets still score 0.3: the assistant never claims total
	// ignorance, only low confidence.
	baseConfidence       = 0.3
	perSnippetConfidence = 0.2
	maxConfidence        = 0.9
	errorConfidence      = 0.1
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// AssistService orchestrates one chat turn: resolve language, short-circuit
// greetings, retrieve and compose, persist the exchange, answer.
type AssistService struct {
	detector  *chat.Detector
	store     *chat.Store
	retriever *chat.Retriever
	composer  *chat.Composer
	exchanges *repo.ExchangeRepo
}

func NewAssistService(detector *chat.Detector, store *chat.Store, retriever *chat.Retriever, composer *chat.Composer, exchanges *repo.ExchangeRepo) *AssistService {
	return &AssistService{
		detector:  detector,
		store:     store,
		retriever: retriever,
		composer:  composer,
		exchanges: exchanges,
	}
}

type AskInput struct {
	UserID    string
	Message   string
	Language  string
	SessionID string
}

type AskResult struct {
	Success      bool     `json:"success"`
	Response     string   `json:"response"`
	Language     string   `json:"language"`
	Confidence   float64  `json:"confidence"`
	ResponseTime int64    `json:"response_time"`
	SessionID    string   `json:"session_id"`
	Timestamp    int64    `json:"timestamp"`
	Sources      []string `json:"sources"`
}

func (s *AssistService) Ask(ctx context.Context, in AskInput) (*AskResult, error) {
	message := strings.TrimSpace(in.Message)
	if err := validateAsk(message, in.Language, in.SessionID); err != nil {
		return nil, err
	}
	start := time.Now()

	userID := in.UserID
	if userID == "" {
		userID = model.AnonymousUserID
	}
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = newSessionID()
	}

	lang := chat.Language(in.Language)
	if in.Language == "" {
		lang = s.detector.Detect(message).Language
	}

	answer, confidence, contexts, sources, fromRetrieval := s.answer(ctx, message, lang)

	now := time.Now().UnixMilli()
	exchange := &model.ChatExchange{
		ID:              newID(),
		UserID:          userID,
		SessionID:       sessionID,
		Message:         message,
		Response:        answer,
		Language:        string(lang),
		Confidence:      confidence,
		ResponseTimeMs:  time.Since(start).Milliseconds(),
		IsFromRetrieval: fromRetrieval,
		Context:         contexts,
		Ctime:           now,
		Mtime:           now,
	}
	// Persistence is the one failure the caller sees: a response without a
	// durable record would break the history contract.
	if err := s.exchanges.Create(ctx, exchange); err != nil {
		logutil.GetLogger(ctx).Error("persist chat exchange failed", zap.Error(err))
		return nil, err
	}

	return &AskResult{
		Success:      true,
		Response:     answer,
		Language:     string(lang),
		Confidence:   confidence,
		ResponseTime: exchange.ResponseTimeMs,
		SessionID:    sessionID,
		Timestamp:    now,
		Sources:      sources,
	}, nil
}

// answer runs the greeting/retrieval/composition stages. Any panic escaping
// them degrades to the technical-difficulty message; nothing propagates.
func (s *AssistService) answer(ctx context.Context, message string, lang chat.Language) (answer string, confidence float64, contexts, sources []string, fromRetrieval bool) {
	contexts = []string{}
	sources = []string{}
	defer func() {
		if r := recover(); r != nil {
			logutil.GetLogger(ctx).Error("chat pipeline failure", zap.Any("reason", r))
			answer = chat.TechnicalDifficultyMessage(lang)
			confidence = errorConfidence
		}
	}()

	if chat.IsGreeting(message) {
		return chat.GreetingMessage(lang), greetingConfidence, contexts, sources, false
	}

	fromRetrieval = true
	chunks := s.retriever.Search(message, lang)
	for _, chunk := range chunks {
		contexts = append(contexts, chunk.Content)
		sources = append(sources, chunk.Category)
	}
	answer = s.composer.Compose(ctx, message, contexts, lang)
	confidence = baseConfidence + perSnippetConfidence*float64(len(chunks))
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return answer, confidence, contexts, sources, true
}

func validateAsk(message, language, sessionID string) error {
	if message == "" {
		return appErr.Validation("message", "message is required")
	}
	if len([]rune(message)) > maxMessageChars {
		return appErr.Validation("message", "message must be at most 1000 characters")
	}
	if language != "" && !chat.ValidLanguage(language) {
		return appErr.Validation("language", "unsupported language code")
	}
	if sessionID != "" && !sessionIDPattern.MatchString(sessionID) {
		return appErr.Validation("session_id", "invalid session id format")
	}
	return nil
}

type HistoryPage struct {
	Items        []*model.ChatExchange `json:"items"`
	CurrentPage  int                   `json:"current_page"`
	TotalPages   int                   `json:"total_pages"`
	TotalItems   int64                 `json:"total_items"`
	ItemsPerPage int                   `json:"items_per_page"`
	HasNext      bool                  `json:"has_next"`
	HasPrev      bool                  `json:"has_prev"`
}

func (s *AssistService) History(ctx context.Context, userID, sessionID string, page, limit int) (*HistoryPage, error) {
	if sessionID != "" && !sessionIDPattern.MatchString(sessionID) {
		return nil, appErr.Validation("session_id", "invalid session id format")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	total, err := s.exchanges.CountByUser(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	offset := uint(page-1) * uint(limit)
	items, err := s.exchanges.ListByUser(ctx, userID, sessionID, uint(limit), offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.ChatExchange{}
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &HistoryPage{
		Items:        items,
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasNext:      page < totalPages,
		HasPrev:      page > 1 && totalPages > 0,
	}, nil
}

func (s *AssistService) ClearHistory(ctx context.Context, userID, sessionID string) (int64, error) {
	if sessionID != "" && !sessionIDPattern.MatchString(sessionID) {
		return 0, appErr.Validation("session_id", "invalid session id format")
	}
	return s.exchanges.DeleteByUser(ctx, userID, sessionID)
}

type AssistAnalytics struct {
	StartTime  int64                   `json:"start_time"`
	EndTime    int64                   `json:"end_time"`
	Totals     repo.ExchangeAggregates `json:"totals"`
	ByLanguage map[string]int64        `json:"by_language"`
	ByDay      []repo.DayCount         `json:"by_day"`
	Documents  chat.Stats              `json:"documents"`
}

func (s *AssistService) Analytics(ctx context.Context, start, end int64) (*AssistAnalytics, error) {
	if end <= 0 {
		end = time.Now().UnixMilli()
	}
	if start < 0 || start > end {
		return nil, appErr.Validation("start_date", "invalid date range")
	}
	totals, err := s.exchanges.Aggregates(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byLanguage, err := s.exchanges.CountByLanguage(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byDay, err := s.exchanges.CountByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if byDay == nil {
		byDay = []repo.DayCount{}
	}
	return &AssistAnalytics{
		StartTime:  start,
		EndTime:    end,
		Totals:     *totals,
		ByLanguage: byLanguage,
		ByDay:      byDay,
		Documents:  s.store.Stats(),
	}, nil
}

func (s *AssistService) Languages() []chat.LanguageInfo {
	return chat.SupportedLanguages()
}

func (s *AssistService) AddDocument(content, language, category string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", appErr.Validation("content", "content is required")
	}
	if !chat.ValidLanguage(language) {
		return "", appErr.Validation("language", "unsupported language code")
	}
	return s.store.Add(content, chat.Language(language), strings.TrimSpace(category)), nil
}

func (s *AssistService) DocumentStats() chat.Stats {
	return s.store.Stats()
}
