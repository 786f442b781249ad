package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/didi/gendry/builder"

	"github.com/campusmitra/portal/internal/model"
	"github.com/campusmitra/portal/internal/pkg/dbutil"
)

var exchangeFields = []string{
	"id", "user_id", "session_id", "message", "response", "language",
	"confidence", "response_time_ms", "is_from_retrieval", "context",
	"ctime", "mtime",
}

type ExchangeRepo struct {
	db *sql.DB
}

func NewExchangeRepo(db *sql.DB) *ExchangeRepo {
	return &ExchangeRepo{db: db}
}

func (r *ExchangeRepo) Create(ctx context.Context, exchange *model.ChatExchange) error {
	contextJSON, err := json.Marshal(exchange.Context)
	if err != nil {
		return err
	}
	fromRetrieval := 0
	if exchange.IsFromRetrieval {
		fromRetrieval = 1
	}
	data := map[string]interface{}{
		"id":                exchange.ID,
		"user_id":           exchange.UserID,
		"session_id":        exchange.SessionID,
		"message":           exchange.Message,
		"response":          exchange.Response,
		"language":          exchange.Language,
		"confidence":        exchange.Confidence,
		"response_time_ms":  exchange.ResponseTimeMs,
		"is_from_retrieval": fromRetrieval,
		"context":           string(contextJSON),
		"ctime":             exchange.Ctime,
		"mtime":             exchange.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("chat_exchanges", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ListByUser returns exchanges in creation-time ascending order, optionally
// scoped to one session.
func (r *ExchangeRepo) ListByUser(ctx context.Context, userID, sessionID string, limit, offset uint) ([]*model.ChatExchange, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime asc",
		"_limit":   []uint{offset, limit},
	}
	if sessionID != "" {
		where["session_id"] = sessionID
	}
	sqlStr, args, err := builder.BuildSelect("chat_exchanges", where, exchangeFields)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []*model.ChatExchange
	for rows.Next() {
		item, err := scanExchange(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ExchangeRepo) CountByUser(ctx context.Context, userID, sessionID string) (int64, error) {
	where := map[string]interface{}{"user_id": userID}
	if sessionID != "" {
		where["session_id"] = sessionID
	}
	sqlStr, args, err := builder.BuildSelect("chat_exchanges", where, []string{"count(*)"})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	var count int64
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByUser removes the caller's exchanges, optionally only within one
// session, and reports how many records went away.
func (r *ExchangeRepo) DeleteByUser(ctx context.Context, userID, sessionID string) (int64, error) {
	where := map[string]interface{}{"user_id": userID}
	if sessionID != "" {
		where["session_id"] = sessionID
	}
	sqlStr, args, err := builder.BuildDelete("chat_exchanges", where)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ExchangeRepo) DeleteAnonymousBefore(ctx context.Context, cutoff int64) (int64, error) {
	where := map[string]interface{}{
		"user_id": model.AnonymousUserID,
		"ctime <": cutoff,
	}
	sqlStr, args, err := builder.BuildDelete("chat_exchanges", where)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type ExchangeAggregates struct {
	TotalMessages     int64   `json:"total_messages"`
	AvgConfidence     float64 `json:"avg_confidence"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
	DistinctUsers     int64   `json:"distinct_users"`
	DistinctSessions  int64   `json:"distinct_sessions"`
}

func (r *ExchangeRepo) Aggregates(ctx context.Context, start, end int64) (*ExchangeAggregates, error) {
	query := `SELECT COUNT(*),
		COALESCE(AVG(confidence), 0),
		COALESCE(AVG(response_time_ms), 0),
		COUNT(DISTINCT user_id),
		COUNT(DISTINCT session_id)
	FROM chat_exchanges WHERE ctime >= ? AND ctime <= ?`
	var agg ExchangeAggregates
	err := r.db.QueryRowContext(ctx, query, start, end).Scan(
		&agg.TotalMessages, &agg.AvgConfidence, &agg.AvgResponseTimeMs,
		&agg.DistinctUsers, &agg.DistinctSessions,
	)
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *ExchangeRepo) CountByLanguage(ctx context.Context, start, end int64) (map[string]int64, error) {
	query := `SELECT language, COUNT(*) FROM chat_exchanges
	WHERE ctime >= ? AND ctime <= ? GROUP BY language`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := make(map[string]int64)
	for rows.Next() {
		var language string
		var count int64
		if err := rows.Scan(&language, &count); err != nil {
			return nil, err
		}
		out[language] = count
	}
	return out, rows.Err()
}

type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

func (r *ExchangeRepo) CountByDay(ctx context.Context, start, end int64) ([]DayCount, error) {
	query := `SELECT date(ctime / 1000, 'unixepoch'), COUNT(*) FROM chat_exchanges
	WHERE ctime >= ? AND ctime <= ? GROUP BY 1 ORDER BY 1`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

func scanExchange(rows *sql.Rows) (*model.ChatExchange, error) {
	var item model.ChatExchange
	var fromRetrieval int
	var contextJSON string
	if err := rows.Scan(
		&item.ID, &item.UserID, &item.SessionID, &item.Message, &item.Response,
		&item.Language, &item.Confidence, &item.ResponseTimeMs, &fromRetrieval,
		&contextJSON, &item.Ctime, &item.Mtime,
	); err != nil {
		return nil, err
	}
	item.IsFromRetrieval = fromRetrieval != 0
	if contextJSON != "" {
		if err := json.Unmarshal([]byte(contextJSON), &item.Context); err != nil {
			return nil, err
		}
	}
	return &item, nil
}
