// Package postgres implements the behavior-table query executor over a
// pgx connection pool.
package postgres

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/crmspace/crm/internal/services/userstats/domain"
)

const (
	userStatsTable  = "user_stats"
	userProjection  = "email, name"
	queryTextFormat = "SELECT %s FROM %s WHERE %s"
)

// Store executes read-only queries against the user_stats table.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New creates a Store over an established pool.
func New(pool *pgxpool.Pool, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{pool: pool, logger: logger}
}

// QueryUsers executes a compiled filter and streams matching rows. The
// returned iterator holds one pooled connection until Close.
func (s *Store) QueryUsers(ctx context.Context, filter domain.Filter) (domain.UserIterator, error) {
	queryText := fmt.Sprintf(queryTextFormat, userProjection, userStatsTable, filter.Clause)
	s.logger.Debug("behavior query", zap.String("sql", queryText))

	rows, err := s.pool.Query(ctx, queryText, filter.Args...)
	if err != nil {
		return nil, fmt.Errorf("query user_stats: %w", err)
	}
	return &rowIterator{rows: rows}, nil
}

// RawQueryUsers echoes a caller-supplied filter expression directly into
// the query text. The expression is not validated or escaped; this path
// is restricted to diagnostics.
func (s *Store) RawQueryUsers(ctx context.Context, expression string) (domain.UserIterator, error) {
	queryText := fmt.Sprintf(queryTextFormat, userProjection, userStatsTable, expression)
	s.logger.Warn("raw behavior query", zap.String("sql", queryText))

	rows, err := s.pool.Query(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("raw query user_stats: %w", err)
	}
	return &rowIterator{rows: rows}, nil
}

type rowIterator struct {
	rows pgx.Rows
}

func (it *rowIterator) Next(ctx context.Context) (domain.User, error) {
	if ctx.Err() != nil {
		it.Close()
		return domain.User{}, ctx.Err()
	}
	if !it.rows.Next() {
		defer it.Close()
		if err := it.rows.Err(); err != nil {
			return domain.User{}, fmt.Errorf("stream user_stats rows: %w", err)
		}
		return domain.User{}, io.EOF
	}
	var user domain.User
	if err := it.rows.Scan(&user.Email, &user.Name); err != nil {
		it.Close()
		return domain.User{}, fmt.Errorf("scan user_stats row: %w", err)
	}
	return user, nil
}

func (it *rowIterator) Close() {
	it.rows.Close()
}
