package domain

import "context"

// User is one matched behavior-table row, projected to the fields the
// query surface returns.
type User struct {
	Email string
	Name  string
}

// UserIterator streams matched rows lazily. Next returns io.EOF once the
// stream is exhausted. Close releases the underlying connection and is
// safe to call more than once.
type UserIterator interface {
	Next(ctx context.Context) (User, error)
	Close()
}

// Source is the persistence boundary for behavior-table queries.
type Source interface {
	// QueryUsers executes a compiled filter and streams matching rows.
	QueryUsers(ctx context.Context, filter Filter) (UserIterator, error)
	// RawQueryUsers executes a caller-supplied filter expression
	// verbatim. Diagnostic use only: the expression is an injection
	// surface and must never be reachable from untrusted callers.
	RawQueryUsers(ctx context.Context, expression string) (UserIterator, error)
}
