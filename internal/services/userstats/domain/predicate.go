// Package domain implements the predicate compiler for behavior-store
// queries: structured time-window and id-set constraints are rendered
// into one parameterized conjunctive filter.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	// ErrEmptyWindow rejects a time window with neither bound set.
	ErrEmptyWindow = errors.New("time window requires at least one bound")
	// ErrUnknownColumn rejects a predicate naming a column outside the
	// behavior-table schema. Column names are interpolated into the
	// filter text, so the allowlist is what keeps the trusted path free
	// of injection.
	ErrUnknownColumn = errors.New("unknown behavior column")
)

// Behavior-table timestamp columns accepted in time-window predicates.
var timeColumns = map[string]bool{
	"created_at":               true,
	"last_visited_at":          true,
	"last_watched_at":          true,
	"last_email_notification":  true,
	"last_in_app_notification": true,
	"last_sms_notification":    true,
}

// Behavior-table array columns accepted in id-set predicates.
var idColumns = map[string]bool{
	"recent_watched":           true,
	"viewed_but_not_started":   true,
	"started_but_not_finished": true,
	"finished":                 true,
}

// TimeWindow bounds a timestamp column inclusively. At least one bound
// must be present.
type TimeWindow struct {
	After  *time.Time
	Before *time.Time
}

// PredicateSet combines named time-window and id-set constraints. All
// predicates are conjunctive. An empty id set places no restriction.
type PredicateSet struct {
	TimeWindows map[string]TimeWindow
	IDSets      map[string][]int64
}

// Filter is one compiled, parameterized filter expression. Clause uses
// positional placeholders ($1, $2, ...) resolved by Args.
type Filter struct {
	Clause string
	Args   []any
}

// Compile renders a predicate set into a parameterized filter. Rendering
// order is deterministic: time-window columns in lexical order, then
// id-set columns in lexical order, so compiled filter text is stable for
// a given predicate set. An empty predicate set compiles to TRUE.
func Compile(set PredicateSet) (Filter, error) {
	var (
		clauses []string
		args    []any
	)

	for _, col := range sortedKeys(set.TimeWindows) {
		if !timeColumns[col] {
			return Filter{}, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
		window := set.TimeWindows[col]
		clause, windowArgs, err := renderWindow(col, window, len(args))
		if err != nil {
			return Filter{}, err
		}
		clauses = append(clauses, clause)
		args = append(args, windowArgs...)
	}

	for _, col := range sortedKeys(set.IDSets) {
		if !idColumns[col] {
			return Filter{}, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
		ids := set.IDSets[col]
		if len(ids) == 0 {
			// No restriction; renders to an always-true clause so the
			// conjunction stays well formed.
			clauses = append(clauses, "TRUE")
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s @> $%d", col, len(args)+1))
		args = append(args, ids)
	}

	if len(clauses) == 0 {
		return Filter{Clause: "TRUE"}, nil
	}
	return Filter{Clause: strings.Join(clauses, " AND "), Args: args}, nil
}

func renderWindow(col string, window TimeWindow, argOffset int) (string, []any, error) {
	switch {
	case window.After != nil && window.Before != nil:
		clause := fmt.Sprintf("%s BETWEEN $%d AND $%d", col, argOffset+1, argOffset+2)
		return clause, []any{window.After.UTC(), window.Before.UTC()}, nil
	case window.After != nil:
		return fmt.Sprintf("%s >= $%d", col, argOffset+1), []any{window.After.UTC()}, nil
	case window.Before != nil:
		return fmt.Sprintf("%s <= $%d", col, argOffset+1), []any{window.Before.UTC()}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrEmptyWindow, col)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
