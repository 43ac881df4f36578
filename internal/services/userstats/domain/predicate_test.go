package domain

import (
	"errors"
	"testing"
	"time"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func TestCompileTimeWindows(t *testing.T) {
	after := ts(t, "2024-01-07T00:00:00Z")
	before := ts(t, "2024-05-07T00:00:00Z")

	tests := []struct {
		name       string
		window     TimeWindow
		wantClause string
		wantArgs   int
	}{
		{
			name:       "both bounds",
			window:     TimeWindow{After: &after, Before: &before},
			wantClause: "created_at BETWEEN $1 AND $2",
			wantArgs:   2,
		},
		{
			name:       "lower bound only",
			window:     TimeWindow{After: &after},
			wantClause: "created_at >= $1",
			wantArgs:   1,
		},
		{
			name:       "upper bound only",
			window:     TimeWindow{Before: &before},
			wantClause: "created_at <= $1",
			wantArgs:   1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			filter, err := Compile(PredicateSet{
				TimeWindows: map[string]TimeWindow{"created_at": tc.window},
			})
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if filter.Clause != tc.wantClause {
				t.Fatalf("expected clause %q, got %q", tc.wantClause, filter.Clause)
			}
			if len(filter.Args) != tc.wantArgs {
				t.Fatalf("expected %d args, got %d", tc.wantArgs, len(filter.Args))
			}
		})
	}
}

func TestCompileRejectsEmptyWindow(t *testing.T) {
	_, err := Compile(PredicateSet{
		TimeWindows: map[string]TimeWindow{"created_at": {}},
	})
	if !errors.Is(err, ErrEmptyWindow) {
		t.Fatalf("expected ErrEmptyWindow, got %v", err)
	}
}

func TestCompileRejectsUnknownColumns(t *testing.T) {
	after := ts(t, "2024-01-07T00:00:00Z")

	_, err := Compile(PredicateSet{
		TimeWindows: map[string]TimeWindow{"email; DROP TABLE user_stats": {After: &after}},
	})
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn for time column, got %v", err)
	}

	_, err = Compile(PredicateSet{
		IDSets: map[string][]int64{"name": {1}},
	})
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn for id column, got %v", err)
	}
}

func TestCompileIDSets(t *testing.T) {
	filter, err := Compile(PredicateSet{
		IDSets: map[string][]int64{"viewed_but_not_started": {252790}},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if filter.Clause != "viewed_but_not_started @> $1" {
		t.Fatalf("unexpected clause %q", filter.Clause)
	}
	ids, ok := filter.Args[0].([]int64)
	if !ok || len(ids) != 1 || ids[0] != 252790 {
		t.Fatalf("unexpected args %v", filter.Args)
	}
}

func TestCompileEmptyIDSetIsNoOp(t *testing.T) {
	filter, err := Compile(PredicateSet{
		IDSets: map[string][]int64{"finished": {}},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if filter.Clause != "TRUE" {
		t.Fatalf("expected always-true clause, got %q", filter.Clause)
	}
	if len(filter.Args) != 0 {
		t.Fatalf("expected no args, got %v", filter.Args)
	}
}

func TestCompileEmptyPredicateSet(t *testing.T) {
	filter, err := Compile(PredicateSet{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if filter.Clause != "TRUE" {
		t.Fatalf("expected TRUE, got %q", filter.Clause)
	}
}

func TestCompileDeterministicConjunction(t *testing.T) {
	after := ts(t, "2024-01-07T00:00:00Z")
	before := ts(t, "2024-05-07T00:00:00Z")
	set := PredicateSet{
		TimeWindows: map[string]TimeWindow{
			"last_visited_at": {After: &after, Before: &before},
			"created_at":      {After: &after, Before: &before},
		},
		IDSets: map[string][]int64{
			"viewed_but_not_started": {252790},
			"finished":               {7, 8},
		},
	}

	want := "created_at BETWEEN $1 AND $2 AND last_visited_at BETWEEN $3 AND $4" +
		" AND finished @> $5 AND viewed_but_not_started @> $6"
	for range 10 {
		filter, err := Compile(set)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		if filter.Clause != want {
			t.Fatalf("expected stable clause %q, got %q", want, filter.Clause)
		}
		if len(filter.Args) != 6 {
			t.Fatalf("expected 6 args, got %d", len(filter.Args))
		}
	}
}

func TestCompileNormalizesBoundsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	after := time.Date(2024, 5, 7, 8, 0, 0, 0, loc)

	filter, err := Compile(PredicateSet{
		TimeWindows: map[string]TimeWindow{"created_at": {After: &after}},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	bound, ok := filter.Args[0].(time.Time)
	if !ok {
		t.Fatalf("expected time argument, got %T", filter.Args[0])
	}
	if bound.Location() != time.UTC {
		t.Fatalf("expected UTC bound, got %v", bound.Location())
	}
	if !bound.Equal(after) {
		t.Fatalf("UTC normalization changed the instant: %v vs %v", bound, after)
	}
}
