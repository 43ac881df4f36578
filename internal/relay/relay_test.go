package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"
)

func sliceSource[T any](items []T) Source[T] {
	i := 0
	return func() (T, error) {
		if i >= len(items) {
			var zero T
			return zero, io.EOF
		}
		item := items[i]
		i++
		return item, nil
	}
}

func TestRunPreservesOrder(t *testing.T) {
	source := sliceSource([]int{1, 2, 3, 4, 5})
	double := func(_ context.Context, n int) (int, error) { return n * 2, nil }

	out := Run(context.Background(), source, double, Options{})

	var got []int
	for res := range out {
		if res.Err != nil {
			t.Fatalf("unexpected item error: %v", res.Err)
		}
		got = append(got, res.Value)
	}
	want := []int{2, 4, 6, 8, 10}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestRunItemErrorDoesNotEndStream(t *testing.T) {
	source := sliceSource([]int{1, 2, 3})
	errSecond := errors.New("bad item")
	handle := func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errSecond
		}
		return n, nil
	}

	out := Run(context.Background(), source, handle, Options{})

	var values []int
	var itemErrs []error
	for res := range out {
		if res.Err != nil {
			itemErrs = append(itemErrs, res.Err)
			continue
		}
		values = append(values, res.Value)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 successful items, got %d", len(values))
	}
	if len(itemErrs) != 1 || !errors.Is(itemErrs[0], errSecond) {
		t.Fatalf("expected one item error %v, got %v", errSecond, itemErrs)
	}
	if IsTransportError(itemErrs[0]) {
		t.Fatal("item error must not be classified as a transport fault")
	}
}

func TestRunTransportFaultEndsStream(t *testing.T) {
	faulty := errors.New("connection reset")
	calls := 0
	source := func() (int, error) {
		calls++
		if calls > 2 {
			return 0, faulty
		}
		return calls, nil
	}
	identity := func(_ context.Context, n int) (int, error) { return n, nil }

	out := Run(context.Background(), source, identity, Options{})

	var last error
	items := 0
	for res := range out {
		if res.Err != nil {
			last = res.Err
			continue
		}
		items++
	}
	if items != 2 {
		t.Fatalf("expected 2 items before the fault, got %d", items)
	}
	if !IsTransportError(last) {
		t.Fatalf("expected transport fault as final item, got %v", last)
	}
	if !errors.Is(last, faulty) {
		t.Fatalf("expected fault to wrap %v, got %v", faulty, last)
	}
}

func TestRunBackpressureBlocksProducer(t *testing.T) {
	const capacity = 2

	handled := make(chan int, 16)
	source := sliceSource([]int{1, 2, 3, 4, 5, 6})
	handle := func(_ context.Context, n int) (int, error) {
		handled <- n
		return n, nil
	}

	out := Run(context.Background(), source, handle, Options{Capacity: capacity})

	// With a stalled consumer the pump can process at most capacity+1
	// items: capacity buffered plus one blocked on send.
	deadline := time.After(500 * time.Millisecond)
	seen := 0
	for seen < capacity+1 {
		select {
		case <-handled:
			seen++
		case <-deadline:
			t.Fatalf("expected %d items handled before stall, saw %d", capacity+1, seen)
		}
	}
	select {
	case n := <-handled:
		t.Fatalf("producer ran past the bounded queue, handled %d", n)
	case <-time.After(50 * time.Millisecond):
	}

	// Releasing the consumer resumes flow without item loss.
	total := 0
	for res := range out {
		if res.Err != nil {
			t.Fatalf("unexpected item error: %v", res.Err)
		}
		total++
	}
	if total != 6 {
		t.Fatalf("expected all 6 items after release, got %d", total)
	}
}

func TestRunCancellationClosesOutput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	source := func() (int, error) { return 1, nil }
	handle := func(_ context.Context, n int) (int, error) { return n, nil }

	out := Run(ctx, source, handle, Options{Capacity: 1})

	// Let the pump fill the queue, then cancel.
	<-out
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("relay output did not close after cancellation")
		}
	}
}

func TestRunDefaultCapacity(t *testing.T) {
	out := Run(context.Background(), sliceSource([]int{}), func(_ context.Context, n int) (int, error) {
		return n, nil
	}, Options{})
	if cap(out) != DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultCapacity, cap(out))
	}
	for range out {
	}
}

func TestTransportErrorMessage(t *testing.T) {
	err := &TransportError{Err: errors.New("boom")}
	want := fmt.Sprintf("relay transport fault: %v", "boom")
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
