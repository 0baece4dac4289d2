package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errUnknownModel = errors.New("unknown model")

func newTestFallback(sleeps *int) *Fallback {
	f := NewFallback(time.Second, func(err error) bool {
		return errors.Is(err, errUnknownModel)
	})
	f.sleep = func(context.Context, time.Duration) error {
		*sleeps++
		return nil
	}
	return f
}

func TestInvokeSkipsUnavailableCandidateWithoutDelay(t *testing.T) {
	sleeps := 0
	f := newTestFallback(&sleeps)

	var attempted []string
	out, err := f.Invoke(context.Background(), []string{"model-a", "model-b", "model-c"}, func(_ context.Context, modelID string) (string, error) {
		attempted = append(attempted, modelID)
		if modelID == "model-a" {
			return "", errUnknownModel
		}
		return "answer from " + modelID, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "answer from model-b" {
		t.Fatalf("expected model-b response, got %q", out)
	}
	if len(attempted) != 2 || attempted[0] != "model-a" || attempted[1] != "model-b" {
		t.Fatalf("expected attempts [model-a model-b], got %v", attempted)
	}
	if sleeps != 0 {
		t.Fatalf("expected no backoff before the working candidate, got %d sleeps", sleeps)
	}
}

func TestInvokeExhaustionSurfacesLastErrorWithBackoffs(t *testing.T) {
	sleeps := 0
	f := newTestFallback(&sleeps)

	errFirst := errors.New("rate limited")
	errLast := errors.New("upstream down")
	calls := 0
	_, err := f.Invoke(context.Background(), []string{"a", "b", "c"}, func(context.Context, string) (string, error) {
		calls++
		if calls < 3 {
			return "", errFirst
		}
		return "", errLast
	})
	if !errors.Is(err, errLast) {
		t.Fatalf("expected last error surfaced, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected all 3 candidates attempted, got %d", calls)
	}
	if sleeps != 2 {
		t.Fatalf("expected a backoff between attempts only, got %d sleeps", sleeps)
	}
}

func TestInvokeDeduplicatesCandidatesPreservingOrder(t *testing.T) {
	sleeps := 0
	f := newTestFallback(&sleeps)

	var attempted []string
	_, err := f.Invoke(context.Background(), []string{"a", "b", "a", "", "b"}, func(_ context.Context, modelID string) (string, error) {
		attempted = append(attempted, modelID)
		return "", errUnknownModel
	})
	if !errors.Is(err, ErrCandidatesExhausted) {
		t.Fatalf("expected ErrCandidatesExhausted when every candidate is unknown, got %v", err)
	}
	if len(attempted) != 2 || attempted[0] != "a" || attempted[1] != "b" {
		t.Fatalf("expected attempts [a b], got %v", attempted)
	}
}

func TestInvokeEmptyCandidateList(t *testing.T) {
	sleeps := 0
	f := newTestFallback(&sleeps)

	_, err := f.Invoke(context.Background(), nil, func(context.Context, string) (string, error) {
		t.Fatal("call must not run without candidates")
		return "", nil
	})
	if !errors.Is(err, ErrCandidatesExhausted) {
		t.Fatalf("expected ErrCandidatesExhausted, got %v", err)
	}
}

func TestInvokeStopsWhenContextCancelled(t *testing.T) {
	f := NewFallback(time.Second, nil)
	f.sleep = func(ctx context.Context, _ time.Duration) error {
		return context.Canceled
	}

	errCall := errors.New("boom")
	calls := 0
	_, err := f.Invoke(context.Background(), []string{"a", "b"}, func(context.Context, string) (string, error) {
		calls++
		return "", errCall
	})
	if !errors.Is(err, errCall) {
		t.Fatalf("expected the recorded error after cancelled backoff, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected no further candidates after cancellation, got %d calls", calls)
	}
}
