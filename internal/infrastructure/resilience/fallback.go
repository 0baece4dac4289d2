package resilience

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

// ErrCandidatesExhausted is returned when no usable model candidate exists:
// either the list was empty or every candidate was skipped as unavailable.
var ErrCandidatesExhausted = errors.New("no model candidate succeeded")

// ModelCall invokes one concrete model candidate.
type ModelCall func(ctx context.Context, modelID string) (string, error)

// SkipClassifier reports whether a candidate is unusable by itself (the
// provider does not know the model) so the loop moves on without delay.
// Any other failure is remembered as the last error and followed by the
// fixed backoff before the next candidate.
type SkipClassifier func(err error) bool

// Fallback walks an ordered list of model candidates and returns the first
// successful response. The provider's catalog shifts over time and per-key
// availability is inconsistent, so trying a prioritized list keeps the
// pipeline working without a redeploy when a model is retired.
type Fallback struct {
	backoff time.Duration
	skip    SkipClassifier
	sleep   func(context.Context, time.Duration) error
}

func NewFallback(backoff time.Duration, skip SkipClassifier) *Fallback {
	if backoff <= 0 {
		backoff = time.Second
	}
	if skip == nil {
		skip = func(error) bool { return false }
	}
	return &Fallback{
		backoff: backoff,
		skip:    skip,
		sleep:   sleepContext,
	}
}

func (f *Fallback) Invoke(ctx context.Context, candidates []string, call ModelCall) (string, error) {
	models := dedupCandidates(candidates)

	var lastErr error
	for idx, modelID := range models {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return "", lastErr
			}
			return "", err
		}

		out, err := call(ctx, modelID)
		if err == nil {
			return out, nil
		}

		if f.skip(err) {
			slog.Info("model_candidate_skipped", "model", modelID, "error", err)
			continue
		}

		lastErr = err
		slog.Warn("model_candidate_failed", "model", modelID, "error", err)

		if idx < len(models)-1 {
			if err := f.sleep(ctx, f.backoff); err != nil {
				return "", lastErr
			}
		}
	}

	if lastErr != nil {
		return "", lastErr
	}
	return "", ErrCandidatesExhausted
}

// dedupCandidates drops blanks and repeats, preserving first occurrence.
func dedupCandidates(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		modelID := strings.TrimSpace(candidate)
		if modelID == "" {
			continue
		}
		if _, ok := seen[modelID]; ok {
			continue
		}
		seen[modelID] = struct{}{}
		out = append(out, modelID)
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
