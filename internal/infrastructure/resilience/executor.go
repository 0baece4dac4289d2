package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrorClassification tells the executor how to treat one failed attempt:
// whether the same call is worth retrying, and whether the breaker should
// count the failure against the provider.
type ErrorClassification struct {
	Retryable     bool
	RecordFailure bool
}

// ErrorClassifier inspects the error of a single attempt. Each adapter
// supplies its own: the model client retries only transport faults, the
// queue publisher retries reconnect windows.
type ErrorClassifier func(err error) ErrorClassification

// Executor hardens a single outbound call with bounded retries and a
// circuit breaker keyed by call name. Model fallback happens a layer
// above: the executor exhausts one candidate, the fallback moves on to
// the next.
type Executor struct {
	cfg Config

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

func NewExecutor(cfg Config) *Executor {
	return &Executor{
		cfg:      cfg.withDefaults(),
		breakers: make(map[string]*gobreaker.CircuitBreaker[any]),
	}
}

// Execute runs fn under the retry schedule and, when enabled, behind the
// breaker registered for name (e.g. "llm.generate", "nats.publish").
func (e *Executor) Execute(
	ctx context.Context,
	name string,
	fn func(context.Context) error,
	classify ErrorClassifier,
) error {
	if fn == nil {
		return fmt.Errorf("resilience: nil call for %q", name)
	}
	call := strings.TrimSpace(name)
	if call == "" {
		call = "unnamed"
	}
	if classify == nil {
		classify = recordOnly
	}

	if !e.cfg.BreakerEnabled {
		return e.attempt(ctx, call, fn, classify)
	}
	_, err := e.breakerFor(call, classify).Execute(func() (any, error) {
		return nil, e.attempt(ctx, call, fn, classify)
	})
	return err
}

func (e *Executor) attempt(
	ctx context.Context,
	call string,
	fn func(context.Context) error,
	classify ErrorClassifier,
) error {
	delay := e.cfg.RetryInitialBackoff

	for left := e.cfg.RetryMaxAttempts; ; left-- {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		if left <= 1 || !classify(err).Retryable {
			return err
		}

		slog.Warn("outbound call failed, retrying",
			"call", call,
			"attempts_left", left-1,
			"wait", delay,
			"error", err,
		)
		if !sleepCtx(ctx, delay) {
			return err
		}
		delay = min(time.Duration(float64(delay)*e.cfg.RetryMultiplier), e.cfg.RetryMaxBackoff)
	}
}

// sleepCtx waits for d and reports false when the context ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (e *Executor) breakerFor(call string, classify ErrorClassifier) *gobreaker.CircuitBreaker[any] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if br, ok := e.breakers[call]; ok {
		return br
	}

	br := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        call,
		MaxRequests: e.cfg.BreakerHalfOpenMaxCalls,
		Timeout:     e.cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < e.cfg.BreakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= e.cfg.BreakerFailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !classify(err).RecordFailure
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit state changed", "call", name, "from", from.String(), "to", to.String())
		},
	})
	e.breakers[call] = br
	return br
}

// IsCircuitOpen reports whether err came from a breaker refusing the call
// rather than from the provider itself.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// recordOnly stands in for calls without their own classifier: never
// retry, always count the failure.
func recordOnly(error) ErrorClassification {
	return ErrorClassification{RecordFailure: true}
}
