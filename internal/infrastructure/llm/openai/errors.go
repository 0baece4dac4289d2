package openai

import (
	"context"
	"errors"
	"net"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
	"github.com/lexhub/legal-case-assistant/internal/infrastructure/resilience"
)

// classifyProviderError maps provider failures onto the domain error kinds
// right at the client boundary, so the fallback loop never inspects message
// strings. "Model unknown" is expected and cheap to skip; anything else is
// worth a backoff before the next candidate.
func classifyProviderError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusNotFound || isModelNotFoundCode(apiErr.Code):
			return domain.WrapError(domain.ErrModelUnavailable, operation, err)
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return domain.WrapError(domain.ErrRateLimited, operation, err)
		case apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden:
			return domain.WrapError(domain.ErrUnauthorized, operation, err)
		case apiErr.HTTPStatusCode >= http.StatusInternalServerError:
			return domain.WrapError(domain.ErrTemporary, operation, err)
		default:
			return err
		}
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.HTTPStatusCode == http.StatusNotFound:
			return domain.WrapError(domain.ErrModelUnavailable, operation, err)
		case reqErr.HTTPStatusCode == http.StatusTooManyRequests:
			return domain.WrapError(domain.ErrRateLimited, operation, err)
		case reqErr.HTTPStatusCode >= http.StatusInternalServerError:
			return domain.WrapError(domain.ErrTemporary, operation, err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}

	return err
}

func isModelNotFoundCode(code any) bool {
	s, ok := code.(string)
	return ok && s == "model_not_found"
}

// classifyForRetry drives the inner per-candidate retry: a transient wire
// failure is retried in place, everything else goes straight back to the
// fallback loop to pick the next candidate.
func classifyForRetry(err error) resilience.ErrorClassification {
	switch {
	case err == nil:
		return resilience.ErrorClassification{}
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	case resilience.IsCircuitOpen(err):
		return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
	case domain.IsKind(err, domain.ErrModelUnavailable):
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	case domain.IsKind(err, domain.ErrRateLimited):
		return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
	case domain.IsKind(err, domain.ErrTemporary):
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	default:
		return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
	}
}
