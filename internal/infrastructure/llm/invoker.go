package llm

import (
	"context"
	"time"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
	"github.com/lexhub/legal-case-assistant/internal/core/ports"
	"github.com/lexhub/legal-case-assistant/internal/infrastructure/resilience"
)

// Invoker runs one prompt through the candidate fallback loop. It is shared
// by every AI stage; only the candidate list differs per stage.
type Invoker struct {
	client   ports.ModelClient
	fallback *resilience.Fallback
}

func NewInvoker(client ports.ModelClient, backoff time.Duration) *Invoker {
	return &Invoker{
		client: client,
		fallback: resilience.NewFallback(backoff, func(err error) bool {
			return domain.IsKind(err, domain.ErrModelUnavailable)
		}),
	}
}

func (i *Invoker) Generate(ctx context.Context, candidates []string, req domain.ModelRequest) (string, error) {
	return i.fallback.Invoke(ctx, candidates, func(ctx context.Context, modelID string) (string, error) {
		return i.client.Generate(ctx, modelID, req)
	})
}
