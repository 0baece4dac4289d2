package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
	"github.com/lexhub/legal-case-assistant/internal/infrastructure/resilience"
)

const defaultRequestTimeout = 120 * time.Second

// Client talks to an OpenAI-compatible chat completions endpoint. It holds
// no model id: every call names its candidate explicitly, so concurrent
// pipelines cannot interfere through shared client state.
type Client struct {
	api      *goopenai.Client
	limiter  *rate.Limiter
	executor *resilience.Executor
	timeout  time.Duration
}

type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Executor          *resilience.Executor
}

func New(apiKey string, opts Options) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		api:      goopenai.NewClientWithConfig(cfg),
		limiter:  limiter,
		executor: opts.Executor,
		timeout:  timeout,
	}
}

func (c *Client) Generate(ctx context.Context, modelID string, req domain.ModelRequest) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var content string
	call := func(ctx context.Context) error {
		resp, err := c.api.CreateChatCompletion(ctx, chatRequest(modelID, req))
		if err != nil {
			return classifyProviderError("generate", err)
		}
		if len(resp.Choices) == 0 {
			return domain.WrapError(domain.ErrTemporary, "generate", errors.New("response carries no choices"))
		}
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(callCtx, "llm.generate", call, classifyForRetry)
	} else {
		err = call(callCtx)
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

func chatRequest(modelID string, req domain.ModelRequest) goopenai.ChatCompletionRequest {
	message := goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser}

	// Only image attachments ride along; anything else is already covered by
	// the extracted text in the prompt.
	if att := req.Attachment; att != nil && strings.HasPrefix(att.MimeType, "image/") {
		message.MultiContent = []goopenai.ChatMessagePart{
			{Type: goopenai.ChatMessagePartTypeText, Text: req.Prompt},
			{
				Type: goopenai.ChatMessagePartTypeImageURL,
				ImageURL: &goopenai.ChatMessageImageURL{
					URL: dataURL(att.MimeType, att.Data),
				},
			},
		}
	} else {
		message.Content = req.Prompt
	}

	return goopenai.ChatCompletionRequest{
		Model:    modelID,
		Messages: []goopenai.ChatCompletionMessage{message},
	}
}

func dataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
