// internal/services/llm/client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lead-assistant/internal/common/logger"
	"lead-assistant/internal/common/metrics"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

var (
	ErrUpstreamCallFailed = errors.New("UPSTREAM_CALL_FAILED")
	ErrUpstreamTimeout    = errors.New("UPSTREAM_TIMEOUT")
)

const (
	callReply      = "reply"
	callExtraction = "extraction"
)

const (
	statusOK        = "ok"
	statusError     = "error"
	statusTimeout   = "timeout"
	statusCancelled = "cancelled"
)

// Responder is the language model boundary. Both calls take a fixed system
// prompt and the caller's raw text; no history is threaded between turns.
type Responder interface {
	GenerateReply(ctx context.Context, systemPrompt, userText string) (string, error)
	// ExtractFields returns raw model text that is expected, but not
	// guaranteed, to be JSON.
	ExtractFields(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Doer is satisfied by *http.Client and the shared outbound client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	config *Config
	model  llms.Model
	logger logger.Logger
}

// NewClient builds a Responder backed by an OpenAI-compatible chat
// completions endpoint.
func NewClient(cfg *Config, doer Doer, log logger.Logger) (*Client, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if doer != nil {
		opts = append(opts, openai.WithHTTPClient(doer))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return newClientWithModel(cfg, model, log), nil
}

func newClientWithModel(cfg *Config, model llms.Model, log logger.Logger) *Client {
	return &Client{
		config: cfg,
		model:  model,
		logger: log.WithFields(map[string]interface{}{
			"component": "llm",
			"model":     cfg.Model,
		}),
	}
}

func (c *Client) GenerateReply(ctx context.Context, systemPrompt, userText string) (string, error) {
	return c.complete(ctx, callReply, systemPrompt, userText, c.config.ReplyTemperature)
}

func (c *Client) ExtractFields(ctx context.Context, systemPrompt, userText string) (string, error) {
	return c.complete(ctx, callExtraction, systemPrompt, userText, c.config.ExtractionTemperature)
}

func (c *Client) complete(ctx context.Context, call, systemPrompt, userText string, temperature float64) (string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userText),
	}

	start := time.Now()
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				c.observe(call, interruptedStatus(ctx, ctx.Err()), start)
				return "", fmt.Errorf("%w: %v", ErrUpstreamTimeout, ctx.Err())
			}
		}

		resp, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(temperature))

		if ctx.Err() != nil ||
			errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, context.Canceled) {
			if err == nil {
				err = ctx.Err()
			}
			c.observe(call, interruptedStatus(ctx, err), start)
			return "", fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}

		if err == nil {
			if len(resp.Choices) == 0 {
				lastErr = errors.New("empty response")
				continue
			}
			c.observe(call, statusOK, start)
			return resp.Choices[0].Content, nil
		}

		lastErr = err
		c.logger.Warn("language model call failed", map[string]interface{}{
			"call":    call,
			"attempt": attempt + 1,
			"error":   err.Error(),
		})
	}

	c.observe(call, statusError, start)
	return "", fmt.Errorf("%w: %v", ErrUpstreamCallFailed, lastErr)
}

// interruptedStatus tells a deadline apart from a cancellation, which is
// usually the sibling call failing first.
func interruptedStatus(ctx context.Context, err error) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return statusTimeout
	}
	return statusCancelled
}

func (c *Client) observe(call, status string, start time.Time) {
	metrics.UpstreamCallDuration.WithLabelValues(call, status).Observe(time.Since(start).Seconds())
}
