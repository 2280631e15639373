package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/litdebate/backend/internal/metrics"
	"github.com/litdebate/backend/pkg/circuitbreaker"
	"github.com/litdebate/backend/pkg/logger"
	"github.com/litdebate/backend/pkg/retry"
)

// ErrGenerationUnavailable signals that the text-generation service could not
// be reached or refused the request. Pipeline stages absorb it into their
// fallback values; it never escapes to the job driver.
var ErrGenerationUnavailable = errors.New("text generation unavailable")

// TextGenerator is the capability every pipeline stage consumes.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

type Client struct {
	client      *openai.Client
	model       string
	timeout     time.Duration
	cb          *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
}

func NewClient(apiKey, model string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	cb := circuitbreaker.New("llm", circuitbreaker.Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      30 * time.Second,
		Logger:           logger.GetLogger(),
	})

	retryConfig := retry.Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
		Logger:         logger.GetLogger(),
	}

	logger.Info("LLM client initialized", zap.String("model", model))

	return &Client{
		client:      openai.NewClient(apiKey),
		model:       model,
		timeout:     timeout,
		cb:          cb,
		retryConfig: retryConfig,
	}
}

// Generate sends a single-turn prompt and returns the raw completion text.
// Transport, auth and quota errors are reported as ErrGenerationUnavailable.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var content string

	err := c.cb.Execute(ctx, func() error {
		return retry.Do(ctx, c.retryConfig, func() error {
			resp, err := c.client.CreateChatCompletion(
				ctx,
				openai.ChatCompletionRequest{
					Model: c.model,
					Messages: []openai.ChatCompletionMessage{
						{
							Role:    openai.ChatMessageRoleUser,
							Content: prompt,
						},
					},
					Temperature: temperature,
					MaxTokens:   maxTokens,
				},
			)

			if err != nil {
				return fmt.Errorf("failed to create completion: %w", err)
			}

			if len(resp.Choices) == 0 {
				return fmt.Errorf("completion returned no choices")
			}

			logger.Debug("Completion generated",
				zap.Int("prompt_tokens", resp.Usage.PromptTokens),
				zap.Int("completion_tokens", resp.Usage.CompletionTokens),
			)

			content = strings.TrimSpace(resp.Choices[0].Message.Content)
			return nil
		})
	})

	if err != nil {
		metrics.GenerationCalls.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}

	metrics.GenerationCalls.WithLabelValues("success").Inc()
	return content, nil
}

// GenerateSummary asks for a short plot summary when book metadata carries
// none. Callers fall back to a placeholder on error.
func (c *Client) GenerateSummary(ctx context.Context, title, author string) (string, error) {
	prompt := fmt.Sprintf(`Please provide a brief summary of the book %q by %s.
Focus on the main plot, key characters, and central themes.
Keep it concise (2-3 paragraphs).`, title, author)

	summary, err := c.Generate(ctx, prompt, 500, 0.3)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	logger.Info("Book summary generated",
		zap.String("title", title),
		zap.Int("summary_length", len(summary)),
	)

	return summary, nil
}
