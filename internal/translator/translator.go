// Package translator translates single texts through an Amazon Bedrock model.
package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/pricofy/batch-translator/internal/chunker"
	"github.com/pricofy/batch-translator/internal/config"
	"github.com/pricofy/batch-translator/internal/domain"
)

const (
	contentTypeJSON = "application/json"

	successPreviewRunes = 30
	failurePreviewRunes = 50
)

// Invoker is the part of the Bedrock runtime client the translator needs.
// *bedrockruntime.Client satisfies it.
type Invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Translator turns one text into one outcome. It holds no per-call state
// and is safe for concurrent use.
type Translator struct {
	client         Invoker
	modelID        string
	maxNewTokens   int
	maxInputTokens int
	timeout        time.Duration
	logger         *zap.Logger
}

// Option customizes a Translator.
type Option func(*Translator)

// WithModel overrides the model id.
func WithModel(modelID string) Option {
	return func(t *Translator) { t.modelID = modelID }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Translator) { t.logger = logger }
}

// New creates a Translator using cfg for model, limits and per-call timeout.
func New(client Invoker, cfg *config.Config, opts ...Option) *Translator {
	t := &Translator{
		client:         client,
		modelID:        cfg.ModelID,
		maxNewTokens:   cfg.MaxNewTokens,
		maxInputTokens: cfg.MaxInputTokens,
		timeout:        cfg.ReadTimeout,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewFromConfig creates a Translator backed by a real Bedrock runtime client.
func NewFromConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Translator, error) {
	awsCfg, err := cfg.AWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	return New(bedrockruntime.NewFromConfig(awsCfg), cfg, opts...), nil
}

// Translate translates job.Text from job.SourceLang to job.TargetLang.
// It always returns an outcome; failures are reported as domain.StatusFailure.
func (t *Translator) Translate(ctx context.Context, job domain.Job) domain.Outcome {
	if chunker.Oversized(job.Text, t.maxInputTokens) {
		t.logger.Warn("Text may exceed model input limit",
			zap.Int("index", job.Index),
			zap.Int("estimated_tokens", chunker.EstimateTokens(job.Text)),
			zap.Int("max_input_tokens", t.maxInputTokens),
		)
	}

	translated, err := t.invoke(ctx, job)
	if err != nil {
		t.logger.Error("Error translating text",
			zap.Int("index", job.Index),
			zap.String("model", t.modelID),
			zap.String("preview", chunker.Preview(job.Text, failurePreviewRunes)),
			zap.Error(err),
		)
		return domain.Failure(job, err)
	}

	t.logger.Info("Successfully translated text",
		zap.Int("index", job.Index),
		zap.String("preview", chunker.Preview(job.Text, successPreviewRunes)),
		zap.String("translation", chunker.Preview(translated, successPreviewRunes)),
	)
	return domain.Success(job, translated)
}

// invoke sends a single InvokeModel request and extracts the generated text.
func (t *Translator) invoke(ctx context.Context, job domain.Job) (string, error) {
	body, err := json.Marshal(newRequest(job, t.maxNewTokens))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	result, err := t.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(t.modelID),
		Body:        body,
		Accept:      aws.String(contentTypeJSON),
		ContentType: aws.String(contentTypeJSON),
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to invoke %s: %w", domain.ErrTransport, t.modelID, err)
	}
	if result == nil {
		return "", fmt.Errorf("%w: empty result", domain.ErrMalformedResponse)
	}

	return parseResponse(result.Body)
}

// Prompt builds the instruction sent to the model.
func Prompt(text, sourceLang, targetLang string) string {
	return fmt.Sprintf("Translate the following %s text to %s: %s", sourceLang, targetLang, text)
}

// parseResponse pulls output.message.content[*].text out of a response body.
func parseResponse(body []byte) (string, error) {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %w", domain.ErrMalformedResponse, err)
	}
	if resp.Output == nil || resp.Output.Message == nil {
		return "", fmt.Errorf("%w: missing output.message", domain.ErrMalformedResponse)
	}

	var sb strings.Builder
	found := false
	for _, block := range resp.Output.Message.Content {
		if block.Text == nil {
			continue
		}
		found = true
		sb.WriteString(*block.Text)
	}
	if !found {
		return "", fmt.Errorf("%w: no text in output.message.content", domain.ErrMalformedResponse)
	}
	return sb.String(), nil
}
