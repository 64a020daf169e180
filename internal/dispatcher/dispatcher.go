// Package dispatcher runs batches of translation jobs through a bounded worker pool.
package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pricofy/batch-translator/internal/domain"
)

// DefaultMaxWorkers is the pool size used by TranslateAllDefault.
const DefaultMaxWorkers = 5

// Translator translates a single job. Implementations must always return an outcome.
type Translator interface {
	Translate(ctx context.Context, job domain.Job) domain.Outcome
}

// Dispatcher fans a batch of texts out to a fixed number of workers and
// collects exactly one outcome per text.
type Dispatcher struct {
	translator     Translator
	logger         *zap.Logger
	defaultWorkers int
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithDefaultWorkers sets the pool size used by TranslateAllDefault.
func WithDefaultWorkers(n int) Option {
	return func(d *Dispatcher) { d.defaultWorkers = n }
}

// New creates a Dispatcher around t.
func New(t Translator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		translator:     t,
		logger:         zap.NewNop(),
		defaultWorkers: DefaultMaxWorkers,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// result pairs an outcome with the job that produced it.
type result struct {
	job     domain.Job
	outcome domain.Outcome
}

// TranslateAllDefault is TranslateAll with the dispatcher's default pool size.
func (d *Dispatcher) TranslateAllDefault(ctx context.Context, texts []string, sourceLang, targetLang string) ([]domain.Outcome, error) {
	return d.TranslateAll(ctx, texts, sourceLang, targetLang, d.defaultWorkers)
}

// TranslateAll translates every text with at most maxWorkers translations in flight.
//
// The returned slice has one outcome per text, in input order: outcomes[i]
// belongs to texts[i]. Per-text failures are reported as failed outcomes;
// the only error returned is domain.ErrInvalidWorkers for maxWorkers < 1.
func (d *Dispatcher) TranslateAll(ctx context.Context, texts []string, sourceLang, targetLang string, maxWorkers int) ([]domain.Outcome, error) {
	if maxWorkers < 1 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidWorkers, maxWorkers)
	}
	if len(texts) == 0 {
		return []domain.Outcome{}, nil
	}

	start := time.Now()
	logger := d.logger.With(
		zap.String("batch_id", uuid.NewString()),
		zap.String("source_lang", sourceLang),
		zap.String("target_lang", targetLang),
	)

	workers := min(maxWorkers, len(texts))
	logger.Info("Submitting translation jobs",
		zap.Int("jobs", len(texts)),
		zap.Int("workers", workers),
	)

	jobs := make(chan domain.Job, len(texts))
	for i, text := range texts {
		jobs <- domain.Job{Index: i, Text: text, SourceLang: sourceLang, TargetLang: targetLang}
	}
	close(jobs)

	results := make(chan result, len(texts))

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for job := range jobs {
				results <- d.run(ctx, job)
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	outcomes := make([]domain.Outcome, len(texts))
	recorded := make([]bool, len(texts))
	failed := 0

	// Drain in completion order.
	for r := range results {
		out := r.outcome
		// The dispatcher owns the job-to-text association, whatever the translator reported.
		out.Index = r.job.Index
		out.Source = r.job.Text
		if out.Status != domain.StatusSuccess && out.Status != domain.StatusFailure {
			out = domain.Failure(r.job, fmt.Errorf("%w: translator returned no outcome", domain.ErrJobExecution))
		}

		if !out.OK() {
			failed++
			logger.Warn("Translation job failed",
				zap.Int("index", out.Index),
				zap.String("reason", out.Reason),
			)
		}
		outcomes[out.Index] = out
		recorded[out.Index] = true
	}

	for i, ok := range recorded {
		if ok {
			continue
		}
		// Unreachable while every worker sends one result per job.
		job := domain.Job{Index: i, Text: texts[i], SourceLang: sourceLang, TargetLang: targetLang}
		outcomes[i] = domain.Failure(job, fmt.Errorf("%w: no result recorded", domain.ErrJobExecution))
		failed++
	}

	logger.Info("Translation batch finished",
		zap.Int("succeeded", len(texts)-failed),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return outcomes, nil
}

// run executes one job, turning a panic into a failed outcome so the worker keeps going.
func (d *Dispatcher) run(ctx context.Context, job domain.Job) (r result) {
	defer func() {
		if p := recover(); p != nil {
			r = result{
				job:     job,
				outcome: domain.Failure(job, fmt.Errorf("%w: %v", domain.ErrJobExecution, p)),
			}
		}
	}()

	return result{job: job, outcome: d.translator.Translate(ctx, job)}
}
