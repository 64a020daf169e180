// Package handler provides the Lambda handler for the batch translator.
package handler

import (
	"context"
	"fmt"

	"github.com/pricofy/batch-translator/internal/domain"
)

// Batcher runs a batch of translations. *dispatcher.Dispatcher satisfies it.
type Batcher interface {
	TranslateAll(ctx context.Context, texts []string, sourceLang, targetLang string, maxWorkers int) ([]domain.Outcome, error)
}

// Handler turns Lambda requests into dispatcher batches.
type Handler struct {
	batcher        Batcher
	defaultWorkers int
}

// New creates a Handler. Requests without maxWorkers use defaultWorkers.
func New(b Batcher, defaultWorkers int) *Handler {
	return &Handler{batcher: b, defaultWorkers: defaultWorkers}
}

// Handle processes a translation request.
// Problems with the request or with individual texts are reported in the
// response body; the Lambda invocation itself does not fail.
func (h *Handler) Handle(ctx context.Context, req domain.Request) (*domain.Response, error) {
	// Validate request
	if err := validateRequest(req); err != nil {
		return &domain.Response{Error: err.Error()}, nil
	}

	// Empty input - return immediately
	if len(req.Texts) == 0 {
		return &domain.Response{Outcomes: []domain.Outcome{}}, nil
	}

	workers := req.MaxWorkers
	if workers == 0 {
		workers = h.defaultWorkers
	}

	outcomes, err := h.batcher.TranslateAll(ctx, req.Texts, req.SourceLang, req.TargetLang, workers)
	if err != nil {
		return &domain.Response{Error: fmt.Sprintf("translation failed: %v", err)}, nil
	}

	resp := &domain.Response{Outcomes: outcomes}
	for _, out := range outcomes {
		if out.OK() {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp, nil
}

// validateRequest checks the request is valid.
func validateRequest(req domain.Request) error {
	if req.SourceLang == "" {
		return fmt.Errorf("sourceLang is required")
	}
	if req.TargetLang == "" {
		return fmt.Errorf("targetLang is required")
	}
	if req.SourceLang == req.TargetLang {
		return fmt.Errorf("sourceLang and targetLang must be different")
	}
	if req.Texts == nil {
		return fmt.Errorf("texts is required")
	}
	if req.MaxWorkers < 0 {
		return fmt.Errorf("maxWorkers must not be negative")
	}
	return nil
}
