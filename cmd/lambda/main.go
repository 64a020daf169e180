// Package main is the entry point for the batch translator Lambda function.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"go.uber.org/zap"

	"github.com/pricofy/batch-translator/internal/config"
	"github.com/pricofy/batch-translator/internal/dispatcher"
	"github.com/pricofy/batch-translator/internal/domain"
	"github.com/pricofy/batch-translator/internal/handler"
	"github.com/pricofy/batch-translator/internal/translator"
)

// app holds the dependencies built once per Lambda instance.
type app struct {
	handler *handler.Handler
	warmer  *warmer
	logger  *zap.Logger
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	awsCfg, err := cfg.AWSConfig(ctx)
	if err != nil {
		logger.Fatal("Failed to load AWS config", zap.Error(err))
	}

	a := newApp(cfg, awsCfg, logger)
	lambda.Start(a.handleRequest)
}

func newApp(cfg *config.Config, awsCfg aws.Config, logger *zap.Logger) *app {
	tr := translator.New(bedrockruntime.NewFromConfig(awsCfg), cfg, translator.WithLogger(logger))
	d := dispatcher.New(tr,
		dispatcher.WithLogger(logger),
		dispatcher.WithDefaultWorkers(cfg.MaxWorkers),
	)
	return &app{
		handler: handler.New(d, cfg.MaxWorkers),
		warmer:  newWarmer(lambdasdk.NewFromConfig(awsCfg)),
		logger:  logger,
	}
}

func (a *app) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return a.warmer.HandleWarmup(ctx, warmup)
	}

	// Parse the request and delegate to the handler
	var req domain.Request
	if err := json.Unmarshal(event, &req); err != nil {
		return &domain.Response{Error: fmt.Sprintf("invalid request: %v", err)}, nil
	}

	a.logger.Info("Translation request received",
		zap.Int("texts", len(req.Texts)),
		zap.String("source_lang", req.SourceLang),
		zap.String("target_lang", req.TargetLang),
	)
	return a.handler.Handle(ctx, req)
}
