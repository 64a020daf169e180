// Command demo translates a handful of sample sentences and prints the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/pricofy/batch-translator/internal/config"
	"github.com/pricofy/batch-translator/internal/dispatcher"
	"github.com/pricofy/batch-translator/internal/domain"
	"github.com/pricofy/batch-translator/internal/translator"
)

var englishTexts = []string{
	"Hello, how are you?",
	"This is a test sentence for parallel translation.",
	"Go is a versatile programming language.",
	"AWS Bedrock allows access to various foundation models.",
	"Parallel execution can significantly speed up I/O bound tasks.",
	"In this example, we are using the Amazon Nova Pro model.",
	"日本語のテキストも翻訳できるか試してみます。",
	"これは並列処理の効率を示すためのものです。",
	"クラウドサービスは現代のソフトウェア開発に不可欠です。",
	"機械学習モデルは日々進化しています。",
}

var japaneseTexts = []string{
	"こんにちは、元気ですか？",
	"これは並列翻訳のためのテスト文です。",
	"Goは多機能なプログラミング言語です。",
}

func main() {
	workers := flag.Int("workers", 10, "concurrent translations for the en→ja batch")
	flag.Parse()

	start := time.Now()
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

	tr, err := translator.NewFromConfig(ctx, cfg, translator.WithLogger(logger))
	if err != nil {
		logger.Fatal("Failed to create translator", zap.Error(err))
	}
	d := dispatcher.New(tr, dispatcher.WithLogger(logger), dispatcher.WithDefaultWorkers(cfg.MaxWorkers))

	run(ctx, d, englishTexts, "en", "ja", *workers)
	run(ctx, d, japaneseTexts, "ja", "en", cfg.MaxWorkers)

	fmt.Printf("elapsed: %s\n", time.Since(start))
}

func run(ctx context.Context, d *dispatcher.Dispatcher, texts []string, source, target string, workers int) {
	outcomes, err := d.TranslateAll(ctx, texts, source, target, workers)
	if err != nil {
		log.Fatalf("translate %s→%s: %v", source, target, err)
	}

	fmt.Printf("\n--- %s → %s ---\n", source, target)
	for _, out := range outcomes {
		fmt.Printf("Original %d: %s\n", out.Index+1, out.Source)
		fmt.Printf("Translated %d: %s\n\n", out.Index+1, render(out))
	}
}

func render(out domain.Outcome) string {
	if out.OK() {
		return out.Translation
	}
	return "Translation error: " + out.Reason
}
