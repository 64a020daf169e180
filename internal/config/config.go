// Package config loads the translator configuration from the environment
// and turns it into an AWS SDK configuration.
package config

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Defaults mirror the values the service was first deployed with.
const (
	DefaultRegion         = "ap-northeast-1"
	DefaultModelID        = "apac.amazon.nova-pro-v1:0"
	DefaultMaxNewTokens   = 4096
	DefaultConnectTimeout = 60 * time.Second
	DefaultReadTimeout    = 60 * time.Second
	DefaultMaxAttempts    = 3
	DefaultMaxWorkers     = 5
	DefaultMaxInputTokens = 3000
)

// Config holds everything needed to reach Bedrock and run a batch.
// It is built once and passed explicitly to the components that need it.
//
// Environment Variables:
// - AWS_REGION: Bedrock region (default: ap-northeast-1)
// - BEDROCK_MODEL_ID: model to invoke (default: apac.amazon.nova-pro-v1:0)
// - BEDROCK_MAX_NEW_TOKENS: generation length limit (default: 4096)
// - BEDROCK_CONNECT_TIMEOUT: dial timeout, Go duration (default: 60s)
// - BEDROCK_READ_TIMEOUT: per-request timeout, Go duration (default: 60s)
// - BEDROCK_RETRY_MODE: standard or adaptive (default: standard)
// - BEDROCK_MAX_ATTEMPTS: SDK retry attempts (default: 3)
// - TRANSLATE_MAX_WORKERS: default pool size (default: 5)
// - TRANSLATE_MAX_INPUT_TOKENS: estimated tokens above which a warning is logged (default: 3000)
// - LOG_LEVEL: debug, info, warn or error (default: info)
type Config struct {
	Region         string
	ModelID        string
	MaxNewTokens   int
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	RetryMode      aws.RetryMode
	MaxAttempts    int
	MaxWorkers     int
	MaxInputTokens int
	LogLevel       string
}

// Default returns a Config populated with defaults only.
func Default() *Config {
	return &Config{
		Region:         DefaultRegion,
		ModelID:        DefaultModelID,
		MaxNewTokens:   DefaultMaxNewTokens,
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultReadTimeout,
		RetryMode:      aws.RetryModeStandard,
		MaxAttempts:    DefaultMaxAttempts,
		MaxWorkers:     DefaultMaxWorkers,
		MaxInputTokens: DefaultMaxInputTokens,
		LogLevel:       "info",
	}
}

// Load reads a .env file if one exists and builds a Config from the environment.
func Load() (*Config, error) {
	// A missing .env is normal in Lambda.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (*Config, error) {
	d := Default()
	cfg := &Config{
		Region:         getEnvString("AWS_REGION", d.Region),
		ModelID:        getEnvString("BEDROCK_MODEL_ID", d.ModelID),
		MaxNewTokens:   getEnvInt("BEDROCK_MAX_NEW_TOKENS", d.MaxNewTokens),
		ConnectTimeout: getEnvDuration("BEDROCK_CONNECT_TIMEOUT", d.ConnectTimeout),
		ReadTimeout:    getEnvDuration("BEDROCK_READ_TIMEOUT", d.ReadTimeout),
		RetryMode:      aws.RetryMode(getEnvString("BEDROCK_RETRY_MODE", string(d.RetryMode))),
		MaxAttempts:    getEnvInt("BEDROCK_MAX_ATTEMPTS", d.MaxAttempts),
		MaxWorkers:     getEnvInt("TRANSLATE_MAX_WORKERS", d.MaxWorkers),
		MaxInputTokens: getEnvInt("TRANSLATE_MAX_INPUT_TOKENS", d.MaxInputTokens),
		LogLevel:       getEnvString("LOG_LEVEL", d.LogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.ModelID == "" {
		return fmt.Errorf("model id is required")
	}
	if c.MaxNewTokens < 1 {
		return fmt.Errorf("max new tokens must be greater than 0")
	}
	if c.ConnectTimeout <= 0 || c.ReadTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.RetryMode != aws.RetryModeStandard && c.RetryMode != aws.RetryModeAdaptive {
		return fmt.Errorf("unsupported retry mode: %s", c.RetryMode)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be greater than 0")
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max workers must be greater than 0")
	}
	return nil
}

// AWSConfig builds the SDK configuration: region, retry policy and HTTP timeouts.
func (c *Config) AWSConfig(ctx context.Context) (aws.Config, error) {
	httpClient := awshttp.NewBuildableClient().
		WithTimeout(c.ReadTimeout).
		WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = c.ConnectTimeout
		})

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(c.Region),
		awsconfig.WithRetryMode(c.RetryMode),
		awsconfig.WithRetryMaxAttempts(c.MaxAttempts),
		awsconfig.WithHTTPClient(httpClient),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
