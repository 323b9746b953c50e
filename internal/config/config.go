package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/kitbuilder587/llama-probe/internal/domain"
	"github.com/kitbuilder587/llama-probe/internal/llm/llamacpp"
)

var (
	ErrInvalidBaseURL = errors.New("LLAMA_BASE_URL must be an absolute http(s) url")
	ErrInvalidTimeout = errors.New("LLAMA_TIMEOUT_SEC must be positive")
)

type Config struct {
	Llama   LlamaConfig
	Request domain.CompletionRequest
	Log     LogConfig
	Metrics MetricsConfig
}

type LlamaConfig struct {
	BaseURL  string
	Endpoint string
	Timeout  time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type MetricsConfig struct {
	TextfilePath string
}

// Load reads the environment. Unset variables fall back to the fixed
// probe request against http://localhost:8083/completion.
func Load() (*Config, error) {
	defaults := domain.DefaultCompletionRequest()

	cfg := &Config{
		Llama: LlamaConfig{
			BaseURL:  getEnvOrDefault("LLAMA_BASE_URL", llamacpp.DefaultBaseURL),
			Endpoint: getEnvOrDefault("LLAMA_ENDPOINT", llamacpp.DefaultEndpoint),
			Timeout:  time.Duration(getEnvIntOrDefault("LLAMA_TIMEOUT_SEC", int(llamacpp.DefaultTimeout/time.Second))) * time.Second,
		},
		Request: domain.CompletionRequest{
			Prompt:      getEnvOrDefault("PROBE_PROMPT", defaults.Prompt),
			NPredict:    getEnvIntOrDefault("PROBE_N_PREDICT", defaults.NPredict),
			Temperature: getEnvFloatOrDefault("PROBE_TEMPERATURE", defaults.Temperature),
			Stop:        defaults.Stop,
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "error"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			TextfilePath: os.Getenv("METRICS_TEXTFILE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.Llama.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	if c.Llama.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return c.Request.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
