// Package probe sends a single completion request and turns the outcome
// into a process exit code.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/llama-probe/internal/domain"
	"github.com/kitbuilder587/llama-probe/internal/llm"
	"github.com/kitbuilder587/llama-probe/internal/metrics"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

type Config struct {
	URL     string
	Request domain.CompletionRequest
	Stdout  io.Writer
	Stderr  io.Writer
}

type Probe struct {
	client  llm.Client
	url     string
	request domain.CompletionRequest
	stdout  io.Writer
	stderr  io.Writer
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func New(client llm.Client, cfg Config, m *metrics.Metrics, logger *zap.Logger) *Probe {
	return &Probe{
		client:  client,
		url:     cfg.URL,
		request: cfg.Request,
		stdout:  cfg.Stdout,
		stderr:  cfg.Stderr,
		metrics: m,
		logger:  logger,
	}
}

// Run performs the request once. The first failure is final.
func (p *Probe) Run(ctx context.Context) int {
	start := time.Now()
	outcome, code := p.run(ctx)
	elapsed := time.Since(start)

	p.metrics.RecordRun(outcome, elapsed)
	p.logger.Info("probe finished",
		zap.String("url", p.url),
		zap.String("outcome", outcome),
		zap.Int("exit_code", code),
		zap.Duration("elapsed", elapsed),
	)

	return code
}

func (p *Probe) run(ctx context.Context) (string, int) {
	raw, err := p.client.Complete(ctx, p.request)
	if err != nil {
		return p.report(err), ExitFailure
	}

	out, err := indent(raw)
	if err != nil {
		fmt.Fprintf(p.stderr, "Error: Invalid JSON response: %s\n", raw)
		return metrics.OutcomeInvalidJSON, ExitFailure
	}

	if _, err := p.stdout.Write(out); err != nil {
		fmt.Fprintf(p.stderr, "Unexpected error: %v\n", err)
		return metrics.OutcomeUnexpectedError, ExitFailure
	}

	return metrics.OutcomeSuccess, ExitOK
}

// report writes the diagnostic for err and returns its outcome label.
func (p *Probe) report(err error) string {
	var (
		statusErr    *llm.StatusError
		malformedErr *llm.MalformedJSONError
	)

	switch {
	case errors.Is(err, llm.ErrConnection):
		fmt.Fprintf(p.stderr, "Error: Cannot connect to %s\n", p.url)
		return metrics.OutcomeConnectionError
	case errors.Is(err, llm.ErrTimeout):
		fmt.Fprintln(p.stderr, "Error: Request timed out")
		return metrics.OutcomeTimeout
	case errors.As(err, &statusErr):
		fmt.Fprintf(p.stderr, "HTTP Error: %v\n", statusErr)
		fmt.Fprintf(p.stderr, "Response: %s\n", statusErr.Body)
		return metrics.OutcomeHTTPError
	case errors.As(err, &malformedErr):
		fmt.Fprintf(p.stderr, "Error: Invalid JSON response: %s\n", malformedErr.Body)
		return metrics.OutcomeInvalidJSON
	default:
		fmt.Fprintf(p.stderr, "Unexpected error: %v\n", err)
		return metrics.OutcomeUnexpectedError
	}
}

// indent re-formats raw with two-space indentation and a trailing newline.
func indent(raw json.RawMessage) ([]byte, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')

	return out.Bytes(), nil
}
