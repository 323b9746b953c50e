package llm

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/kitbuilder587/llama-probe/internal/domain"
)

var (
	ErrConnection    = errors.New("cannot connect")
	ErrTimeout       = errors.New("request timed out")
	ErrHTTPStatus    = errors.New("http error status")
	ErrMalformedJSON = errors.New("invalid json response")
	ErrRequestFailed = errors.New("request failed")
)

type Client interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (json.RawMessage, error)
}
