package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// StatusError is returned for 4xx and 5xx responses. Body keeps the raw
// response text for diagnostics.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	kind := "Server"
	if e.StatusCode < 500 {
		kind = "Client"
	}
	return fmt.Sprintf("%d %s Error: %s for url: %s", e.StatusCode, kind, reason(e.StatusCode, e.Status), e.URL)
}

func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// reason strips the numeric prefix net/http puts into Response.Status.
func reason(code int, status string) string {
	if text, ok := strings.CutPrefix(status, fmt.Sprintf("%d ", code)); ok && text != "" {
		return text
	}
	return http.StatusText(code)
}

// MalformedJSONError keeps the body that failed to parse.
type MalformedJSONError struct {
	Body []byte
	Err  error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedJSON, e.Err)
}

func (e *MalformedJSONError) Unwrap() []error {
	return []error{ErrMalformedJSON, e.Err}
}

func HandleHTTPError(resp *http.Response, body []byte, logger *zap.Logger, provider string) error {
	if resp.StatusCode < 400 || resp.StatusCode >= 600 {
		return nil
	}

	logger.Debug(provider+" request failed",
		zap.Int("status", resp.StatusCode),
		zap.String("body", string(body)),
	)

	url := ""
	if resp.Request != nil && resp.Request.URL != nil {
		url = resp.Request.URL.String()
	}

	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        url,
		Body:       body,
	}
}

func ParseJSON(body []byte) (json.RawMessage, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &MalformedJSONError{Body: body, Err: err}
	}
	return json.RawMessage(body), nil
}

// DoRequest sends req and reads the whole body. Transport failures are
// wrapped with ErrConnection, ErrTimeout or ErrRequestFailed.
func DoRequest(client *http.Client, req *http.Request) (*http.Response, []byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, classifyTransportError(fmt.Errorf("read response: %w", err))
	}

	return resp, body, nil
}

func classifyTransportError(err error) error {
	// a dial that times out is still a connection failure
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrRequestFailed, err)
}
