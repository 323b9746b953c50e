package mock

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kitbuilder587/llama-probe/internal/domain"
	"github.com/kitbuilder587/llama-probe/internal/llm"
)

type Client struct {
	Response json.RawMessage
	Error    error
	Delay    time.Duration

	CallCount   int
	LastRequest domain.CompletionRequest
}

func New() *Client {
	return &Client{
		Response: json.RawMessage(`{"content": "This is a mock completion."}`),
	}
}

func (c *Client) WithResponse(response string) *Client {
	c.Response = json.RawMessage(response)
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (json.RawMessage, error) {
	c.CallCount++
	c.LastRequest = req

	if c.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Delay):
		}
	}

	if c.Error != nil {
		return nil, c.Error
	}

	return c.Response, nil
}

var _ llm.Client = (*Client)(nil)
