package domain

import "strings"

const (
	DefaultPrompt      = "What is artificial intelligence?"
	DefaultNPredict    = 100
	DefaultTemperature = 0.7
)

// NPredictUnlimited lets the server generate until a stop condition.
const NPredictUnlimited = -1

type CompletionRequest struct {
	Prompt      string   `json:"prompt"`
	NPredict    int      `json:"n_predict"`
	Temperature float64  `json:"temperature"`
	Stop        []string `json:"stop"`
}

func DefaultCompletionRequest() CompletionRequest {
	return CompletionRequest{
		Prompt:      DefaultPrompt,
		NPredict:    DefaultNPredict,
		Temperature: DefaultTemperature,
		Stop:        []string{"\n"},
	}
}

func (r *CompletionRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}
	if r.NPredict < NPredictUnlimited {
		return ErrInvalidNPredict
	}
	if r.Temperature < 0 {
		return ErrInvalidTemperature
	}
	return nil
}
