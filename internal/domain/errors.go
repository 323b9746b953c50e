package domain

import "errors"

var (
	ErrEmptyPrompt        = errors.New("empty prompt")
	ErrInvalidNPredict    = errors.New("n_predict must be -1 or greater")
	ErrInvalidTemperature = errors.New("temperature must be non-negative")
)
