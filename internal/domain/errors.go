package domain

import "errors"

var (
	// ErrTimeout is returned when the AI completion does not finish before its deadline
	ErrTimeout = errors.New("AI completion timed out")

	// ErrProviderError is returned when the AI provider is reachable but the call fails
	// or the response cannot be used
	ErrProviderError = errors.New("AI provider request failed")

	// ErrCapabilityDisabled is returned when AI cleaning was disabled at startup
	ErrCapabilityDisabled = errors.New("AI capability disabled")

	// ErrUnexpectedFault describes any other failure inside the cleaning pipeline
	ErrUnexpectedFault = errors.New("unexpected fault in cleaning pipeline")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
