package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrMissingSource         = errors.New("please provide at least one source: website link or github repository")
	ErrMissingCredentials    = errors.New("missing user email or process id")
	ErrNotAuthenticated      = errors.New("not signed in")
	ErrMissingProcessID      = errors.New("response did not include a process id")
	ErrEmptySelection        = errors.New("no text selected")
	ErrExplainSuperseded     = errors.New("explanation superseded by a newer selection")
	ErrNoAudio               = errors.New("no audio available")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSecretNotFound        = errors.New("secret not found")
	ErrSummaryWaitTimeout    = errors.New("timed out waiting for summary")
	ErrAuthFailed            = errors.New("authentication failed")
	ErrSubmissionFailed      = errors.New("submission failed")
	ErrSummaryFetchFailed    = errors.New("failed to get summary")
	ErrChatFailed            = errors.New("chat request failed")
	ErrTranslationFailed     = errors.New("translation failed")
	ErrSpeechSynthesisFailed = errors.New("text-to-speech conversion failed")
)

// ValidationError is a client-side precondition failure; no request was made.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// RequestError is a non-2xx response from the backend.
type RequestError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}

	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Detail)
}

// NetworkError is a transport failure before any response arrived.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProviderError is a failure reported by the translation or speech provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// OperationError carries a user-facing message for a failed operation. Kind is
// one of the Err*Failed sentinels.
type OperationError struct {
	Kind    error
	Message string
	Err     error
}

func NewOperationError(kind error, fallback string, err error) *OperationError {
	message := fallback
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Detail != "" {
		message = reqErr.Detail
	}

	return &OperationError{Kind: kind, Message: message, Err: err}
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}
