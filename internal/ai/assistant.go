package ai

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrRemoteTimeout is returned when the text generation call exceeds its deadline.
	ErrRemoteTimeout = errors.New("remote text generation timed out")
	// ErrRemoteAuth is returned when the provider rejects the configured credential.
	ErrRemoteAuth = errors.New("remote text generation rejected credentials")
	// ErrRemoteError covers every other transport or provider failure.
	ErrRemoteError = errors.New("remote text generation failed")
)

// TextGenerator produces free text for a prompt. Output format is not guaranteed,
// callers must parse defensively.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, maxOutputTokens int) (string, error)
}

// ModelNamer is implemented by generators that can report their model for logging.
type ModelNamer interface {
	Model() string
}

// Classify wraps err with the matching remote sentinel. Errors that are already
// classified are returned unchanged.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrRemoteTimeout), errors.Is(err, ErrRemoteAuth), errors.Is(err, ErrRemoteError):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrRemoteTimeout, err)
	default:
		return fmt.Errorf("%w: %w", ErrRemoteError, err)
	}
}
