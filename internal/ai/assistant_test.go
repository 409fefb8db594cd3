package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	if Classify(nil) != nil {
		t.Fatal("expected nil for nil error")
	}

	tests := []struct {
		name   string
		err    error
		expect error
	}{
		{name: "deadline", err: fmt.Errorf("call: %w", context.DeadlineExceeded), expect: ErrRemoteTimeout},
		{name: "generic", err: errors.New("boom"), expect: ErrRemoteError},
		{name: "already auth", err: fmt.Errorf("wrapped: %w", ErrRemoteAuth), expect: ErrRemoteAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.err)
			if !errors.Is(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
			if !errors.Is(got, tt.err) && !errors.Is(tt.err, got) {
				t.Fatalf("expected original error to be preserved in %v", got)
			}
		})
	}
}
