package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"Quota exhausted", errors.New("googleapi: Error 429: Resource exhausted"), FailureQuota},
		{"Rate limited", errors.New("rate limit exceeded, try again later"), FailureQuota},
		{"Too many requests", errors.New("HTTP 429 Too Many Requests"), FailureQuota},
		{"Invalid API key", errors.New("API key not valid. Please pass a valid API key"), FailurePermission},
		{"Unauthorized", errors.New("401 unauthorized"), FailurePermission},
		{"Forbidden", errors.New("googleapi: Error 403: permission denied"), FailurePermission},
		{"Dial failure", errors.New("dial tcp 10.0.0.1:443: i/o timeout"), FailureNetwork},
		{"DNS failure", errors.New("lookup api.example.com: no such host"), FailureNetwork},
		{"Context deadline", errors.New("context deadline exceeded"), FailureNetwork},
		{"Wrapped error", fmt.Errorf("failed to generate content: %w", errors.New("connection reset by peer")), FailureNetwork},
		{"Unknown error", errors.New("something odd happened"), FailureGeneric},
		{"Nil error", nil, FailureGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFailure(tt.err))
		})
	}
}

func TestFailureMessageDistinct(t *testing.T) {
	kinds := []FailureKind{FailureQuota, FailureNetwork, FailurePermission, FailureGeneric}
	seen := make(map[string]bool)
	for _, kind := range kinds {
		msg := FailureMessage(kind)
		assert.NotEmpty(t, msg)
		assert.False(t, seen[msg], "message for %s duplicates another bucket", kind)
		seen[msg] = true
	}
}
