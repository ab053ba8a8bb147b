package job

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyErrorBotDetection(t *testing.T) {
	for _, msg := range []string{
		"Sign in to confirm you're not a bot. This helps protect our community.",
		"HTTP Error 403: Forbidden",
	} {
		got := classifyError(msg)
		assert.True(t, strings.Contains(got, "retry"), "want retry hint for %q, got %q", msg, got)
	}
}

func TestClassifyErrorTimeout(t *testing.T) {
	got := classifyError("Unable to download webpage: The read operation timed out")
	assert.Contains(t, got, "timed out")
	assert.Contains(t, got, "retry")
}

func TestClassifyErrorPassthrough(t *testing.T) {
	msg := "Unsupported URL: https://example.com/page"
	assert.Equal(t, msg, classifyError(msg))
}
