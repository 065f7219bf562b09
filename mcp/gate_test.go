package mcp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToolGate_Allow(t *testing.T) {
	t.Parallel()

	t.Run("enforces the per window budget", func(t *testing.T) {
		t.Parallel()

		gate := NewToolGate(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, gate.Allow("search_docs"), "call %d is within budget", i+1)
		}
		assert.False(t, gate.Allow("search_docs"), "the budget is spent")
	})

	t.Run("tools are limited independently", func(t *testing.T) {
		t.Parallel()

		gate := NewToolGate(1, time.Minute)

		assert.True(t, gate.Allow("search_docs"))
		assert.False(t, gate.Allow("search_docs"))
		assert.True(t, gate.Allow("list_docsets"), "other tools keep their own budget")
	})

	t.Run("non-positive configuration selects the defaults", func(t *testing.T) {
		t.Parallel()

		gate := NewToolGate(0, 0)

		for i := 0; i < RateLimitCalls; i++ {
			assert.True(t, gate.Allow("get_doc_content"), "call %d is within the default budget", i+1)
		}
		assert.False(t, gate.Allow("get_doc_content"))
	})
}
