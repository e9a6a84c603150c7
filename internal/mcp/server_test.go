package mcp

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Server:
// - NewServer registers the tool and tolerates a nil logger
// - Listen returns cleanly when input ends or the context is cancelled

func TestNewServer(t *testing.T) {
	t.Parallel()

	checker, _ := newChecker(t)
	s := NewServer(checker, "test", nil)
	require.NotNil(t, s)
	assert.NotNil(t, s.mcp)
	assert.NotNil(t, s.logger)
}

func TestServer_ListenStopsAtEndOfInput(t *testing.T) {
	t.Parallel()

	checker, _ := newChecker(t)
	s := NewServer(checker, "test", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var out bytes.Buffer
	assert.NoError(t, s.Listen(ctx, strings.NewReader(""), &out))
}
