package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_InvalidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rc := newRootCommand(&stdout, &stderr)
	rc.SetArgs([]string{"--log-level", "LOUD"})

	err := rc.ExecuteContext(context.Background())
	assert.EqualError(t, err, `unknown log level "LOUD"`)
}

func TestRootCommand_ServeUntilCancelled(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rc := newRootCommand(&stdout, &stderr)
	rc.SetArgs([]string{"--bind", "127.0.0.1:0", "--log-format", "json"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, rc.ExecuteContext(ctx))
	assert.Contains(t, stderr.String(), `"msg":"server listening"`)
	assert.Contains(t, stderr.String(), `"msg":"server shutting down"`)
}
