package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/patrickwarner/adlibrary/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifies(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, issue(&out, "s3cret", auth.Identity{ID: "u1", Email: "u1@example.com"}, time.Hour))

	id, err := auth.NewVerifier([]byte("s3cret")).Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "u1", id.ID)
	assert.Equal(t, "u1@example.com", id.Email)
}

func TestIssueRequiresSecretAndUser(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, issue(&out, "", auth.Identity{ID: "u1"}, time.Hour))
	assert.Error(t, issue(&out, "s3cret", auth.Identity{}, time.Hour))
	assert.Empty(t, out.String())
}
