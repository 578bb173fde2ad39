package mbox

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleMbox = `From alice@example.com Mon Jun  5 10:00:00 2023
From: Alice <alice@example.com>
Date: Mon, 5 Jun 2023 10:00:00 +0200
Subject: hello

Body line one.
Body line two.
From bob@example.com Tue Jun  6 11:30:00 2023
From: bob@example.com
Date: Tue, 6 Jun 2023 11:30:00 +0200
Subject: re: hello

Another body.
From carol@example.com Wed Jun  7 09:15:00 2023
Subject: no sender header here

Malformed on purpose.
`

func writeMbox(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mbox")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.mbox"), zap.NewNop())
	require.Error(t, err)
}

func TestNext_YieldsMessagesInOrder(t *testing.T) {
	src, err := Open(writeMbox(t, sampleMbox), zap.NewNop())
	require.NoError(t, err)
	defer src.Close()

	first, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "Alice <alice@example.com>", first.From)
	assert.Equal(t, "Mon, 5 Jun 2023 10:00:00 +0200", first.Date)

	second, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", second.From)
	assert.Equal(t, "Tue, 6 Jun 2023 11:30:00 +0200", second.Date)

	// The third message has no From/Date headers; it still comes through,
	// with empty values, for downstream to skip.
	third, err := src.Next()
	require.NoError(t, err)
	assert.Empty(t, third.From)
	assert.Empty(t, third.Date)

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)

	// Exhausted sources stay exhausted
	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}

func TestNext_EmptyFile(t *testing.T) {
	src, err := Open(writeMbox(t, ""), zap.NewNop())
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}

func TestNext_SingleMessageWithoutTrailingNewline(t *testing.T) {
	content := "From x@example.com Mon Jun  5 10:00:00 2023\nFrom: x@example.com\nDate: Mon, 5 Jun 2023 10:00:00\n\nbody"
	src, err := Open(writeMbox(t, content), zap.NewNop())
	require.NoError(t, err)
	defer src.Close()

	msg, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "x@example.com", msg.From)

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}
