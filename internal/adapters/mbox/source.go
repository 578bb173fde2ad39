// Package mbox implements the message source over a local mbox file.
// Messages are split on the "From " separator lines and only their header
// block is parsed; bodies pass through unread.
package mbox

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/emersion/go-message"
	"github.com/mikey/mail-topology/internal/core"
	"go.uber.org/zap"
)

// Source reads messages from an mbox file in mailbox order
type Source struct {
	path    string
	f       *os.File
	r       *bufio.Reader
	buf     bytes.Buffer
	started bool
	done    bool
	logger  *zap.Logger
}

// Open opens an mbox file as a message source. A missing or unreadable
// file is fatal here, before any pipeline work starts.
func Open(path string, logger *zap.Logger) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mbox %q: %w", path, err)
	}
	return &Source{
		path:   path,
		f:      f,
		r:      bufio.NewReader(f),
		logger: logger,
	}, nil
}

// Next returns the next message in the mailbox, or io.EOF when exhausted.
// A message whose headers cannot be parsed is surfaced with empty header
// values; downstream decides how to treat it.
func (s *Source) Next() (*core.RawMessage, error) {
	if s.done {
		return nil, io.EOF
	}

	for {
		line, err := s.r.ReadString('\n')
		if len(line) > 0 {
			if strings.HasPrefix(line, "From ") {
				if s.started {
					msg := s.parse()
					s.buf.Reset()
					return msg, nil
				}
				s.started = true
				s.buf.Reset()
			} else if s.started {
				s.buf.WriteString(line)
			}
		}
		if err == io.EOF {
			s.done = true
			if s.started && s.buf.Len() > 0 {
				msg := s.parse()
				s.buf.Reset()
				return msg, nil
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read mbox %q: %w", s.path, err)
		}
	}
}

// Close releases the underlying file handle
func (s *Source) Close() error {
	return s.f.Close()
}

// parse extracts the From and Date headers from the buffered message
func (s *Source) parse() *core.RawMessage {
	entity, err := message.Read(bytes.NewReader(s.buf.Bytes()))
	if err != nil && !message.IsUnknownCharset(err) {
		s.logger.Warn("Failed to parse message headers",
			zap.String("mbox", s.path),
			zap.Error(err))
		return &core.RawMessage{}
	}
	return &core.RawMessage{
		From: entity.Header.Get("From"),
		Date: entity.Header.Get("Date"),
	}
}
