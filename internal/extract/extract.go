package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mikey/mail-topology/internal/core"
	"github.com/mikey/mail-topology/internal/ignore"
	"go.uber.org/zap"
)

var (
	// ErrMissingField is returned when a message lacks a From or Date header
	ErrMissingField = errors.New("message is missing a required header")
	// ErrAddressFormat is returned when a sender string does not contain exactly one @
	ErrAddressFormat = errors.New("sender address is malformed")
	// ErrDateFormat is returned when no supported date pattern matches
	ErrDateFormat = errors.New("date does not match any supported format")
)

// dateLayouts are tried in order; the first one that parses wins
var dateLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05",
	"Mon, 2 Jan 2006 15:04",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
}

// Extractor normalizes raw messages into per-sender mail counts and
// timestamp lists. Messages with missing or malformed headers are skipped
// and counted; only senders with at least threshold messages survive.
type Extractor struct {
	threshold int
	ignored   *ignore.Checker
	logger    *zap.Logger
}

// NewExtractor creates a new mail record extractor
func NewExtractor(threshold int, ignored *ignore.Checker, logger *zap.Logger) (*Extractor, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("threshold must be at least 1, got %d", threshold)
	}
	return &Extractor{
		threshold: threshold,
		ignored:   ignored,
		logger:    logger,
	}, nil
}

// Extract consumes the source until exhaustion and returns counts and
// timestamp lists for every sender meeting the threshold. Unparsable dates
// skip the message rather than aborting the run; the skip is logged and
// counted so a noisy corpus is visible without being fatal.
func (e *Extractor) Extract(ctx context.Context, src core.MessageSource) (*core.ExtractionResult, error) {
	counts := make(map[string]int)
	times := make(map[string][]time.Time)
	var stats core.ExtractionStats

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msg, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read message from source: %w", err)
		}

		rec, err := e.record(msg)
		switch {
		case err == nil:
		case errors.Is(err, ErrMissingField):
			stats.MissingHeader++
			continue
		case errors.Is(err, ErrAddressFormat):
			stats.BadAddress++
			continue
		case errors.Is(err, ErrDateFormat):
			stats.BadDate++
			e.logger.Warn("Skipping message with unparsable date",
				zap.String("date", msg.Date))
			continue
		default:
			return nil, err
		}

		if e.ignored.IsIgnored(rec.Sender) {
			stats.Ignored++
			continue
		}

		counts[rec.Sender]++
		times[rec.Sender] = append(times[rec.Sender], rec.Timestamp)
		stats.Accepted++
	}

	// Apply the activity threshold (inclusive)
	kept := make(map[string]int, len(counts))
	keptTimes := make(map[string][]time.Time, len(times))
	for sender, n := range counts {
		if n >= e.threshold {
			kept[sender] = n
			keptTimes[sender] = times[sender]
		}
	}

	return &core.ExtractionResult{
		CountsBySender: kept,
		TimesBySender:  keptTimes,
		Stats:          stats,
	}, nil
}

// record normalizes one message into a mail record
func (e *Extractor) record(msg *core.RawMessage) (core.MailRecord, error) {
	if msg.From == "" || msg.Date == "" {
		return core.MailRecord{}, ErrMissingField
	}

	sender, err := NormalizeAddress(msg.From)
	if err != nil {
		return core.MailRecord{}, err
	}

	ts, err := ParseDate(msg.Date)
	if err != nil {
		return core.MailRecord{}, err
	}

	return core.MailRecord{Sender: sender, Timestamp: ts}, nil
}

// NormalizeAddress extracts the lowercase address from a raw From header.
// The raw string must contain exactly one @. When angle brackets are
// present the address is the substring strictly between < and >; otherwise
// the whole string is used.
func NormalizeAddress(from string) (string, error) {
	if strings.Count(from, "@") != 1 {
		return "", fmt.Errorf("%w: %q", ErrAddressFormat, from)
	}

	addr := from
	open := strings.Index(from, "<")
	end := strings.Index(from, ">")
	if open >= 0 && end > open {
		addr = from[open+1 : end]
	}

	return strings.ToLower(strings.TrimSpace(addr)), nil
}

// ParseDate parses a raw Date header value. The value is truncated after
// the time of day, any trailing +HHMM offset segment is stripped, and the
// supported layouts are tried in fixed order.
func ParseDate(raw string) (time.Time, error) {
	trimmed := normalizeDate(raw)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, raw)
}

// normalizeDate cuts a raw Date header value down to the parsable portion.
// Keeping five characters past the first colon retains HH:MM:SS and drops
// anything after it, matching how far the supported layouts reach.
func normalizeDate(raw string) string {
	if i := strings.Index(raw, ":"); i >= 0 {
		end := i + 6
		if end > len(raw) {
			end = len(raw)
		}
		raw = raw[:end]
	}
	if i := strings.Index(raw, " +"); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}
