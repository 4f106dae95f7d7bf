// Package ingest loads the scraper's bookmarks.json export and normalizes it
// into the in-memory record store. Normalization is all-or-nothing: if no
// valid record survives, no store is produced.
package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"bookmarkchat/internal/domain"
)

// ErrNoRecords is returned when the input batch contains no usable record.
var ErrNoRecords = errors.New("no valid bookmark records in input")

// textFields is the priority order for picking a record's primary content.
var textFields = []string{"full_text", "text", "title", "content"}

// LoadFile reads a bookmarks JSON export from disk and normalizes it.
func LoadFile(path string, log *zap.Logger) ([]domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks file: %w", err)
	}
	return Normalize(data, log)
}

// Normalize parses a raw JSON array of bookmark objects into records,
// preserving input order (the scraper emits newest-first). Records missing
// all text fields, with empty or "N/A" content, or duplicating an earlier
// identifier are dropped silently; malformed metrics default to zero.
func Normalize(data []byte, log *zap.Logger) ([]domain.Record, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse bookmarks json: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNoRecords
	}
	var records []domain.Record
	seen := map[string]struct{}{}
	dropped := 0
	for _, item := range raw {
		text := pickText(item)
		if text == "" {
			dropped++
			continue
		}
		r := domain.Record{
			Text:         text,
			Author:       stringField(item, "author_name"),
			AuthorHandle: stringField(item, "author_handle"),
			Likes:        intField(item, "likes"),
			Retweets:     intField(item, "retweets"),
			Replies:      intField(item, "replies"),
			Views:        intField(item, "views"),
			Date:         stringField(item, "tweet_date"),
			URL:          stringField(item, "tweet_url"),
		}
		r.ID = r.URL
		if r.ID == "" {
			r.ID = hashString(text)
		}
		if _, dup := seen[r.ID]; dup {
			dropped++
			continue
		}
		seen[r.ID] = struct{}{}
		records = append(records, r)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	log.Info("ingested bookmarks",
		zap.Int("records", len(records)),
		zap.Int("dropped", dropped))
	return records, nil
}

func pickText(item map[string]any) string {
	for _, field := range textFields {
		v := stringField(item, field)
		if v != "" {
			return v
		}
	}
	return ""
}

// stringField extracts a trimmed string, treating the scraper's "N/A"
// placeholder as absent.
func stringField(item map[string]any, key string) string {
	v, ok := item[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "N/A" {
		return ""
	}
	return s
}

// intField coerces a numeric metric; absent, malformed or negative values
// become zero.
func intField(item map[string]any, key string) int {
	v, ok := item[key]
	if !ok {
		return 0
	}
	n := 0
	switch t := v.(type) {
	case float64:
		n = int(t)
	case json.Number:
		if parsed, err := t.Int64(); err == nil {
			n = int(parsed)
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			n = parsed
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
