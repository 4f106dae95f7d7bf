package agent

import (
	"fmt"
	"strings"

	"bookmarkchat/internal/domain"
)

// Display caps. Applied only at formatting time so ranking always sees the
// full filtered set.
const (
	defaultDisplayLimit   = 5
	sentimentDisplayLimit = 3
)

const fallbackDisclaimer = "I couldn't find positive sentiment in these, but here are AI-related bookmarks:"

// formatRecord renders one record in the answer body.
func formatRecord(r domain.Record) string {
	var b strings.Builder
	author := r.Author
	if author == "" {
		author = "unknown"
	}
	fmt.Fprintf(&b, "- %s", snippet(r.Text, 200))
	fmt.Fprintf(&b, "\n  by %s", author)
	if r.AuthorHandle != "" {
		fmt.Fprintf(&b, " (%s)", r.AuthorHandle)
	}
	fmt.Fprintf(&b, " | %d likes", r.Likes)
	if r.Date != "" {
		fmt.Fprintf(&b, " | %s", r.Date)
	}
	if r.URL != "" {
		fmt.Fprintf(&b, "\n  %s", r.URL)
	}
	return b.String()
}

// formatList renders an intro line plus up to limit records, returning both
// the answer text and the records actually shown.
func formatList(intro string, records []domain.Record, limit int) (string, []domain.Record) {
	if limit <= 0 {
		limit = defaultDisplayLimit
	}
	shown := records
	if len(shown) > limit {
		shown = shown[:limit]
	}
	lines := make([]string, 0, len(shown)+1)
	lines = append(lines, intro)
	for _, r := range shown {
		lines = append(lines, formatRecord(r))
	}
	return strings.Join(lines, "\n"), shown
}

func snippet(text string, max int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
