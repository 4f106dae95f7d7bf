package agent

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"bookmarkchat/internal/domain"
)

// wordPattern compiles a case-insensitive whole-word pattern for a term.
// The boundary anchors are load-bearing: a short synonym like "ai" must not
// match inside "said". `\b` never fires next to a non-word character, so a
// term edged by one (a "@handle" or "#hashtag" topic) gets a whitespace
// anchor on that side instead.
func wordPattern(term string) *regexp.Regexp {
	t := strings.TrimSpace(term)
	left, right := `\b`, `\b`
	if r, _ := utf8.DecodeRuneInString(t); !isWordRune(r) {
		left = `(?:^|\s)`
	}
	if r, _ := utf8.DecodeLastRuneInString(t); !isWordRune(r) {
		right = `(?:\s|$)`
	}
	return regexp.MustCompile(`(?i)` + left + regexp.QuoteMeta(t) + right)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// MatchBroad filters records to those where any synonym appears as a
// whole-word match in the content or either author field. Input order is
// preserved (stable filter, not a sort).
func MatchBroad(records []domain.Record, synonyms []string) []domain.Record {
	return match(records, synonyms, func(r domain.Record) string {
		return r.Text + "\n" + r.Author + "\n" + r.AuthorHandle
	})
}

// MatchEntity is the stricter variant used when the question names a known
// entity: only the content field is searched, so author-name collisions do
// not produce false positives.
func MatchEntity(records []domain.Record, synonyms []string) []domain.Record {
	return match(records, synonyms, func(r domain.Record) string {
		return r.Text
	})
}

func match(records []domain.Record, synonyms []string, fields func(domain.Record) string) []domain.Record {
	patterns := make([]*regexp.Regexp, 0, len(synonyms))
	for _, s := range synonyms {
		if strings.TrimSpace(s) == "" {
			continue
		}
		patterns = append(patterns, wordPattern(s))
	}
	var out []domain.Record
	for _, r := range records {
		haystack := fields(r)
		for _, p := range patterns {
			if p.MatchString(haystack) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// matchesAny reports whether any term from the list appears as a whole word
// in the text.
func matchesAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.TrimSpace(t) == "" {
			continue
		}
		if wordPattern(t).MatchString(text) {
			return true
		}
	}
	return false
}
