package agent

import (
	"regexp"
	"strconv"
	"strings"
)

// FilterDescriptor is the structured intent parsed from one question.
// Zero values mean "not present". Extraction is a pure function of the
// question text: identical questions always yield identical descriptors.
type FilterDescriptor struct {
	Likes             int
	Views             int
	Topic             string
	SentimentPositive bool
	Recency           bool
	MostLiked         bool
	Summarize         bool
	RankByUser        bool
}

// Extraction patterns. All checks run against the lower-cased question;
// rules are independent and multiple may fire.
var (
	likesPattern = regexp.MustCompile(`(\d+)\s*\+?\s*likes?\b`)
	viewsPattern = regexp.MustCompile(`(\d+)\s*\+?\s*views?\b`)
	topicPattern = regexp.MustCompile(`(?:about|related to|mentioning)\s+([\w #@.'-]+)`)
)

var (
	recencyMarkers   = []string{"most recent", "latest"}
	mostLikedMarkers = []string{"most liked", "top liked"}
	summarizeMarkers = []string{"summarize", "main topic", "what topics", "themes"}
	userRankMarkers  = []string{"most-bookmarked", "most bookmarked", "top users", "most frequent users"}
)

// Extract parses a question into a FilterDescriptor. It never fails:
// a question matching no rule yields the zero descriptor, which the
// orchestrator routes to semantic retrieval.
func Extract(question string) FilterDescriptor {
	q := strings.ToLower(question)
	var d FilterDescriptor

	if m := likesPattern.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			d.Likes = n
		}
	}
	if m := viewsPattern.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			d.Views = n
		}
	}
	if m := topicPattern.FindStringSubmatch(q); m != nil {
		d.Topic = strings.TrimSpace(m[1])
	}
	d.SentimentPositive = strings.Contains(q, "positive")
	d.Recency = containsAny(q, recencyMarkers)
	d.MostLiked = containsAny(q, mostLikedMarkers)
	d.Summarize = containsAny(q, summarizeMarkers)
	d.RankByUser = containsAny(q, userRankMarkers)
	return d
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
