package agent

import (
	"sort"
	"strings"

	"bookmarkchat/internal/domain"
	"bookmarkchat/internal/ontology"
)

// SentimentTier tags the outcome of the sentiment/topic fallback ladder.
type SentimentTier int

const (
	// TierStrict means records matched both the positive lexicon and the
	// topic lexicon.
	TierStrict SentimentTier = iota
	// TierFallback means only the topic lexicon matched; the answer carries
	// a disclaimer that no positive sentiment was found.
	TierFallback
	// TierNoMatch means nothing matched at all.
	TierNoMatch
)

// DetectTopicTerm scans the question for the first ontology term (canonical
// keys, synonym members and the AI lexicon) that appears as a whole word.
// Longer terms are tried first so "elon musk" wins over "elon". Returns ""
// when no term is present.
func DetectTopicTerm(question string, onto *ontology.Ontology) string {
	q := strings.ToLower(question)
	for _, term := range onto.AllTerms() {
		if wordPattern(term).MatchString(q) {
			return term
		}
	}
	return ""
}

// MostLiked selects the record with the maximal like count, scoped to a
// topic when the question mentions one. The topic check runs against the
// full keyword plus ontology-key list. Ties resolve to the first record in
// input order. Returns false when no candidate has likes above zero.
func MostLiked(records []domain.Record, question string, onto *ontology.Ontology) (domain.Record, bool) {
	candidates := records
	if term := DetectTopicTerm(question, onto); term != "" {
		synonyms := onto.Expand(term)
		matched := MatchBroad(records, synonyms)
		// A record can still qualify through the auxiliary AI lexicon even
		// when no synonym hits, as long as the question is AI-scoped.
		if onto.IsAITerm(term) {
			seen := make(map[string]struct{}, len(matched))
			for _, r := range matched {
				seen[r.ID] = struct{}{}
			}
			for _, r := range records {
				if _, ok := seen[r.ID]; ok {
					continue
				}
				if matchesAny(r.Text, onto.AIWords()) {
					matched = append(matched, r)
				}
			}
		}
		candidates = matched
	}
	var best domain.Record
	found := false
	for _, r := range candidates {
		if !found || r.Likes > best.Likes {
			best = r
			found = true
		}
	}
	if !found || best.Likes == 0 {
		return domain.Record{}, false
	}
	return best, true
}

// MostRecent returns the head of the record sequence. The store is kept in
// reverse-chronological ingestion order, so no date parsing happens here.
func MostRecent(records []domain.Record) (domain.Record, bool) {
	if len(records) == 0 {
		return domain.Record{}, false
	}
	return records[0], true
}

// AuthorCount is one entry of the most-bookmarked-authors ranking.
type AuthorCount struct {
	Name  string
	Count int
}

// TopAuthors counts author occurrences across the record set and returns the
// top n as (name, count) pairs, ordered by count descending with ties broken
// by first-encountered order.
func TopAuthors(records []domain.Record, n int) []AuthorCount {
	if n <= 0 {
		n = 5
	}
	counts := map[string]int{}
	firstSeen := map[string]int{}
	for i, r := range records {
		name := strings.TrimSpace(r.Author)
		if name == "" {
			continue
		}
		if _, ok := counts[name]; !ok {
			firstSeen[name] = i
		}
		counts[name]++
	}
	out := make([]AuthorCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, AuthorCount{Name: name, Count: c})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return firstSeen[out[i].Name] < firstSeen[out[j].Name]
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// ApplyThresholds keeps records meeting the inclusive likes/views lower
// bounds from the descriptor, then applies the positive-sentiment lexicon
// filter when requested. Input order is preserved.
func ApplyThresholds(records []domain.Record, d FilterDescriptor, onto *ontology.Ontology) []domain.Record {
	var out []domain.Record
	for _, r := range records {
		if r.Likes < d.Likes || r.Views < d.Views {
			continue
		}
		if d.SentimentPositive && !matchesAny(r.Text, onto.PositiveWords()) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortByLikes returns a copy sorted by likes descending, stable so ties keep
// input order.
func SortByLikes(records []domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	return out
}

// SentimentLadder applies the three-tier positive-sentiment/topic fallback:
// strict (positive AND topic lexicon), fallback (topic lexicon alone, with a
// disclaimer), or no match. Likes/views thresholds from the descriptor are
// applied before the ladder. The ladder never silently returns empty when a
// softer match exists.
func SentimentLadder(records []domain.Record, d FilterDescriptor, onto *ontology.Ontology) ([]domain.Record, SentimentTier) {
	var eligible []domain.Record
	for _, r := range records {
		if r.Likes < d.Likes || r.Views < d.Views {
			continue
		}
		eligible = append(eligible, r)
	}
	var strict, soft []domain.Record
	for _, r := range eligible {
		topicHit := matchesAny(r.Text, onto.AIWords())
		if !topicHit {
			continue
		}
		soft = append(soft, r)
		if matchesAny(r.Text, onto.PositiveWords()) {
			strict = append(strict, r)
		}
	}
	if len(strict) > 0 {
		return strict, TierStrict
	}
	if len(soft) > 0 {
		return soft, TierFallback
	}
	return nil, TierNoMatch
}
