// Package ontology holds the static topic-synonym table and keyword lexicons
// used for deterministic query filtering. The tables are built once at startup
// and never mutated afterwards.
package ontology

import (
	"sort"
	"strings"
)

// Ontology maps canonical topic names to their synonym sets and carries the
// auxiliary lexicons used by ranking and sentiment filtering.
type Ontology struct {
	topics    map[string][]string
	entities  map[string]struct{}
	positive  map[string]struct{}
	aiLexicon map[string]struct{}
}

// Default returns the built-in ontology covering the topics the bookmark
// corpus is about. Canonical keys are members of their own synonym sets.
func Default() *Ontology {
	topics := map[string][]string{
		"ai": {
			"ai", "artificial intelligence", "machine learning", "ml",
			"deep learning", "neural network", "llm", "llms", "genai",
			"gpt", "chatgpt", "openai", "gemini", "claude", "xai",
			"agents", "agentic",
		},
		"cricket": {
			"cricket", "ipl", "odi", "t20", "test match", "wicket",
			"batsman", "bowler", "batting", "bowling", "innings",
		},
		"startups": {
			"startups", "startup", "founder", "founders", "vc",
			"venture capital", "seed round", "yc", "y combinator",
		},
		"crypto": {
			"crypto", "cryptocurrency", "bitcoin", "btc", "ethereum",
			"eth", "blockchain", "defi", "web3",
		},
		"programming": {
			"programming", "coding", "software", "developer", "devs",
			"golang", "python", "rust", "javascript", "typescript",
			"open source",
		},
		"elon musk": {
			"elon musk", "elon", "musk", "tesla", "spacex",
		},
		"sam altman": {
			"sam altman", "altman",
		},
		"virat kohli": {
			"virat kohli", "virat", "kohli",
		},
	}
	entities := toSet([]string{"elon musk", "sam altman", "virat kohli"})
	positive := toSet([]string{
		"great", "awesome", "amazing", "love", "loved", "excellent",
		"good", "fantastic", "wonderful", "impressive", "brilliant",
		"cool", "best", "incredible", "insightful", "helpful",
		"beautiful", "excited", "exciting",
	})
	aiLexicon := toSet([]string{
		"ai", "artificial intelligence", "machine learning", "ml",
		"deep learning", "neural network", "llm", "llms", "genai",
		"gpt", "chatgpt", "openai", "gemini", "claude", "xai",
		"anthropic", "deepmind", "transformer", "agents", "agentic",
	})
	return &Ontology{
		topics:    topics,
		entities:  entities,
		positive:  positive,
		aiLexicon: aiLexicon,
	}
}

// Expand returns the synonym set for a topic term. The result always contains
// the (lower-cased, trimmed) input itself; every topic entry whose canonical
// key equals the input or whose synonym set contains it is unioned in.
func (o *Ontology) Expand(topic string) []string {
	term := strings.ToLower(strings.TrimSpace(topic))
	set := map[string]struct{}{}
	if term != "" {
		set[term] = struct{}{}
	}
	for key, syns := range o.topics {
		if key == term || contains(syns, term) {
			for _, s := range syns {
				set[s] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Keys returns all canonical topic names in sorted order.
func (o *Ontology) Keys() []string {
	keys := make([]string, 0, len(o.topics))
	for k := range o.topics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AllTerms returns every canonical key and synonym member plus the auxiliary
// AI lexicon, longest-first so multi-word terms win over their substrings.
func (o *Ontology) AllTerms() []string {
	set := map[string]struct{}{}
	for key, syns := range o.topics {
		set[key] = struct{}{}
		for _, s := range syns {
			set[s] = struct{}{}
		}
	}
	for t := range o.aiLexicon {
		set[t] = struct{}{}
	}
	terms := make([]string, 0, len(set))
	for t := range set {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	return terms
}

// EntityTerms returns every named-entity key and synonym member, longest
// first so "elon musk" is tried before "elon".
func (o *Ontology) EntityTerms() []string {
	set := map[string]struct{}{}
	for key := range o.entities {
		set[key] = struct{}{}
		for _, s := range o.topics[key] {
			set[s] = struct{}{}
		}
	}
	terms := make([]string, 0, len(set))
	for t := range set {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	return terms
}

// IsEntity reports whether the term resolves to a named entity rather than a
// broad topic. Synonym members of an entity key count as that entity.
func (o *Ontology) IsEntity(term string) bool {
	t := strings.ToLower(strings.TrimSpace(term))
	if _, ok := o.entities[t]; ok {
		return true
	}
	for key := range o.entities {
		if contains(o.topics[key], t) {
			return true
		}
	}
	return false
}

// PositiveWords returns the static positive-sentiment lexicon.
func (o *Ontology) PositiveWords() []string {
	return sortedKeys(o.positive)
}

// AIWords returns the auxiliary AI keyword lexicon.
func (o *Ontology) AIWords() []string {
	return sortedKeys(o.aiLexicon)
}

// IsAITerm reports whether the term belongs to the AI keyword lexicon.
func (o *Ontology) IsAITerm(term string) bool {
	_, ok := o.aiLexicon[strings.ToLower(strings.TrimSpace(term))]
	return ok
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, term string) bool {
	for _, s := range list {
		if s == term {
			return true
		}
	}
	return false
}
