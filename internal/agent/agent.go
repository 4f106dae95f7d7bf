// Package agent implements the query-understanding and retrieval-filtering
// engine: intent extraction, synonym-scoped filtering, deterministic ranking
// and answer formatting, with semantic retrieval as the final fallback.
package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bookmarkchat/internal/domain"
	"bookmarkchat/internal/ontology"
)

// Retriever is the vector-retrieval capability the agent falls back to when
// no deterministic branch applies. Results come back nearest-first, resolved
// to full records.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]domain.Record, error)
}

// Generator is the generative-model capability: synchronous, single-shot,
// all context passed in the prompt.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options tunes the agent's display and retrieval sizes.
type Options struct {
	WorkingSetSize int
	DisplayLimit   int
	SentimentLimit int
	RetrievalTopK  int
	SummaryTopK    int
}

func (o *Options) applyDefaults() {
	if o.WorkingSetSize <= 0 {
		o.WorkingSetSize = 5
	}
	if o.DisplayLimit <= 0 {
		o.DisplayLimit = defaultDisplayLimit
	}
	if o.SentimentLimit <= 0 {
		o.SentimentLimit = sentimentDisplayLimit
	}
	if o.RetrievalTopK <= 0 {
		o.RetrievalTopK = 4
	}
	if o.SummaryTopK <= 0 {
		o.SummaryTopK = 20
	}
}

// SmartAgent routes questions through a priority-ordered intent decision
// tree over the record store, preferring deterministic, explainable
// filtering over opaque semantic search.
type SmartAgent struct {
	records   []domain.Record
	onto      *ontology.Ontology
	retriever Retriever
	generator Generator
	opts      Options
	log       *zap.Logger
}

// New creates a SmartAgent over an ingested record store. The store must be
// ordered newest-first; MostRecent relies on that.
func New(records []domain.Record, onto *ontology.Ontology, retriever Retriever, generator Generator, opts Options, log *zap.Logger) *SmartAgent {
	opts.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &SmartAgent{
		records:   records,
		onto:      onto,
		retriever: retriever,
		generator: generator,
		opts:      opts,
		log:       log,
	}
}

// WorkingSetSize returns how many shown records the caller should keep for
// follow-up questions.
func (a *SmartAgent) WorkingSetSize() int { return a.opts.WorkingSetSize }

// Invoke answers one question. When searchSpace is non-nil the question is
// resolved against it instead of the full record store, which is how
// follow-up questions ("the most liked one") narrow to the previous answer.
// The returned records are the ones actually shown, for seeding the next
// turn's working set. An empty result is a normal answer, not an error;
// errors only surface from the vector index or the generative model.
func (a *SmartAgent) Invoke(ctx context.Context, question string, searchSpace []domain.Record) (string, []domain.Record, error) {
	space := a.records
	if searchSpace != nil {
		space = searchSpace
	}
	d := Extract(question)
	in := classify(question, d, a.onto)
	a.log.Debug("classified question",
		zap.String("intent", in.kind.String()),
		zap.String("term", in.term))

	switch in.kind {
	case intentEntity:
		return a.answerEntity(space, in.term)
	case intentMostLiked:
		return a.answerMostLiked(space, question)
	case intentSentimentTopic:
		return a.answerSentimentLadder(space, d)
	case intentTopic:
		return a.answerTopic(space, d.Topic)
	case intentTopUsers:
		return a.answerTopAuthors(space)
	case intentRecent:
		return a.answerMostRecent(space)
	case intentThreshold:
		return a.answerThresholds(space, d)
	case intentSummarize:
		return a.answerSummary(ctx, question)
	default:
		return a.answerSemantic(ctx, question)
	}
}

type intentKind int

const (
	intentEntity intentKind = iota
	intentMostLiked
	intentSentimentTopic
	intentTopic
	intentTopUsers
	intentRecent
	intentThreshold
	intentSummarize
	intentFallback
)

func (k intentKind) String() string {
	switch k {
	case intentEntity:
		return "entity"
	case intentMostLiked:
		return "most_liked"
	case intentSentimentTopic:
		return "sentiment_topic"
	case intentTopic:
		return "topic"
	case intentTopUsers:
		return "top_users"
	case intentRecent:
		return "recent"
	case intentThreshold:
		return "threshold"
	case intentSummarize:
		return "summarize"
	default:
		return "fallback"
	}
}

type intent struct {
	kind intentKind
	term string
}

// classify maps a question and its descriptor to exactly one intent.
// The priority order is a deliberate tie-break policy: the strict
// entity-scoped match always wins over broader handlers, and threshold
// filtering only fires when nothing more specific did.
func classify(question string, d FilterDescriptor, onto *ontology.Ontology) intent {
	q := strings.ToLower(question)
	for _, term := range onto.EntityTerms() {
		if wordPattern(term).MatchString(q) {
			return intent{kind: intentEntity, term: term}
		}
	}
	switch {
	case d.MostLiked:
		return intent{kind: intentMostLiked}
	case d.SentimentPositive && matchesAny(q, onto.AIWords()):
		return intent{kind: intentSentimentTopic}
	case d.Topic != "":
		return intent{kind: intentTopic, term: d.Topic}
	case d.RankByUser:
		return intent{kind: intentTopUsers}
	case d.Recency:
		return intent{kind: intentRecent}
	case d.Likes > 0 || d.Views > 0 || d.SentimentPositive:
		return intent{kind: intentThreshold}
	case d.Summarize:
		return intent{kind: intentSummarize}
	default:
		return intent{kind: intentFallback}
	}
}

func (a *SmartAgent) answerEntity(space []domain.Record, term string) (string, []domain.Record, error) {
	matched := MatchEntity(space, a.onto.Expand(term))
	if len(matched) == 0 {
		return fmt.Sprintf("No bookmarks found mentioning %q.", term), nil, nil
	}
	text, shown := formatList(fmt.Sprintf("Bookmarks mentioning %q:", term), matched, a.opts.DisplayLimit)
	return text, shown, nil
}

func (a *SmartAgent) answerMostLiked(space []domain.Record, question string) (string, []domain.Record, error) {
	best, ok := MostLiked(space, question, a.onto)
	if !ok {
		return "No liked bookmarks matched your question.", nil, nil
	}
	return "Your most liked bookmark:\n" + formatRecord(best), []domain.Record{best}, nil
}

func (a *SmartAgent) answerSentimentLadder(space []domain.Record, d FilterDescriptor) (string, []domain.Record, error) {
	matched, tier := SentimentLadder(space, d, a.onto)
	switch tier {
	case TierStrict:
		text, shown := formatList("Positive AI-related bookmarks:", matched, a.opts.SentimentLimit)
		return text, shown, nil
	case TierFallback:
		text, shown := formatList(fallbackDisclaimer, matched, a.opts.SentimentLimit)
		return text, shown, nil
	default:
		return "No AI-related bookmarks found.", nil, nil
	}
}

func (a *SmartAgent) answerTopic(space []domain.Record, topic string) (string, []domain.Record, error) {
	matched := MatchBroad(space, a.onto.Expand(topic))
	if len(matched) == 0 {
		return fmt.Sprintf("No bookmarks found related to %q.", topic), nil, nil
	}
	text, shown := formatList(fmt.Sprintf("Bookmarks related to %q:", topic), matched, a.opts.DisplayLimit)
	return text, shown, nil
}

func (a *SmartAgent) answerTopAuthors(space []domain.Record) (string, []domain.Record, error) {
	top := TopAuthors(space, a.opts.DisplayLimit)
	if len(top) == 0 {
		return "No author information available.", nil, nil
	}
	lines := []string{"Your most bookmarked authors:"}
	for i, ac := range top {
		lines = append(lines, fmt.Sprintf("%d. %s - %d bookmarks", i+1, ac.Name, ac.Count))
	}
	return strings.Join(lines, "\n"), nil, nil
}

func (a *SmartAgent) answerMostRecent(space []domain.Record) (string, []domain.Record, error) {
	r, ok := MostRecent(space)
	if !ok {
		return "No date information available.", nil, nil
	}
	return "Your most recent bookmark:\n" + formatRecord(r), []domain.Record{r}, nil
}

func (a *SmartAgent) answerThresholds(space []domain.Record, d FilterDescriptor) (string, []domain.Record, error) {
	matched := SortByLikes(ApplyThresholds(space, d, a.onto))
	if len(matched) == 0 {
		return "No bookmarks matched those filters.", nil, nil
	}
	text, shown := formatList("Bookmarks matching your filters:", matched, a.opts.DisplayLimit)
	return text, shown, nil
}

func (a *SmartAgent) answerSummary(ctx context.Context, question string) (string, []domain.Record, error) {
	sources, err := a.retriever.Search(ctx, question, a.opts.SummaryTopK)
	if err != nil {
		return "", nil, fmt.Errorf("similarity search: %w", err)
	}
	if len(sources) == 0 {
		return "No bookmarks available to summarize.", nil, nil
	}
	answer, err := a.generator.Complete(ctx, summaryPrompt(sources))
	if err != nil {
		return "", nil, fmt.Errorf("generative model: %w", err)
	}
	shown := sources
	if len(shown) > a.opts.DisplayLimit {
		shown = shown[:a.opts.DisplayLimit]
	}
	return answer, shown, nil
}

func (a *SmartAgent) answerSemantic(ctx context.Context, question string) (string, []domain.Record, error) {
	sources, err := a.retriever.Search(ctx, question, a.opts.RetrievalTopK)
	if err != nil {
		return "", nil, fmt.Errorf("similarity search: %w", err)
	}
	if len(sources) == 0 {
		return "I couldn't find any bookmarks related to that.", nil, nil
	}
	answer, err := a.generator.Complete(ctx, qaPrompt(question, sources))
	if err != nil {
		return "", nil, fmt.Errorf("generative model: %w", err)
	}
	return answer, sources, nil
}
