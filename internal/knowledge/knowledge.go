// Package knowledge builds and queries the vector knowledge base over the
// ingested record store: chunk, embed, upsert, then similarity search with
// results resolved back to full records.
package knowledge

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"bookmarkchat/internal/domain"
)

// Base owns the chunked, embedded view of the record store.
type Base struct {
	chunker  domain.Chunker
	embedder domain.Embedder
	index    domain.VectorIndex
	log      *zap.Logger

	records map[string]domain.Record
	chunks  []domain.Chunk
}

// NewBase wires the chunker, embedder and vector index into a knowledge base.
func NewBase(chunker domain.Chunker, embedder domain.Embedder, index domain.VectorIndex, log *zap.Logger) *Base {
	if log == nil {
		log = zap.NewNop()
	}
	return &Base{
		chunker:  chunker,
		embedder: embedder,
		index:    index,
		log:      log,
		records:  map[string]domain.Record{},
	}
}

// Build chunks and embeds every record and upserts the vectors into a fresh
// index. Nothing is committed when any step fails.
func (b *Base) Build(records []domain.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to index")
	}
	var allChunks []domain.Chunk
	var allTexts []string
	byID := make(map[string]domain.Record, len(records))
	for _, r := range records {
		chunks, err := b.chunker.Chunk(r)
		if err != nil {
			return fmt.Errorf("chunk record %s: %w", r.ID, err)
		}
		byID[r.ID] = r
		for _, ch := range chunks {
			allChunks = append(allChunks, ch)
			allTexts = append(allTexts, ch.Text)
		}
	}
	if err := b.embedder.Prepare(allTexts); err != nil {
		return fmt.Errorf("prepare embedder: %w", err)
	}
	vectors := make([][]float64, len(allChunks))
	for i := range allChunks {
		vec, err := b.embedder.EmbedDocument(allChunks[i].Text)
		if err != nil {
			return fmt.Errorf("embed chunk %s: %w", allChunks[i].ChunkID, err)
		}
		vectors[i] = vec
	}
	// Clear before Init: the Qdrant backend drops the whole collection on
	// Clear, and Init recreates it with the current dimension.
	if err := b.index.Clear(); err != nil {
		return fmt.Errorf("clear vector index: %w", err)
	}
	if err := b.index.Init(b.embedder.Dimension()); err != nil {
		return fmt.Errorf("init vector index: %w", err)
	}
	if err := b.index.Upsert(allChunks, vectors); err != nil {
		return fmt.Errorf("upsert vectors: %w", err)
	}
	b.records = byID
	b.chunks = allChunks
	b.log.Info("knowledge base built",
		zap.String("embedder", b.embedder.Name()),
		zap.Int("records", len(records)),
		zap.Int("chunks", len(allChunks)))
	return nil
}

// Search embeds the query, runs similarity search and resolves the matching
// chunks to unique records, nearest-first. When the query embeds to a zero
// vector or every score is zero, a lexical token-overlap ranking over the
// chunks serves as the fallback.
func (b *Base) Search(ctx context.Context, query string, topK int) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = 5
	}
	vec, err := b.embedder.EmbedQuery(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if isZero(vec) {
		return b.resolve(b.lexicalSearch(query, topK*2), topK), nil
	}
	res, err := b.index.Search(vec, topK*2)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	allZero := true
	for _, r := range res {
		if r.Score > 1e-9 {
			allZero = false
			break
		}
	}
	if allZero {
		return b.resolve(b.lexicalSearch(query, topK*2), topK), nil
	}
	return b.resolve(res, topK), nil
}

// resolve maps search results to unique full records, preserving
// nearest-first order.
func (b *Base) resolve(results []domain.SearchResult, topK int) []domain.Record {
	var out []domain.Record
	seen := map[string]struct{}{}
	for _, res := range results {
		if _, ok := seen[res.Chunk.RecordID]; ok {
			continue
		}
		r, ok := b.records[res.Chunk.RecordID]
		if !ok {
			continue
		}
		seen[res.Chunk.RecordID] = struct{}{}
		out = append(out, r)
		if len(out) == topK {
			break
		}
	}
	return out
}

var unicodeWordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

func (b *Base) lexicalSearch(query string, topK int) []domain.SearchResult {
	qset := toTokenSet(query)
	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(b.chunks))
	for i, ch := range b.chunks {
		scores[i] = pair{i, overlapOchiai(qset, ch.Text)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if topK > len(scores) {
		topK = len(scores)
	}
	out := make([]domain.SearchResult, 0, topK)
	for i := 0; i < topK; i++ {
		p := scores[i]
		if p.score <= 0 {
			break
		}
		out = append(out, domain.SearchResult{Chunk: b.chunks[p.idx], Score: p.score})
	}
	return out
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

// overlapOchiai scores token overlap with the Ochiai coefficient:
// |A∩B| / sqrt(|A||B|).
func overlapOchiai(qset map[string]struct{}, text string) float64 {
	stoks := unicodeWordRe.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]struct{}, len(stoks))
	inter := 0
	for _, t := range stoks {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := qset[t]; ok {
			inter++
		}
	}
	if len(qset) == 0 || len(seen) == 0 {
		return 0
	}
	qa := float64(len(qset))
	ba := float64(len(seen))
	return float64(inter) / (sqrt(qa) * sqrt(ba))
}

func sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	z := x
	for i := 0; i < 6; i++ {
		z = 0.5 * (z + x/z)
	}
	return z
}
