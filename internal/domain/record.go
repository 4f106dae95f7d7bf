package domain

// Record is one ingested bookmarked post. Records are created during
// ingestion and never mutated afterwards.
type Record struct {
	ID           string
	Text         string
	Author       string
	AuthorHandle string
	Likes        int
	Retweets     int
	Replies      int
	Views        int
	Date         string
	URL          string
}

// Chunk is a window of a record's text used for vector indexing. It keeps
// the owning record's ID so search results resolve back to full records.
type Chunk struct {
	RecordID string
	ChunkID  string
	Text     string
	Index    int
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	EmbedDocument(text string) ([]float64, error)
	EmbedQuery(text string) ([]float64, error)
}

// Chunker splits record text into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(record Record) ([]Chunk, error)
}

// VectorIndex persists vectors and supports similarity search.
type VectorIndex interface {
	Init(dimension int) error
	Upsert(chunks []Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Clear() error
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
