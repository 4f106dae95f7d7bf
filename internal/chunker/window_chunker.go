package chunker

import (
	"strconv"
	"strings"

	"bookmarkchat/internal/domain"
)

// WindowChunker splits record text into fixed-size character windows with
// overlap. Window arithmetic runs over runes so multi-byte content never
// splits mid-character.
type WindowChunker struct {
	chunkSize int
	overlap   int
}

// NewWindowChunker creates a chunker with the given window size and overlap
// in characters. Defaults are 512 and 50; overlap is clamped below the
// window size so the loop always advances.
func NewWindowChunker(chunkSize, overlap int) *WindowChunker {
	if chunkSize <= 0 {
		chunkSize = 512
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	return &WindowChunker{chunkSize: chunkSize, overlap: overlap}
}

// Chunk splits the record's text into overlapping windows, each carrying the
// owning record's ID. Short texts produce a single chunk; empty text none.
func (c *WindowChunker) Chunk(record domain.Record) ([]domain.Chunk, error) {
	text := strings.TrimSpace(record.Text)
	if text == "" {
		return nil, nil
	}
	runes := []rune(text)
	var chunks []domain.Chunk
	idx := 0
	for start := 0; start < len(runes); {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.Chunk{
			RecordID: record.ID,
			ChunkID:  record.ID + ":" + strconv.Itoa(idx),
			Text:     string(runes[start:end]),
			Index:    idx,
		})
		if end == len(runes) {
			break
		}
		start = end - c.overlap
		idx++
	}
	return chunks, nil
}
