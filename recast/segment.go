package recast

import (
	"fmt"
	"strings"
)

// Segment splits an ordered sentence sequence into chunks of at most
// pageSize sentences, each joined with single spaces. Chunk boundaries fall
// only on sentence boundaries and joining the chunks in order reconstructs
// the sequence; only the last chunk may be shorter than pageSize.
func Segment(sentences []string, pageSize int) ([]string, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("page size must be >= 1, got %d", pageSize)
	}
	var chunks []string
	for i := 0; i < len(sentences); i += pageSize {
		end := i + pageSize
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, strings.Join(sentences[i:end], " "))
	}
	return chunks, nil
}
