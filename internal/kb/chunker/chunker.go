package chunker

import (
	"strings"

	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
)

// Chunk splits text into overlapping word windows. Windows advance by
// windowSize-overlap words so consecutive chunks share the configured
// overlap. A text shorter than one window yields exactly one chunk.
// Pure function: the same text always produces the same chunk sequence.
func Chunk(text string, windowSize, overlap int) []kbmodel.TextChunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if windowSize <= 0 {
		windowSize = 1
	}

	step := windowSize - overlap
	if step <= 0 {
		step = 1
	}

	var chunks []kbmodel.TextChunk
	for i := 0; i < len(words); i += step {
		end := i + windowSize
		if end > len(words) {
			end = len(words)
		}

		chunkText := strings.Join(words[i:end], " ")
		if strings.TrimSpace(chunkText) == "" {
			// whitespace-only remainder produces no chunk
			if end >= len(words) {
				break
			}
			continue
		}

		chunks = append(chunks, kbmodel.TextChunk{
			Text:       chunkText,
			StartIndex: i,
			WordCount:  end - i,
		})

		if end >= len(words) {
			break
		}
	}
	return chunks
}
