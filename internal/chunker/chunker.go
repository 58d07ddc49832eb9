// Package chunker splits document text into word-bounded pieces small
// enough to fit a remote model's input limit.
package chunker

import "strings"

// DefaultMaxWords is the chunk size used for generation calls.
const DefaultMaxWords = 1000

// Split breaks text into consecutive runs of at most maxWords words, each
// rejoined with single spaces. The last chunk may be shorter. Empty input
// produces no chunks. Split is pure and deterministic.
func Split(text string, maxWords int) []string {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+maxWords-1)/maxWords)
	for start := 0; start < len(words); start += maxWords {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
