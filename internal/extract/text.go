package extract

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// extractTXT reads all lines, requires each to be valid UTF-8, strips
// leading and trailing whitespace per line, and joins lines with single
// spaces. A bad byte anywhere fails the whole upload.
func extractTXT(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var parts []string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return "", fmt.Errorf("line %d is not valid UTF-8", lineNo)
		}
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return strings.Join(parts, " "), nil
}
