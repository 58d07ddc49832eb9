package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format identifies a supported document format. It is passed into Extract
// explicitly rather than re-derived from the file name inside it.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatTXT     Format = "txt"
	FormatUnknown Format = ""
)

// DetectFormat maps a file name to its declared format by suffix.
// Unrecognized suffixes yield FormatUnknown; callers are expected to guard
// on that before invoking Extract.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".txt":
		return FormatTXT
	default:
		return FormatUnknown
	}
}

// Extract reads the full document from r and returns its text as a single
// flat string.
func Extract(r io.Reader, format Format) (string, error) {
	switch format {
	case FormatPDF:
		return extractPDF(r)
	case FormatDOCX:
		return extractDOCX(r)
	case FormatTXT:
		return extractTXT(r)
	default:
		return "", fmt.Errorf("unsupported document format %q", format)
	}
}

// collapseWhitespace replaces every run of whitespace with a single space
// and trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
