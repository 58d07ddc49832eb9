package extract

import (
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		filename string
		want     Format
	}{
		{"notes.pdf", FormatPDF},
		{"Report.PDF", FormatPDF},
		{"thesis.docx", FormatDOCX},
		{"readme.txt", FormatTXT},
		{"archive/deep/lecture.TXT", FormatTXT},
		{"image.png", FormatUnknown},
		{"noextension", FormatUnknown},
		{"", FormatUnknown},
		{"trick.pdf.exe", FormatUnknown},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.filename); got != tc.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestExtractUnknownFormatFails(t *testing.T) {
	_, err := Extract(strings.NewReader("data"), FormatUnknown)
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestExtractTXT_JoinsTrimmedLines(t *testing.T) {
	in := "  first line \n\nsecond line\n\tthird\t\n"
	got, err := Extract(strings.NewReader(in), FormatTXT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "first line second line third"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractTXT_EmptyInput(t *testing.T) {
	got, err := Extract(strings.NewReader(""), FormatTXT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestExtractTXT_InvalidUTF8IsFatal(t *testing.T) {
	in := "good line\nbad \xff\xfe line\n"
	_, err := Extract(strings.NewReader(in), FormatTXT)
	if err == nil {
		t.Fatal("expected decode error for invalid UTF-8")
	}
}

func TestCollapseWhitespace(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a  b", "a b"},
		{"a\t\n b \t", "a b"},
		{"   ", ""},
		{"already single spaced", "already single spaced"},
	}
	for _, tc := range cases {
		if got := collapseWhitespace(tc.in); got != tc.want {
			t.Errorf("collapseWhitespace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
