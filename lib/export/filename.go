package export

import (
	"fmt"

	"ulearning-export/lib/textutil"
)

// Format selects the output serialization.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatBank     Format = "bank"
)

// ParseFormat accepts the format names and the numeric shortcuts the
// interactive prompt historically offered.
func ParseFormat(raw string) (Format, error) {
	switch raw {
	case "md", "markdown", "1", "":
		return FormatMarkdown, nil
	case "json", "2":
		return FormatJSON, nil
	case "bank", "3":
		return FormatBank, nil
	}
	return "", fmt.Errorf("unknown export format %q", raw)
}

// Filename derives the output file name for a bulk export.
func Filename(courseName string, format Format) string {
	switch format {
	case FormatJSON:
		return textutil.SanitizeFilename(courseName) + "_课件题目.json"
	case FormatBank:
		return "题库.json"
	default:
		return textutil.SanitizeFilename(courseName) + "_课件题目.md"
	}
}

// AutoFilename derives the output file name for an interactive
// export.
func AutoFilename(courseName string) string {
	return textutil.SanitizeFilename(courseName) + "_导出.md"
}
