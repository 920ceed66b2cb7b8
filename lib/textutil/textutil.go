package textutil

import (
	"regexp"
	"strings"
)

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun        = regexp.MustCompile(`\s+`)
	underscoreRun        = regexp.MustCompile(`_+`)
)

// SanitizeFilename turns an arbitrary display name into a safe
// filename stem: reserved characters and whitespace become
// underscores, runs collapse, and the result is capped at 120 runes.
func SanitizeFilename(name string) string {
	if name == "" {
		name = "untitled"
	}
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = whitespaceRun.ReplaceAllString(name, "_")
	name = underscoreRun.ReplaceAllString(name, "_")
	runes := []rune(name)
	if len(runes) > 120 {
		runes = runes[:120]
	}
	return string(runes)
}

var (
	bracketFolder  = strings.NewReplacer("（", "(", "）", ")", "【", "(", "】", ")")
	parenQualifier = regexp.MustCompile(`\([^)]*\)`)
)

// NormalizeTypeLabel folds full-width brackets to ascii ones, strips
// parenthesized qualifiers (score annotations and the like) and trims.
// "单选题（2分）" and "单选题" normalize to the same label.
func NormalizeTypeLabel(label string) string {
	if label == "" {
		return ""
	}
	label = bracketFolder.Replace(label)
	label = parenQualifier.ReplaceAllString(label, "")
	return strings.TrimSpace(label)
}
