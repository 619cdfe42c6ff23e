// Package normalize turns raw snippet text into the canonical form the
// classifiers were trained on.
package normalize

import (
	"regexp"
	"strings"
)

var (
	lineComment        = regexp.MustCompile(`#.*`)
	doubleQuoteBlock   = regexp.MustCompile(`"""[\s\S]*?"""`)
	singleQuoteBlock   = regexp.MustCompile(`'''[\s\S]*?'''`)
	horizontalSpaceRun = regexp.MustCompile(`[ \t]+`)
)

// StripComments removes `#` line comments and triple-quoted blocks.
//
// A `#` inside a string literal is treated as a comment start as well; the
// stripper has no tokenizer. Unterminated triple quotes are left as they are.
func StripComments(raw string) string {
	out := lineComment.ReplaceAllLiteralString(raw, "")
	out = doubleQuoteBlock.ReplaceAllLiteralString(out, "")
	out = singleQuoteBlock.ReplaceAllLiteralString(out, "")
	return out
}

// StandardizeWhitespace trims every line, drops blank lines and collapses
// runs of spaces and tabs into a single space. Indentation does not survive.
func StandardizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	joined := strings.Join(kept, "\n")
	joined = horizontalSpaceRun.ReplaceAllLiteralString(joined, " ")
	return strings.TrimSpace(joined)
}

// Canonicalize is StripComments followed by StandardizeWhitespace.
func Canonicalize(raw string) string {
	return StandardizeWhitespace(StripComments(raw))
}
