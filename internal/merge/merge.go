// Package merge implements a line-oriented merge of a named service block
// into a compose-style YAML document. It deliberately avoids a YAML
// parse/re-serialize round trip so that comments, quoting, and formatting
// of untouched lines survive byte-for-byte.
package merge

import (
	"fmt"
	"regexp"
	"strings"
)

// topLevelKeyPattern matches a block-delimiting key at column zero,
// e.g. "volumes:", "watchtower:". Digits are allowed after the first
// character so keys like "n8n" classify correctly.
var topLevelKeyPattern = regexp.MustCompile(`^([a-zA-Z_-][a-zA-Z0-9_-]*):`)

// MalformedDocumentError indicates a line whose block membership could not
// be classified, typically because tabs appear in leading whitespace and
// defeat the indentation comparison.
type MalformedDocumentError struct {
	Line int    // 1-based line number
	Text string // offending line content
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document: cannot classify line %d: %q", e.Line, e.Text)
}

// TopLevelKey returns the top-level key a line introduces, if any.
// A line introduces a key only when it starts at column zero and matches
// the key pattern; indented lines belong to the preceding key.
func TopLevelKey(line string) (string, bool) {
	m := topLevelKeyPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Merge returns a copy of document in which exactly one block with the
// top-level key serviceName exists. Any existing blocks with that key are
// removed first, then blockText is inserted immediately before the last
// occurrence of anchorKey, or appended at the end (preceded by a single
// blank line) when the anchor is absent. All other lines are preserved in
// order and untouched.
//
// Merge is a pure transform and a fixpoint: merging the same block twice
// yields the same document as merging it once.
func Merge(document, serviceName, blockText, anchorKey string) (string, error) {
	if serviceName == "" {
		return "", fmt.Errorf("merge: service name must not be empty")
	}
	if strings.TrimSpace(blockText) == "" {
		return "", fmt.Errorf("merge: block text must not be empty")
	}

	lines := splitLines(document)

	filtered, err := removeBlock(lines, serviceName)
	if err != nil {
		return "", err
	}

	out := insertBlock(filtered, splitLines(strings.TrimRight(blockText, "\n")), anchorKey)

	return strings.Join(out, "\n") + "\n", nil
}

// removeBlock drops every block whose top-level key equals serviceName.
// Two states: copying (default) and skipping. A top-level key equal to the
// target enters skip mode; any other top-level key leaves it. While
// skipping, indented lines and blank lines are part of the block and are
// discarded.
func removeBlock(lines []string, serviceName string) ([]string, error) {
	out := make([]string, 0, len(lines))
	skipping := false

	for i, line := range lines {
		if tabIndented(line) {
			return nil, &MalformedDocumentError{Line: i + 1, Text: line}
		}

		if key, ok := TopLevelKey(line); ok {
			if key == serviceName {
				// Re-entering skip mode here also swallows
				// contiguous duplicate blocks.
				skipping = true
				continue
			}
			skipping = false
			out = append(out, line)
			continue
		}

		if skipping {
			continue
		}
		out = append(out, line)
	}

	return out, nil
}

// insertBlock splices block into lines immediately before the last
// occurrence of anchorKey, or at the end when the anchor is missing.
// Trailing blank lines of the preceding segment collapse to one separator,
// which is what makes the overall merge idempotent.
func insertBlock(lines, block []string, anchorKey string) []string {
	at := -1
	if anchorKey != "" {
		for i, line := range lines {
			if key, ok := TopLevelKey(line); ok && key == anchorKey {
				at = i
			}
		}
	}

	if at < 0 {
		head := trimTrailingBlank(lines)
		out := make([]string, 0, len(head)+len(block)+1)
		out = append(out, head...)
		if len(head) > 0 {
			out = append(out, "")
		}
		return append(out, block...)
	}

	head := trimTrailingBlank(lines[:at])
	out := make([]string, 0, len(lines)+len(block)+2)
	out = append(out, head...)
	if len(head) > 0 {
		out = append(out, "")
	}
	out = append(out, block...)
	out = append(out, "")
	return append(out, lines[at:]...)
}

// tabIndented reports whether a line's leading whitespace contains a tab.
func tabIndented(line string) bool {
	for _, r := range line {
		switch r {
		case ' ':
			continue
		case '\t':
			return true
		default:
			return false
		}
	}
	return false
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
