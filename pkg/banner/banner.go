// Package banner reads and writes the dated archive notice embedded in a
// repository's README. The notice is a single markdown blockquote line of a
// fixed shape, optionally naming a successor repository:
//
//	> ⚠️ Archived 2025-06-30. No longer maintained. See new-tool instead.
//
// A document holds at most one notice. Merge replaces an existing notice in
// place, leaving every other line byte-for-byte untouched; when no notice
// exists it inserts one immediately after a leading "# " title line (or at
// the very top), padded to one blank line on each side. Text that merely
// resembles a notice, including one with an impossible calendar date, is
// ordinary document content and is never matched or repaired.
package banner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentstation/utc"

	"github.com/agentstation/gardener/pkg/constants"
)

var (
	// noticeRE matches a full notice line, capturing the date and an inline
	// successor name when present.
	noticeRE = regexp.MustCompile(`^> ⚠️ Archived (\d{4}-\d{2}-\d{2})\. No longer maintained\.(?: See (.+) instead\.)?$`)

	// companionRE matches a successor reference on its own quoted line
	// directly below a notice line.
	companionRE = regexp.MustCompile(`^> See (.+) instead\.$`)
)

// Notice is the parsed archive notice.
type Notice struct {
	Date      utc.Time // Archive date shown in the notice
	Successor string   // Name of the repository that supersedes this one, if any
}

// Render returns the canonical single-line notice block.
func (n Notice) Render() string {
	line := fmt.Sprintf("> ⚠️ Archived %s. No longer maintained.", n.Date.Format(constants.DateFormat))
	if n.Successor != "" {
		line += fmt.Sprintf(" See %s instead.", n.Successor)
	}
	return line
}

// Extract returns the first notice found in body, or nil when the document
// carries none. A companion successor line directly below a successor-less
// notice line is treated as part of the notice.
func Extract(body string) *Notice {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		date, successor, ok := parseNoticeLine(line)
		if !ok {
			continue
		}
		if successor == "" && i+1 < len(lines) {
			if m := companionRE.FindStringSubmatch(lines[i+1]); m != nil {
				successor = m[1]
			}
		}
		return &Notice{Date: date, Successor: successor}
	}
	return nil
}

// Occurrences counts notice lines in body. A count above one means the
// document is ambiguous; callers keep the first notice and surface the rest
// as a warning.
func Occurrences(body string) int {
	count := 0
	for _, line := range strings.Split(body, "\n") {
		if _, _, ok := parseNoticeLine(line); ok {
			count++
		}
	}
	return count
}

// Merge returns body with its notice replaced by n, inserted when absent, or
// removed entirely when n is nil. Merging the same arguments twice yields the
// same document as merging once.
func Merge(body string, n *Notice) string {
	if n == nil {
		return strip(body)
	}
	return upsert(body, n)
}

// parseNoticeLine parses a single line as a notice, rejecting dates that
// match the shape but name an impossible calendar day.
func parseNoticeLine(line string) (utc.Time, string, bool) {
	m := noticeRE.FindStringSubmatch(line)
	if m == nil {
		return utc.Time{}, "", false
	}
	date, err := utc.Parse(constants.DateFormat, m[1])
	if err != nil {
		return utc.Time{}, "", false
	}
	return date, m[2], true
}

// locate finds the first notice block and returns its line range [start, end).
func locate(lines []string) (start, end int, found bool) {
	for i, line := range lines {
		_, successor, ok := parseNoticeLine(line)
		if !ok {
			continue
		}
		end = i + 1
		if successor == "" && end < len(lines) && companionRE.MatchString(lines[end]) {
			end++
		}
		return i, end, true
	}
	return 0, 0, false
}

// upsert replaces the existing notice block in place, or inserts the rendered
// notice at the canonical position when the document has none.
func upsert(body string, n *Notice) string {
	lines := strings.Split(body, "\n")

	if start, end, found := locate(lines); found {
		out := make([]string, 0, len(lines))
		out = append(out, lines[:start]...)
		out = append(out, n.Render())
		out = append(out, lines[end:]...)
		return strings.Join(out, "\n")
	}

	// Canonical position: below a leading title line, otherwise the top.
	idx := 0
	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		idx = 1
	}

	block := make([]string, 0, 3)
	if idx > 0 {
		block = append(block, "")
	}
	block = append(block, n.Render())
	if idx < len(lines) && lines[idx] != "" {
		block = append(block, "")
	}

	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:idx]...)
	out = append(out, block...)
	out = append(out, lines[idx:]...)
	return strings.Join(out, "\n")
}

// strip removes the notice block. One adjacent blank line is dropped when the
// removal would otherwise leave a doubled or leading blank; a document
// without a notice is returned unchanged.
func strip(body string) string {
	lines := strings.Split(body, "\n")

	start, end, found := locate(lines)
	if !found {
		return body
	}

	rest := lines[end:]
	surroundedByBlanks := start > 0 && lines[start-1] == "" && len(rest) > 0 && rest[0] == ""
	leadingBlank := start == 0 && len(rest) > 0 && rest[0] == ""
	if surroundedByBlanks || leadingBlank {
		rest = rest[1:]
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[:start]...)
	out = append(out, rest...)
	return strings.Join(out, "\n")
}
