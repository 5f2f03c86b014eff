package org

import (
	"regexp"
	"strings"
)

const (
	drawerStart = ":PROPERTIES:"
	drawerEnd   = ":END:"
)

var (
	inlineDateRe   = regexp.MustCompile(`\s*[<\[]\d{4}-\d{2}-\d{2}[^>\]]*[>\]]`)
	planningLineRe = regexp.MustCompile(`^\s*(?:(?:SCHEDULED|DEADLINE):\s*)?[<\[]\d{4}-\d{2}-\d{2}[^>\]]*[>\]]\s*$`)
)

// StripInlineDates removes <YYYY-MM-DD ...> and [YYYY-MM-DD...] markup
// from a title and trims surrounding whitespace.
func StripInlineDates(title string) string {
	return strings.TrimSpace(inlineDateRe.ReplaceAllString(title, ""))
}

// StripStructure removes structural markup from raw entry body text:
// property drawers (an unterminated drawer swallows everything after
// its start line) and lines consisting solely of an optional
// SCHEDULED:/DEADLINE: label plus a bracketed date. Leading and
// trailing blank lines are trimmed; an all-whitespace remainder
// collapses to "".
func StripStructure(body string) string {
	var kept []string
	inDrawer := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if inDrawer {
			if trimmed == drawerEnd {
				inDrawer = false
			}
			continue
		}
		if trimmed == drawerStart {
			inDrawer = true
			continue
		}
		if planningLineRe.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}

	for len(kept) > 0 && strings.TrimSpace(kept[0]) == "" {
		kept = kept[1:]
	}
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}

	out := strings.Join(kept, "\n")
	if strings.TrimSpace(out) == "" {
		return ""
	}
	return out
}
