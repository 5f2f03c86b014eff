package org

// Keywords holds the headline state keywords used when rendering and
// parsing entries. Both are configurable; org's conventional values are
// the defaults.
type Keywords struct {
	Todo string
	Done string
}

// DefaultKeywords returns the stock TODO/DONE pair.
func DefaultKeywords() Keywords {
	return Keywords{Todo: "TODO", Done: "DONE"}
}

// Entry represents one parsed org headline plus its subtree content.
type Entry struct {
	// Title is the headline text with inline date markup stripped.
	Title string

	// Keyword is the state keyword found on the headline, if any.
	Keyword string

	// Due is a date-only string (YYYY-MM-DD). A DEADLINE takes
	// precedence over an inline active timestamp on the headline.
	Due string

	// Closed is the display-form timestamp from a CLOSED line, if any.
	Closed string

	// Body is the entry's free text with property drawers, planning
	// lines and bare timestamp lines removed. Empty means absent.
	Body string

	// Properties holds the key/value pairs from the entry's property
	// drawer. Provenance written on pull ends up here on a later
	// parse, but it is never consulted to suppress re-import.
	Properties map[string]string

	// Tags are the headline's :tag: labels.
	Tags []string

	// Dates lists every YYYY-MM-DD found in the entry's timestamps,
	// active or inactive, including planning lines. Used only for
	// overdue filtering during push selection.
	Dates []string
}

// HasTag reports whether the entry carries the given tag.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
