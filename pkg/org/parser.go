package org

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
)

var (
	headlineRe    = regexp.MustCompile(`^\*+\s+`)
	tagsRe        = regexp.MustCompile(`\s+:([A-Za-z0-9_@:]+):\s*$`)
	activeDateRe  = regexp.MustCompile(`<(\d{4}-\d{2}-\d{2})[^>]*>`)
	anyDateRe     = regexp.MustCompile(`[<\[](\d{4}-\d{2}-\d{2})`)
	deadlineRe    = regexp.MustCompile(`DEADLINE:\s*[<\[](\d{4}-\d{2}-\d{2})[^>\]]*[>\]]`)
	closedRe      = regexp.MustCompile(`CLOSED:\s*\[([^\]]+)\]`)
	planningKeyRe = regexp.MustCompile(`^\s*(?:CLOSED|DEADLINE|SCHEDULED):`)
	propertyRe    = regexp.MustCompile(`^\s*:([A-Za-z0-9_-]+):\s*(.*)$`)
)

// Parser reads org documents into Entry values.
type Parser struct {
	keywordRe *regexp.Regexp
}

// NewParser builds a parser that recognizes the given state keywords
// on headlines.
func NewParser(kw Keywords) *Parser {
	pat := fmt.Sprintf(`^(%s|%s)\s+`, regexp.QuoteMeta(kw.Done), regexp.QuoteMeta(kw.Todo))
	return &Parser{keywordRe: regexp.MustCompile(pat)}
}

// ParseFile parses a single org file.
func (p *Parser) ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f)
}

// ParseFiles parses multiple org files and concatenates their entries
// in file order.
func (p *Parser) ParseFiles(paths []string) ([]Entry, error) {
	var all []Entry
	for _, path := range paths {
		entries, err := p.ParseFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// Parse reads org text and returns one Entry per headline. Text before
// the first headline is ignored.
func (p *Parser) Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []Entry
	var cur *rawEntry

	for scanner.Scan() {
		line := scanner.Text()
		if headlineRe.MatchString(line) {
			if cur != nil {
				entries = append(entries, cur.finish())
			}
			cur = p.newEntry(line)
			continue
		}
		if cur != nil {
			cur.addLine(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if cur != nil {
		entries = append(entries, cur.finish())
	}
	return entries, nil
}

// rawEntry accumulates lines for one headline until the next one
// starts.
type rawEntry struct {
	entry     Entry
	deadline  string
	inlineDue string
	body      []string
	inDrawer  bool
}

func (p *Parser) newEntry(headline string) *rawEntry {
	rest := headlineRe.ReplaceAllString(headline, "")

	re := &rawEntry{}
	if m := p.keywordRe.FindStringSubmatch(rest); m != nil {
		re.entry.Keyword = m[1]
		rest = rest[len(m[0]):]
	}
	if m := tagsRe.FindStringSubmatch(rest); m != nil {
		re.entry.Tags = strings.Split(m[1], ":")
		rest = rest[:len(rest)-len(m[0])]
	}
	if m := activeDateRe.FindStringSubmatch(rest); m != nil {
		re.inlineDue = m[1]
	}
	re.entry.Dates = collectDates(re.entry.Dates, rest)
	re.entry.Title = StripInlineDates(rest)
	return re
}

func (re *rawEntry) addLine(line string) {
	re.entry.Dates = collectDates(re.entry.Dates, line)

	trimmed := strings.TrimSpace(line)
	if re.inDrawer {
		if trimmed == drawerEnd {
			re.inDrawer = false
			return
		}
		if m := propertyRe.FindStringSubmatch(line); m != nil {
			if re.entry.Properties == nil {
				re.entry.Properties = make(map[string]string)
			}
			re.entry.Properties[m[1]] = strings.TrimSpace(m[2])
		}
		return
	}
	if trimmed == drawerStart {
		re.inDrawer = true
		return
	}
	if planningKeyRe.MatchString(line) {
		if m := deadlineRe.FindStringSubmatch(line); m != nil {
			re.deadline = m[1]
		}
		if m := closedRe.FindStringSubmatch(line); m != nil {
			re.entry.Closed = m[1]
		}
		return
	}
	re.body = append(re.body, line)
}

func (re *rawEntry) finish() Entry {
	e := re.entry
	// A deadline wins over an inline active timestamp.
	if re.deadline != "" {
		e.Due = re.deadline
	} else {
		e.Due = re.inlineDue
	}
	e.Body = StripStructure(strings.Join(re.body, "\n"))
	return e
}

func collectDates(dates []string, line string) []string {
	for _, m := range anyDateRe.FindAllStringSubmatch(line, -1) {
		dates = append(dates, m[1])
	}
	return dates
}

// OverdueBefore reports whether any timestamp in the entry falls on a
// day strictly before today. Entries with no timestamps at all are
// never overdue.
func (e Entry) OverdueBefore(today time.Time) bool {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	for _, d := range e.Dates {
		t, err := time.ParseInLocation(dateLayout, d, today.Location())
		if err != nil {
			continue
		}
		if t.Before(day) {
			return true
		}
	}
	return false
}

// Files is a set of org documents queried by push selection.
type Files struct {
	Parser *Parser
	Paths  []string
}

// EntriesByTag returns the entries across all files that carry the tag
// and are not overdue relative to today, in document order.
func (f Files) EntriesByTag(tag string, today time.Time) ([]Entry, error) {
	entries, err := f.Parser.ParseFiles(f.Paths)
	if err != nil {
		return nil, err
	}
	var matched []Entry
	for _, e := range entries {
		if e.HasTag(tag) && !e.OverdueBefore(today) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}
