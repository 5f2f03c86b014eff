package org

import (
	"strings"
	"testing"

	"google.golang.org/api/tasks/v1"
)

func TestRenderTaskKeywordMapping(t *testing.T) {
	kw := Keywords{Todo: "NEXT", Done: "FINISHED"}

	open := RenderTask("list1", &tasks.Task{Title: "Open task", Status: StatusNeedsAction}, kw)
	if !strings.HasPrefix(open, "* NEXT Open task") {
		t.Errorf("Expected headline with configured open keyword, got %q", firstLine(open))
	}

	completedAt := "2023-06-15T09:30:00.000Z"
	done := RenderTask("list1", &tasks.Task{Title: "Done task", Status: StatusCompleted, Completed: &completedAt}, kw)
	if !strings.HasPrefix(done, "* FINISHED Done task") {
		t.Errorf("Expected headline with configured done keyword, got %q", firstLine(done))
	}
	if !strings.Contains(done, "CLOSED: [") {
		t.Errorf("Expected CLOSED line for completed task, got %q", done)
	}
}

func TestRenderTaskDueMarker(t *testing.T) {
	rec := &tasks.Task{Title: "Buy milk", Status: StatusNeedsAction, Due: "2025-10-10T00:00:00.000Z"}
	text := RenderTask("list1", rec, DefaultKeywords())

	headline := firstLine(text)
	if !strings.Contains(headline, "<2025-10-10") {
		t.Errorf("Expected inline due marker on headline, got %q", headline)
	}

	// The date-only form must survive a round trip through the marker.
	start := strings.Index(headline, "<")
	d, ok := ExtractDate(headline[start+1:])
	if !ok || d != "2025-10-10" {
		t.Errorf("Expected marker to round-trip the date, got %q (ok=%v)", d, ok)
	}
}

func TestRenderTaskMalformedDatesOmitted(t *testing.T) {
	completedAt := "garbage"
	rec := &tasks.Task{Title: "Odd", Status: StatusCompleted, Completed: &completedAt, Due: "whenever"}
	text := RenderTask("list1", rec, DefaultKeywords())

	if strings.Contains(text, "CLOSED") {
		t.Errorf("Expected no CLOSED line for malformed completion timestamp, got %q", text)
	}
	if strings.Contains(firstLine(text), "<") {
		t.Errorf("Expected no due marker for malformed due, got %q", firstLine(text))
	}
}

func TestRenderTaskPropertiesAlwaysPresent(t *testing.T) {
	text := RenderTask("", &tasks.Task{Title: "Bare"}, DefaultKeywords())

	if !strings.Contains(text, ":PROPERTIES:\n") || !strings.Contains(text, ":END:\n") {
		t.Fatalf("Expected a property drawer, got %q", text)
	}
	if !strings.Contains(text, ":GTASKS-LIST-ID:\n") {
		t.Errorf("Expected empty tasklist-id property, got %q", text)
	}
	if !strings.Contains(text, ":GTASKS-ID:\n") {
		t.Errorf("Expected empty task-id property, got %q", text)
	}
}

func TestRenderTaskPlaceholderTitle(t *testing.T) {
	text := RenderTask("list1", &tasks.Task{}, DefaultKeywords())
	if !strings.HasPrefix(text, "* TODO Untitled") {
		t.Errorf("Expected placeholder title, got %q", firstLine(text))
	}
}

func TestRenderTaskBody(t *testing.T) {
	rec := &tasks.Task{Title: "Noted", Notes: "line one\nline two"}
	text := RenderTask("list1", rec, DefaultKeywords())
	if !strings.HasSuffix(text, "line one\nline two\n") {
		t.Errorf("Expected notes as body with trailing newline, got %q", text)
	}

	bare := RenderTask("list1", &tasks.Task{Title: "No notes"}, DefaultKeywords())
	if !strings.HasSuffix(bare, ":END:\n") {
		t.Errorf("Expected entry without body to end at the drawer, got %q", bare)
	}
}

func TestEntryToTask(t *testing.T) {
	e := Entry{Title: "Buy milk", Body: "whole, not skim", Due: "2025-10-10"}
	rec := EntryToTask(e)

	if rec.Title != "Buy milk" {
		t.Errorf("Expected title 'Buy milk', got %q", rec.Title)
	}
	if rec.Notes != "whole, not skim" {
		t.Errorf("Expected notes from body, got %q", rec.Notes)
	}
	if rec.Status != StatusNeedsAction {
		t.Errorf("Expected needsAction status, got %q", rec.Status)
	}
	if rec.Due != "2025-10-10T00:00:00.000Z" {
		t.Errorf("Expected midnight due, got %q", rec.Due)
	}
	if rec.Id != "" {
		t.Errorf("Expected no id on a converted entry, got %q", rec.Id)
	}
}

func TestEntryToTaskBadDueDropped(t *testing.T) {
	rec := EntryToTask(Entry{Title: "X", Due: "someday"})
	if rec.Due != "" {
		t.Errorf("Expected due to be dropped, got %q", rec.Due)
	}
}

// Pulling an entry into a file and pushing it back must not reuse the
// original remote id: the provenance properties are read-only.
func TestPullThenPushDoesNotReuseID(t *testing.T) {
	rec := &tasks.Task{Id: "remote-42", Title: "Travel plans", Notes: "pack light", Due: "2025-10-10T00:00:00.000Z"}
	text := RenderTask("list1", rec, DefaultKeywords())

	entries, err := NewParser(DefaultKeywords()).Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Properties[PropTaskID] != "remote-42" {
		t.Errorf("Expected provenance property to carry the id, got %q", e.Properties[PropTaskID])
	}

	back := EntryToTask(e)
	if back.Id != "" {
		t.Errorf("Expected converted record to have no id, got %q", back.Id)
	}
	if back.Title != "Travel plans" {
		t.Errorf("Expected clean title, got %q", back.Title)
	}
	if back.Notes != "pack light" {
		t.Errorf("Expected body without drawer markup, got %q", back.Notes)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
