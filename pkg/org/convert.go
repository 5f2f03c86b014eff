package org

import (
	"fmt"
	"strings"

	"google.golang.org/api/tasks/v1"
)

// Task status values used by the remote service. There is no third
// state: a keyword maps to completed or needsAction and back.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Property keys written into each rendered entry's drawer so a pulled
// entry records where it came from.
const (
	PropTasklistID = "GTASKS-LIST-ID"
	PropTaskID     = "GTASKS-ID"
)

const untitled = "Untitled"

// RenderTask renders one remote task record as org entry text: a
// headline with the mapped state keyword and an inline due marker, an
// optional CLOSED line, a property drawer holding exactly the tasklist
// id and the task id, and the notes as body. The output ends with a
// newline; concatenated renders carry no separator beyond that, so
// callers must not assume a blank line between entries.
func RenderTask(tasklistID string, t *tasks.Task, kw Keywords) string {
	var b strings.Builder

	keyword := kw.Todo
	if t.Status == StatusCompleted {
		keyword = kw.Done
	}
	title := t.Title
	if title == "" {
		title = untitled
	}
	b.WriteString(fmt.Sprintf("* %s %s", keyword, title))
	if due, ok := ExtractDate(t.Due); ok {
		b.WriteString(fmt.Sprintf(" <%s>", displayDate(due)))
	}
	b.WriteString("\n")

	if t.Completed != nil {
		if closed := FormatTimestamp(*t.Completed); closed != "" {
			b.WriteString(fmt.Sprintf("CLOSED: [%s]\n", closed))
		}
	}

	b.WriteString(drawerStart + "\n")
	writeProperty(&b, PropTasklistID, tasklistID)
	writeProperty(&b, PropTaskID, t.Id)
	b.WriteString(drawerEnd + "\n")

	if t.Notes != "" {
		b.WriteString(t.Notes)
		if !strings.HasSuffix(t.Notes, "\n") {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func writeProperty(b *strings.Builder, key, value string) {
	if value == "" {
		fmt.Fprintf(b, ":%s:\n", key)
		return
	}
	fmt.Fprintf(b, ":%s: %s\n", key, value)
}

// EntryToTask converts a parsed entry into a remote task record ready
// for insertion. The record never carries an id; the remote service
// assigns one at creation. A due date that is not a strict YYYY-MM-DD
// string is dropped rather than reported.
func EntryToTask(e Entry) *tasks.Task {
	t := &tasks.Task{
		Title:  e.Title,
		Notes:  e.Body,
		Status: StatusNeedsAction,
	}
	if due, ok := DateToRemoteMidnight(e.Due); ok {
		t.Due = due
	}
	return t
}
