package sync

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/thndrbrrr/gtasks-org-tools/pkg/org"
)

// PostResult records the outcome of one post-action mutation so
// callers can inspect individual failures instead of losing them in a
// log sink.
type PostResult struct {
	TaskID string
	Action PostAction
	Err    error
}

// PullReport describes what a pull did. Found is false when the
// tasklist does not exist, which is a no-op rather than an error.
// Appended is true only when bytes were written; an empty fetch is a
// successful no-op with Appended false.
type PullReport struct {
	Found       bool
	Fetched     int
	Appended    bool
	PostResults []PostResult
}

// Pull fetches every task in the tasklist, renders each as an org
// entry and appends the concatenated text to the file. On success the
// after-append notification fires, then the optional post-action runs
// against every fetched record. A post-action failure on one record is
// logged and recorded but never aborts the rest; fetch and file-write
// failures propagate.
func (s *Syncer) Pull(tasklistID, file string, action PostAction) (*PullReport, error) {
	normalized, err := ParsePostAction(string(action))
	if err != nil {
		return nil, err
	}
	action = normalized

	list, err := s.Remote.Tasklist(tasklistID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return &PullReport{}, nil
	}

	records, err := s.Remote.ListTasks(tasklistID)
	if err != nil {
		return nil, err
	}
	report := &PullReport{Found: true, Fetched: len(records)}

	if len(records) > 0 {
		var b strings.Builder
		entries := make([]string, 0, len(records))
		for _, t := range records {
			entry := org.RenderTask(tasklistID, t, s.Keywords)
			entries = append(entries, entry)
			b.WriteString(entry)
		}

		if err := org.AppendToFile(file, b.String()); err != nil {
			return nil, err
		}
		report.Appended = true

		if s.AfterAppend != nil {
			abs, err := filepath.Abs(file)
			if err != nil {
				abs = file
			}
			s.AfterAppend(entries, records, list, abs)
		}
	}

	if action == PostComplete || action == PostDelete {
		for _, t := range records {
			var err error
			switch action {
			case PostComplete:
				err = s.Remote.CompleteTask(tasklistID, t.Id)
			case PostDelete:
				err = s.Remote.DeleteTask(tasklistID, t.Id)
			}
			if err != nil {
				log.Printf("post-action %s failed for task %s: %v", action, t.Id, err)
			}
			report.PostResults = append(report.PostResults, PostResult{
				TaskID: t.Id,
				Action: action,
				Err:    err,
			})
		}
	}

	return report, nil
}
