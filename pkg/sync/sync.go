package sync

import (
	"fmt"
	"time"

	"github.com/thndrbrrr/gtasks-org-tools/pkg/org"
	"google.golang.org/api/tasks/v1"
)

// Service is the remote task-list capability the pipelines drive.
// *gtasks.Client satisfies it.
type Service interface {
	Tasklist(id string) (*tasks.TaskList, error)
	TasklistIDByTitle(title string) (string, error)
	InsertTasklist(title string) (*tasks.TaskList, error)
	ListTasks(tasklistID string) ([]*tasks.Task, error)
	InsertTask(tasklistID string, t *tasks.Task) (*tasks.Task, error)
	CompleteTask(tasklistID, taskID string) error
	DeleteTask(tasklistID, taskID string) error
}

// EntrySource selects org entries for push: entries carrying the tag
// whose dates are not strictly before today. org.Files satisfies it.
type EntrySource interface {
	EntriesByTag(tag string, today time.Time) ([]org.Entry, error)
}

// AfterAppendFunc is the notification invoked after a successful
// non-empty append during pull, before any post-action mutation. It
// receives the rendered entries, the fetched records, the tasklist and
// the absolute path of the written file.
type AfterAppendFunc func(entries []string, records []*tasks.Task, list *tasks.TaskList, path string)

// PostAction is the optional remote mutation applied to source
// records after a successful pull.
type PostAction string

const (
	PostNone     PostAction = "none"
	PostComplete PostAction = "complete"
	PostDelete   PostAction = "delete"
)

// ParsePostAction validates a post-action value. The empty string
// means none; anything else outside the known set is a usage error.
func ParsePostAction(s string) (PostAction, error) {
	switch PostAction(s) {
	case "", PostNone:
		return PostNone, nil
	case PostComplete:
		return PostComplete, nil
	case PostDelete:
		return PostDelete, nil
	}
	return "", fmt.Errorf("invalid post-action %q: must be none, complete or delete", s)
}

// Syncer runs the pull and push pipelines. All execution is
// sequential and blocking; there is no locking, so concurrent
// invocations against the same file or tasklist are unsupported and
// may interleave unpredictably.
type Syncer struct {
	Remote      Service
	Source      EntrySource
	Keywords    org.Keywords
	AfterAppend AfterAppendFunc

	// Now is the clock used for overdue selection. nil means time.Now.
	Now func() time.Time
}

func (s *Syncer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// EnsureTasklist returns the id of the tasklist with the exactly
// matching title, creating it when absent. Lookup and creation are two
// separate round trips; a concurrent creation race can produce
// duplicate lists and is not handled here.
func (s *Syncer) EnsureTasklist(name string) (string, error) {
	id, err := s.Remote.TasklistIDByTitle(name)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	created, err := s.Remote.InsertTasklist(name)
	if err != nil {
		return "", err
	}
	return created.Id, nil
}
