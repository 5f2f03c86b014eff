package sync

import (
	"fmt"
	"time"

	"github.com/thndrbrrr/gtasks-org-tools/pkg/org"
	"google.golang.org/api/tasks/v1"
)

// fakeService implements Service in memory and records every call.
type fakeService struct {
	lists      map[string]*tasks.TaskList
	titleIndex map[string]string
	taskStore  map[string][]*tasks.Task

	lookups     []string
	created     []string
	inserted    map[string][]*tasks.Task
	completed   []string
	deleted     []string
	nextID      int
	failDelete  map[string]error
	failInsert  map[string]error
	failOnTitle map[string]error
}

func newFakeService() *fakeService {
	return &fakeService{
		lists:      make(map[string]*tasks.TaskList),
		titleIndex: make(map[string]string),
		taskStore:  make(map[string][]*tasks.Task),
		inserted:   make(map[string][]*tasks.Task),
	}
}

func (f *fakeService) addList(id, title string, items ...*tasks.Task) {
	f.lists[id] = &tasks.TaskList{Id: id, Title: title}
	f.titleIndex[title] = id
	f.taskStore[id] = items
}

func (f *fakeService) Tasklist(id string) (*tasks.TaskList, error) {
	return f.lists[id], nil
}

func (f *fakeService) TasklistIDByTitle(title string) (string, error) {
	f.lookups = append(f.lookups, title)
	if err := f.failOnTitle[title]; err != nil {
		return "", err
	}
	return f.titleIndex[title], nil
}

func (f *fakeService) InsertTasklist(title string) (*tasks.TaskList, error) {
	f.nextID++
	id := fmt.Sprintf("list-%d", f.nextID)
	f.created = append(f.created, title)
	f.addList(id, title)
	return f.lists[id], nil
}

func (f *fakeService) ListTasks(tasklistID string) ([]*tasks.Task, error) {
	return f.taskStore[tasklistID], nil
}

func (f *fakeService) InsertTask(tasklistID string, t *tasks.Task) (*tasks.Task, error) {
	if err := f.failInsert[t.Title]; err != nil {
		return nil, err
	}
	f.nextID++
	created := *t
	created.Id = fmt.Sprintf("task-%d", f.nextID)
	f.inserted[tasklistID] = append(f.inserted[tasklistID], &created)
	return &created, nil
}

func (f *fakeService) CompleteTask(tasklistID, taskID string) error {
	f.completed = append(f.completed, taskID)
	return nil
}

func (f *fakeService) DeleteTask(tasklistID, taskID string) error {
	if err := f.failDelete[taskID]; err != nil {
		f.deleted = append(f.deleted, taskID)
		return err
	}
	f.deleted = append(f.deleted, taskID)
	return nil
}

// fakeSource implements EntrySource from a fixed tag map.
type fakeSource struct {
	entries map[string][]org.Entry
	err     error
	queried []string
}

func (f *fakeSource) EntriesByTag(tag string, today time.Time) ([]org.Entry, error) {
	f.queried = append(f.queried, tag)
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[tag], nil
}
