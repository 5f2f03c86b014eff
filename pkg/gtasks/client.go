package gtasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/thndrbrrr/gtasks-org-tools/pkg/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// Client wraps the Google Tasks API for the pull and push pipelines.
type Client struct {
	srv *tasks.Service
}

// NewClient creates an authenticated Google Tasks client.
func NewClient(ctx context.Context) (*Client, error) {
	httpClient, err := auth.GetClient(ctx, []string{tasks.TasksScope})
	if err != nil {
		return nil, err
	}

	srv, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Tasks client: %w", err)
	}
	return NewClientWithService(srv), nil
}

// NewClientWithService wraps an already-constructed Tasks service.
func NewClientWithService(srv *tasks.Service) *Client {
	return &Client{srv: srv}
}

// Tasklist fetches a tasklist by id. A tasklist the service does not
// know about is reported as nil with no error.
func (c *Client) Tasklist(id string) (*tasks.TaskList, error) {
	tl, err := c.srv.Tasklists.Get(id).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to get tasklist %s: %w", id, err)
	}
	return tl, nil
}

// Tasklists returns every tasklist visible to the account.
func (c *Client) Tasklists() ([]*tasks.TaskList, error) {
	var all []*tasks.TaskList
	call := c.srv.Tasklists.List()
	for {
		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list tasklists: %w", err)
		}
		all = append(all, page.Items...)
		if page.NextPageToken == "" {
			return all, nil
		}
		call.PageToken(page.NextPageToken)
	}
}

// TasklistIDByTitle returns the id of the tasklist with an exactly
// matching title, or "" when none exists.
func (c *Client) TasklistIDByTitle(title string) (string, error) {
	lists, err := c.Tasklists()
	if err != nil {
		return "", err
	}
	for _, tl := range lists {
		if tl.Title == title {
			return tl.Id, nil
		}
	}
	return "", nil
}

// InsertTasklist creates a new tasklist with the given title.
func (c *Client) InsertTasklist(title string) (*tasks.TaskList, error) {
	tl, err := c.srv.Tasklists.Insert(&tasks.TaskList{Title: title}).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create tasklist %q: %w", title, err)
	}
	return tl, nil
}

// ListTasks fetches every task in a tasklist, completed and hidden
// ones included, following pagination.
func (c *Client) ListTasks(tasklistID string) ([]*tasks.Task, error) {
	var all []*tasks.Task
	call := c.srv.Tasks.List(tasklistID).ShowCompleted(true).ShowHidden(true)
	for {
		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list tasks in %s: %w", tasklistID, err)
		}
		all = append(all, page.Items...)
		if page.NextPageToken == "" {
			return all, nil
		}
		call.PageToken(page.NextPageToken)
	}
}

// InsertTask creates a task in the tasklist; the service assigns the id.
func (c *Client) InsertTask(tasklistID string, t *tasks.Task) (*tasks.Task, error) {
	created, err := c.srv.Tasks.Insert(tasklistID, t).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to insert task into %s: %w", tasklistID, err)
	}
	return created, nil
}

// CompleteTask marks a task completed.
func (c *Client) CompleteTask(tasklistID, taskID string) error {
	patch := &tasks.Task{Status: "completed"}
	if _, err := c.srv.Tasks.Patch(tasklistID, taskID, patch).Do(); err != nil {
		return fmt.Errorf("unable to complete task %s: %w", taskID, err)
	}
	return nil
}

// DeleteTask removes a task from the tasklist.
func (c *Client) DeleteTask(tasklistID, taskID string) error {
	if err := c.srv.Tasks.Delete(tasklistID, taskID).Do(); err != nil {
		return fmt.Errorf("unable to delete task %s: %w", taskID, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}
