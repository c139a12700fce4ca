package tools

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tasksapi "google.golang.org/api/tasks/v1"

	"github.com/prem-acharya/ai-agent-backend/ai/draft"
)

const defaultTaskListTitle = "AI Assistant Tasks"

// Tasks submits and reads Google Tasks.
type Tasks struct {
	timezone *time.Location
	endpoint string
	now      func() time.Time
}

func NewTasks(timezone *time.Location, opts ...Option) *Tasks {
	cfg := applyOptions(opts)
	return &Tasks{timezone: timezone, endpoint: cfg.endpoint, now: cfg.now}
}

func (t *Tasks) service(ctx context.Context, accessToken string) (*tasksapi.Service, error) {
	return tasksapi.NewService(ctx, serviceOptions(ctx, accessToken, t.endpoint)...)
}

// defaultList returns the task list to work against, creating the
// assistant's own list when the account has none.
func (t *Tasks) defaultList(ctx context.Context, svc *tasksapi.Service) (*tasksapi.TaskList, error) {
	lists, err := svc.Tasklists.List().Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(lists.Items) > 0 {
		return lists.Items[0], nil
	}
	return svc.Tasklists.Insert(&tasksapi.TaskList{Title: defaultTaskListTitle}).Context(ctx).Do()
}

// Create inserts the draft as a new task. The store records due dates
// only, so the clock time stays in the notes the draft already carries.
func (t *Tasks) Create(ctx context.Context, accessToken string, d *draft.TaskDraft) Result {
	svc, err := t.service(ctx, accessToken)
	if err != nil {
		return failed("Could not reach Google Tasks.", err)
	}
	list, err := t.defaultList(ctx, svc)
	if err != nil {
		return failed("Could not resolve a task list.", err)
	}

	task := &tasksapi.Task{
		Title: d.Title,
		Notes: d.Notes,
		Due:   d.Due.Format("2006-01-02") + "T00:00:00.000Z",
	}
	created, err := svc.Tasks.Insert(list.Id, task).Context(ctx).Do()
	if err != nil {
		return failed("Could not create the task.", err)
	}

	slog.Info("task created", "list", list.Title, "task", created.Id)
	r := succeeded("Task %q created in %s.", d.Title, list.Title)
	r.Tasks = []TaskItem{{Title: created.Title, Status: created.Status, Due: created.Due, Notes: created.Notes}}
	return r
}

// List reads tasks from the default list, filtered to the window.
func (t *Tasks) List(ctx context.Context, accessToken string, w Window) Result {
	svc, err := t.service(ctx, accessToken)
	if err != nil {
		return failed("Could not reach Google Tasks.", err)
	}
	lists, err := svc.Tasklists.List().Context(ctx).Do()
	if err != nil {
		return failed("Could not list task lists.", err)
	}
	if len(lists.Items) == 0 {
		return succeeded("No task lists found.")
	}
	list := lists.Items[0]

	resp, err := svc.Tasks.List(list.Id).ShowCompleted(true).MaxResults(100).Context(ctx).Do()
	if err != nil {
		return failed("Could not list tasks.", err)
	}

	var items []TaskItem
	for _, task := range resp.Items {
		if !t.inWindow(task.Due, w) {
			continue
		}
		status := task.Status
		if status == "" {
			status = "needsAction"
		}
		items = append(items, TaskItem{Title: task.Title, Status: status, Due: task.Due, Notes: task.Notes})
	}

	r := succeeded("Found %d task(s) in %s.", len(items), list.Title)
	r.Tasks = items
	return r
}

// inWindow reports whether a task due stamp falls inside the window.
// Undated tasks only appear in the unbounded view.
func (t *Tasks) inWindow(due string, w Window) bool {
	if w == WindowAll {
		return true
	}
	if due == "" {
		return false
	}
	today := t.now().In(t.timezone).Format("2006-01-02")
	switch w {
	case WindowToday:
		return strings.HasPrefix(due, today)
	case WindowTomorrow:
		tomorrow := t.now().In(t.timezone).AddDate(0, 0, 1).Format("2006-01-02")
		return strings.HasPrefix(due, tomorrow)
	case WindowUpcoming:
		return due[:min(len(due), 10)] >= today
	}
	return true
}
