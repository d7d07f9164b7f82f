package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// GetTasksTool returns the user's full Eisenhower matrix.
type GetTasksTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *GetTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("eisenhower_get_tasks",
		withIdentity(
			mcp.WithDescription("Get all Eisenhower matrix tasks for a user, grouped by quadrant."),
		)...)
}

func (t *GetTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	tasks, err := t.Store.ListTasks(ctx, ac.UserID)
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success": true,
		"tasks":   tasks,
		"count":   len(tasks),
	})
}

// SaveTasksTool replaces the user's task list with the provided one.
type SaveTasksTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *SaveTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("eisenhower_save_tasks",
		withIdentity(
			mcp.WithDescription("Replace the user's entire Eisenhower task list. Send the full list; omitted tasks are deleted."),
			mcp.WithString("tasks_json",
				mcp.Required(),
				mcp.Description(`JSON array of tasks: [{"id","title","description","quadrant","status"}]. Quadrant is one of HUHI, HULI, LUHI, LULI.`)),
		)...)
}

func (t *SaveTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	var tasks []store.Task
	if err := json.Unmarshal([]byte(req.GetString("tasks_json", "")), &tasks); err != nil {
		return errResult("validation_error", fmt.Sprintf("tasks_json is not a valid task array: %v", err))
	}
	for i, task := range tasks {
		if task.Title == "" {
			return errResult("validation_error", fmt.Sprintf("task %d has no title", i))
		}
		if !store.ValidQuadrant(task.Quadrant) {
			return errResult("validation_error",
				fmt.Sprintf("task %q has invalid quadrant %q", task.Title, task.Quadrant))
		}
		if tasks[i].Status == "" {
			tasks[i].Status = store.StatusCreated
		}
	}

	n, err := t.Store.ReplaceTasks(ctx, ac.UserID, tasks)
	if err != nil {
		return storeFailure(err)
	}
	return jsonResult(map[string]any{
		"success":     true,
		"saved_count": n,
	})
}
