package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/analysis"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
)

// MonthlyOverviewTool combines mood distribution, task completion and
// the wellness score for one month.
type MonthlyOverviewTool struct {
	Store *store.Store
	Auth  *auth.Authenticator
}

func (t *MonthlyOverviewTool) Definition() mcp.Tool {
	return mcp.NewTool("stats_monthly_overview",
		withIdentity(
			mcp.WithDescription("Get the monthly overview: emotion breakdown, task completion and overall wellness score."),
			mcp.WithNumber("year", mcp.Description("Four-digit year. Defaults to current.")),
			mcp.WithNumber("month", mcp.Description("Month 1-12. Defaults to current.")),
		)...)
}

func (t *MonthlyOverviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ac, fail, err := identify(t.Auth, req)
	if fail != nil {
		return fail, err
	}

	year, month, bad := monthArgs(req)
	if bad != nil {
		return bad, nil
	}

	entries, err := t.Store.MonthlyEntries(ctx, ac.UserID, year, month)
	if err != nil {
		return storeFailure(err)
	}
	tasks, err := t.Store.ListTasks(ctx, ac.UserID)
	if err != nil {
		return storeFailure(err)
	}

	return jsonResult(map[string]any{
		"success":  true,
		"overview": analysis.Overview(year, month, entries, tasks),
	})
}
