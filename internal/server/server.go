// Package server wires the MCP server together: storage, auth, the
// insight client and every tool registration live here.
package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/auth"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/config"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/insight"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/store"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/tools"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/wellness"
)

const instructions = `Productivity and wellness tools for a single user per call.
Identify the user on every call: pass user_id from the trusted backend, or api_key for external clients.
Task tools work on the full Eisenhower matrix; saves replace the whole list.
Use save_complete_wellness_analysis at the end of a wellness conversation to persist everything at once.`

// New builds the MCP server and returns it with a cleanup function that
// releases the store.
func New(cfg config.Config, version string, log *zap.Logger) (*server.MCPServer, func(), error) {
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() {
		if err := st.Close(); err != nil {
			log.Warn("closing store", zap.Error(err))
		}
	}

	keys := auth.NewMemoryStore()
	if n := keys.SeedFromOSEnv(config.UserKeyEnvPrefix); n > 0 {
		log.Info("seeded user api keys from environment", zap.Int("count", n))
	}
	authn := auth.New(cfg.AdminAPIKey, keys, auth.Chain{&auth.StoreDirectory{Store: st}}, log)

	var insightClient insight.Client
	if cfg.InsightEnabled() {
		insightClient = insight.NewOpenAIClient(
			cfg.InsightAPIKey, cfg.InsightBaseURL, cfg.InsightModel, cfg.InsightTimeout, log)
		log.Info("insight client enabled", zap.String("model", cfg.InsightModel))
	} else {
		log.Info("insight client disabled, rule-based analysis only")
	}

	saver := wellness.NewSaver(st, log)

	s := server.NewMCPServer(
		config.ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	register(s,
		&tools.GetTasksTool{Store: st, Auth: authn},
		&tools.SaveTasksTool{Store: st, Auth: authn},
		&tools.GetMonthlyDataTool{Store: st, Auth: authn},
		&tools.SaveDailyDataTool{Store: st, Auth: authn},
		&tools.MonthlyOverviewTool{Store: st, Auth: authn},
		&tools.SavePomodoroTool{Store: st, Auth: authn},
		&tools.PomodoroAnalyticsTool{Store: st, Auth: authn},
		&tools.RegisterDeviceTool{Store: st, Auth: authn},
		&tools.ListDevicesTool{Store: st, Auth: authn},
		&tools.IngestWearableTool{Store: st, Auth: authn},
		&tools.GetWearableDataTool{Store: st, Auth: authn},
		&tools.RecoveryScoreTool{Store: st, Auth: authn},
		&tools.AnalyzeWearableTool{Store: st, Auth: authn},
		&tools.WearableInsightsTool{Store: st, Auth: authn, Insight: insightClient, Log: log},
		&tools.MockWearableTool{Auth: authn},
		&tools.GenerateMockDataTool{Store: st, Auth: authn},
		&tools.StudyPatternsTool{Store: st, Auth: authn},
		&tools.StoredStudyPatternsTool{Store: st, Auth: authn},
		&tools.TaskDistributionTool{Store: st, Auth: authn},
		&tools.PomodoroEffectivenessTool{Store: st, Auth: authn},
		&tools.WellnessContextTool{Store: st, Auth: authn},
		&tools.WellnessTrendsTool{Store: st, Auth: authn},
		&tools.ComprehensiveReportTool{Store: st, Auth: authn, Insight: insightClient, Log: log},
		&tools.SaveTaskRecommendationTool{Store: st, Auth: authn},
		&tools.SavePathwaySuggestionTool{Store: st, Auth: authn},
		&tools.SaveInsightRecommendationTool{Store: st, Auth: authn},
		&tools.SaveExerciseRecommendationTool{Store: st, Auth: authn},
		&tools.SaveWellnessSummaryTool{Store: st, Auth: authn},
		&tools.BulkSaveTool{Saver: saver, Auth: authn},
		&tools.LoginTool{Auth: authn},
		&tools.RegisterKeyTool{Auth: authn},
		&tools.RevokeKeyTool{Auth: authn},
		&tools.ListKeysTool{Auth: authn},
	)

	return s, cleanup, nil
}

// tool is the shape every tool in this server has.
type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

func register(s *server.MCPServer, ts ...tool) {
	for _, t := range ts {
		s.AddTool(t.Definition(), t.Handle)
	}
}
