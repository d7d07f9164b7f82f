// Command sahay-mcp runs the productivity and wellness MCP server over
// stdio. All diagnostics go to stderr; stdout belongs to the protocol.
package main

import (
	"fmt"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/config"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/logging"
	"github.com/StraightOuttaVellore-Google/sahay-mcp-server/internal/server"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			fmt.Fprintf(os.Stderr, "%s %s\n", config.ServerName, version)
			return
		case "help", "--help", "-h":
			usage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
			usage()
			os.Exit(2)
		}
	}

	log := logging.New(os.Getenv("LOG_LEVEL"))
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("loading configuration", zap.Error(err))
	}

	s, cleanup, err := server.New(cfg, version, log)
	if err != nil {
		log.Fatal("building server", zap.Error(err))
	}
	defer cleanup()

	log.Info("serving over stdio",
		zap.String("version", version),
		zap.String("data_dir", cfg.DataDir))

	if err := mcpserver.ServeStdio(s); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `%s - productivity and wellness MCP server

Usage:
  sahay-mcp            serve MCP over stdio (default)
  sahay-mcp version    print the version
  sahay-mcp help       show this help

Environment:
  SAHAY_DATA_DIR         data directory (default ~/.sahay)
  MCP_ADMIN_API_KEY      admin key for external clients
  MCP_USER_API_KEY_<id>  per-user api key seeding
  INSIGHT_API_KEY        enables model-generated insights
  INSIGHT_BASE_URL       OpenAI-compatible endpoint override
  INSIGHT_MODEL          model name (default gemini-2.0-flash)
  INSIGHT_TIMEOUT        per-request timeout (default 30s)
  LOG_LEVEL              debug, info, warn or error
`, config.ServerName)
}
