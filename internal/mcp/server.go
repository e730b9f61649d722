package mcp

import (
	"context"
	"log/slog"

	"github.com/mergington/activities/internal/domain/activity"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ActivityService defines the registry operations exposed as MCP tools.
type ActivityService interface {
	ListActivities(ctx context.Context) (activity.Catalog, error)
	GetActivity(ctx context.Context, name string) (*activity.Activity, error)
	Enroll(ctx context.Context, name, email string) (string, error)
	Remove(ctx context.Context, name, email string) (string, error)
}

// Config contains server configuration.
type Config struct {
	Activities ActivityService
	Version    string
	Logger     *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "mergington-activities",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)
	registerCatalogResource(server, cfg.Activities, logger)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Activities, logger)

	return server
}
