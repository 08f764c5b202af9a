// Package mcp exposes the tracker facade as Model Context Protocol tools
// for agent use over stdio.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tkxr/tkxr/internal/tracker"
)

// Config contains server configuration.
type Config struct {
	Service *tracker.Service
	Logger  *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and the
// usage resource registered.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "tkxr-mcp",
		Version: "1.0.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)
	registerTools(server, cfg.Service)

	return server
}
