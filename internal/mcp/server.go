// ABOUTME: MCP server setup for the health record sync engine.
// ABOUTME: Wraps MCP server with an engine connection.
package mcp

import (
	"context"

	"github.com/harperreed/healthlog/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with engine access.
type Server struct {
	mcpServer *mcp.Server
	engine    *engine.Engine
}

// NewServer creates a new MCP server over the given engine.
func NewServer(eng *engine.Engine) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "healthlog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		engine:    eng,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
