// Package service hosts the MCP server surface for the regex tester.
package service

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/rxlab/internal/mcp/domain"
	"github.com/louisbranch/rxlab/internal/tester"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "rxlab MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server bound to the shared tester
// session.
func New(session *tester.Session) (*Server, error) {
	if session == nil {
		return nil, errors.New("tester session is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerRegexTools(mcpServer, session)
	return &Server{mcpServer: mcpServer}, nil
}

// Run serves MCP requests over stdio until context cancellation.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func registerRegexTools(mcpServer *mcp.Server, session *tester.Session) {
	mcp.AddTool(mcpServer, domain.RegexTestTool(), domain.RegexTestHandler(session))
	mcp.AddTool(mcpServer, domain.RegexSnippetTool(), domain.RegexSnippetHandler(session))
}
