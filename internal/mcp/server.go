// ABOUTME: MCP server for quill integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts for note management.

package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quillnotes/quill/internal/ai"
	"github.com/quillnotes/quill/internal/notes"
)

type Server struct {
	server  *mcp.Server
	svc     *notes.Service
	gateway *ai.Gateway
}

func NewServer(svc *notes.Service, gateway *ai.Gateway) *Server {
	s := &Server{svc: svc, gateway: gateway}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "quill",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
