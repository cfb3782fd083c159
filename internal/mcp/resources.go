// ABOUTME: MCP resources for exposing notes as readable resources.
// ABOUTME: Allows AI agents to access note content via URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// We register a resource template for dynamic note access
	// The SDK will automatically handle listing based on the template
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: "quill://note/{id}",
			Name:        "Note",
			Description: "Access individual notes by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	// Parse URI: quill://note/{id}
	ref, ok := strings.CutPrefix(req.Params.URI, "quill://note/")
	if !ok || ref == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	id, err := s.svc.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	note, err := s.svc.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	// Format as markdown
	content := fmt.Sprintf("# %s\n\n", note.Title)
	if len(note.Tags) > 0 {
		content += fmt.Sprintf("**Tags:** %v\n\n", note.Tags)
	}
	if note.AISummary != "" {
		content += fmt.Sprintf("**Summary:** %s\n\n", note.AISummary)
	}
	if note.Encrypted {
		content += "(locked note, content omitted)\n"
	} else {
		content += note.Content
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     content,
			},
		},
	}, nil
}
