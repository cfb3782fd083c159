// ABOUTME: MCP tools for note CRUD, history, encryption, and AI operations.
// ABOUTME: Maps CLI functionality to MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quillnotes/quill/internal/ai"
	"github.com/quillnotes/quill/internal/crypto"
	"github.com/quillnotes/quill/internal/models"
	"github.com/quillnotes/quill/internal/notes"
)

func (s *Server) registerTools() {
	// add_note
	s.server.AddTool(&mcp.Tool{
		Name:        "add_note",
		Description: "Create a new note with title and content",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title"},
				"content": {"type": "string", "description": "Note content (markdown)"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Optional tags"}
			},
			"required": ["title", "content"]
		}`),
	}, s.handleAddNote)

	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes, most recently updated first",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"tag": {"type": "string", "description": "Filter by tag"},
				"limit": {"type": "integer", "description": "Max results", "default": 20}
			}
		}`),
	}, s.handleListNotes)

	// search_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "search_notes",
		Description: "Full-text search notes by title, content, or summary",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search query"},
				"limit": {"type": "integer", "description": "Max results", "default": 10}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchNotes)

	// get_note
	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID prefix, including its version history",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	// update_note
	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Update a note's title, content, or tags. Content changes snapshot the previous version.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New content"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Replacement tags"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateNote)

	// delete_note
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteNote)

	// pin_note
	s.server.AddTool(&mcp.Tool{
		Name:        "pin_note",
		Description: "Toggle a note's pinned flag",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handlePinNote)

	// lock_note
	s.server.AddTool(&mcp.Tool{
		Name:        "lock_note",
		Description: "Encrypt a note's content with a password",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"password": {"type": "string", "description": "Encryption password"}
			},
			"required": ["id", "password"]
		}`),
	}, s.handleLockNote)

	// unlock_note
	s.server.AddTool(&mcp.Tool{
		Name:        "unlock_note",
		Description: "Decrypt a locked note with its password",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"password": {"type": "string", "description": "Encryption password"}
			},
			"required": ["id", "password"]
		}`),
	}, s.handleUnlockNote)

	// note_history
	s.server.AddTool(&mcp.Tool{
		Name:        "note_history",
		Description: "List the version snapshots of a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleNoteHistory)

	// summarize_note
	s.server.AddTool(&mcp.Tool{
		Name:        "summarize_note",
		Description: "Generate and save an AI summary for a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleSummarizeNote)

	// translate_note
	s.server.AddTool(&mcp.Tool{
		Name:        "translate_note",
		Description: "Translate a note's content to another language",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"language": {"type": "string", "description": "Target language"}
			},
			"required": ["id", "language"]
		}`),
	}, s.handleTranslateNote)

	// grammar_check
	s.server.AddTool(&mcp.Tool{
		Name:        "grammar_check",
		Description: "Check a note's content for grammar issues",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleGrammarCheck)

	// note_insights
	s.server.AddTool(&mcp.Tool{
		Name:        "note_insights",
		Description: "Extract actionable insights from a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleNoteInsights)

	// glossary_terms
	s.server.AddTool(&mcp.Tool{
		Name:        "glossary_terms",
		Description: "Extract glossary terms from a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleGlossaryTerms)

	// import_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "import_notes",
		Description: "Import notes from a JSON export, keeping the most recently updated copy of each",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"data": {"type": "string", "description": "JSON export payload"}
			},
			"required": ["data"]
		}`),
	}, s.handleImportNotes)

	// export_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "export_notes",
		Description: "Export all notes as JSON, including version history",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleExportNotes)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

// Tool handlers.
func (s *Server) handleAddNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Content) == "" {
		return errorResult("note content cannot be empty"), nil
	}

	note, err := s.svc.Create(ctx, params.Title, params.Content)
	if err != nil {
		return errorResult("failed to create note: %v", err), nil
	}

	if len(params.Tags) > 0 {
		note, err = s.svc.Update(ctx, note.ID, notes.UpdateParams{Tags: params.Tags})
		if err != nil {
			return errorResult("note created but failed to set tags: %v", err), nil
		}
	}

	return textResult(fmt.Sprintf("Created note %s", note.ID.String())), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Tag   string `json:"tag"`
		Limit int    `json:"limit"`
	}
	params.Limit = 20 // default
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	all, err := s.svc.List(ctx)
	if err != nil {
		return errorResult("failed to list notes: %v", err), nil
	}

	var out []*models.Note
	for _, n := range all {
		if params.Tag != "" && !n.HasTag(params.Tag) {
			continue
		}
		out = append(out, n)
		if params.Limit > 0 && len(out) >= params.Limit {
			break
		}
	}

	return jsonResult(out), nil
}

func (s *Server) handleSearchNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	params.Limit = 10 // default
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	results, err := s.svc.Search(ctx, params.Query, params.Limit)
	if err != nil {
		return errorResult("search failed: %v", err), nil
	}

	return jsonResult(results), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, errRes := s.resolveNote(ctx, req)
	if errRes != nil {
		return errRes, nil
	}
	return jsonResult(note), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID      string   `json:"id"`
		Title   *string  `json:"title"`
		Content *string  `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := s.svc.Resolve(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	if params.Content != nil && strings.TrimSpace(*params.Content) == "" {
		return errorResult("note content cannot be empty"), nil
	}

	note, err := s.svc.Update(ctx, id, notes.UpdateParams{
		Title:   params.Title,
		Content: params.Content,
		Tags:    params.Tags,
	})
	if err != nil {
		return errorResult("failed to update note: %v", err), nil
	}

	return textResult(fmt.Sprintf("Updated note %s (v%d)", note.ID.String(), note.Version)), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := s.svc.Resolve(ctx, params.ID)
	if err != nil {
		if errors.Is(err, notes.ErrNotFound) {
			return textResult("Note already deleted."), nil
		}
		return errorResult("failed to find note: %v", err), nil
	}

	if err := s.svc.Delete(ctx, id); err != nil {
		return errorResult("failed to delete note: %v", err), nil
	}

	return textResult(fmt.Sprintf("Deleted note %s", id.String())), nil
}

func (s *Server) handlePinNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := s.svc.Resolve(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	note, err := s.svc.TogglePin(ctx, id)
	if err != nil {
		return errorResult("failed to toggle pin: %v", err), nil
	}

	state := "Unpinned"
	if note.Pinned {
		state = "Pinned"
	}
	return textResult(fmt.Sprintf("%s note %s", state, note.ID.String())), nil
}

func (s *Server) handleLockNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID       string `json:"id"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := s.svc.Resolve(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	note, err := s.svc.Encrypt(ctx, id, params.Password)
	if err != nil {
		return errorResult("failed to lock note: %v", err), nil
	}

	return textResult(fmt.Sprintf("Locked note %s", note.ID.String())), nil
}

func (s *Server) handleUnlockNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID       string `json:"id"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := s.svc.Resolve(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	plaintext, err := s.svc.Decrypt(ctx, id, params.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidPassword) {
			return errorResult("invalid password"), nil
		}
		return errorResult("failed to unlock note: %v", err), nil
	}

	return textResult(plaintext), nil
}

func (s *Server) handleNoteHistory(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, errRes := s.resolveNote(ctx, req)
	if errRes != nil {
		return errRes, nil
	}
	return jsonResult(note.Versions), nil
}

func (s *Server) handleSummarizeNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, errRes := s.resolveUnlockedNote(ctx, req)
	if errRes != nil {
		return errRes, nil
	}

	summary, err := s.gateway.Summarize(ctx, note.Content)
	if err != nil {
		return s.aiError(ai.CategoryTools, err), nil
	}
	if summary == "" {
		return textResult("Nothing to summarize."), nil
	}

	if _, err := s.svc.Update(ctx, note.ID, notes.UpdateParams{AISummary: &summary}); err != nil {
		return errorResult("failed to save summary: %v", err), nil
	}

	return textResult(summary), nil
}

func (s *Server) handleTranslateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID       string `json:"id"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	id, err := s.svc.Resolve(ctx, params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	note, err := s.svc.Get(ctx, id)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	if note.Encrypted {
		return errorResult("note is locked"), nil
	}

	translated, err := s.gateway.Translate(ctx, note.Content, params.Language)
	if err != nil {
		return s.aiError(ai.CategoryTranslate, err), nil
	}

	return textResult(translated), nil
}

func (s *Server) handleGrammarCheck(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, errRes := s.resolveUnlockedNote(ctx, req)
	if errRes != nil {
		return errRes, nil
	}

	suggestions, err := s.gateway.CheckGrammar(ctx, note.Content)
	if err != nil {
		return s.aiError(ai.CategoryTools, err), nil
	}

	return jsonResult(suggestions), nil
}

func (s *Server) handleNoteInsights(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, errRes := s.resolveUnlockedNote(ctx, req)
	if errRes != nil {
		return errRes, nil
	}

	insights, err := s.gateway.Insights(ctx, note.Content)
	if err != nil {
		return s.aiError(ai.CategoryTools, err), nil
	}

	return jsonResult(insights), nil
}

func (s *Server) handleGlossaryTerms(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, errRes := s.resolveUnlockedNote(ctx, req)
	if errRes != nil {
		return errRes, nil
	}

	return jsonResult(s.gateway.ExtractGlossary(note.Content)), nil
}

func (s *Server) handleImportNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	candidates, err := notes.ParseImport([]byte(params.Data))
	if err != nil {
		return errorResult("failed to parse import: %v", err), nil
	}

	result, err := s.svc.ImportMerge(ctx, candidates)
	if err != nil {
		return errorResult("import failed: %v", err), nil
	}

	return textResult(fmt.Sprintf("Imported %d notes (%d skipped)", result.Imported, result.Skipped)), nil
}

func (s *Server) handleExportNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	export, err := s.svc.ExportAll(ctx)
	if err != nil {
		return errorResult("failed to export notes: %v", err), nil
	}
	return jsonResult(export), nil
}

// resolveNote parses an {"id": ...} argument and loads the note.
func (s *Server) resolveNote(ctx context.Context, req *mcp.CallToolRequest) (*models.Note, *mcp.CallToolResult) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, errorResult("invalid arguments: %v", err)
	}

	id, err := s.svc.Resolve(ctx, params.ID)
	if err != nil {
		return nil, errorResult("failed to find note: %v", err)
	}
	note, err := s.svc.Get(ctx, id)
	if err != nil {
		return nil, errorResult("failed to get note: %v", err)
	}
	return note, nil
}

func (s *Server) resolveUnlockedNote(ctx context.Context, req *mcp.CallToolRequest) (*models.Note, *mcp.CallToolResult) {
	note, errRes := s.resolveNote(ctx, req)
	if errRes != nil {
		return nil, errRes
	}
	if note.Encrypted {
		return nil, errorResult("note is locked; unlock it first")
	}
	return note, nil
}

func (s *Server) aiError(cat ai.Category, err error) *mcp.CallToolResult {
	if errors.Is(err, ai.ErrCooldown) {
		return errorResult("AI is cooling down, try again in %s", s.gateway.CooldownRemaining(cat))
	}
	return errorResult("AI request failed: %v", err)
}
