// ABOUTME: MCP prompts for common note-taking workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	// Register individual prompts - SDK will automatically handle listing
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "create-daily-journal",
		Description: "Create a daily journal entry with prompts for reflection",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "date",
				Description: "Date for the journal entry (YYYY-MM-DD)",
				Required:    false,
			},
		},
	}, s.getDailyJournalPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "review-note",
		Description: "Review a note for clarity, grammar, and structure",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "note_id",
				Description: "ID of the note to review",
				Required:    true,
			},
		},
	}, s.getReviewNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "organize-notes",
		Description: "Get suggestions for organizing and tagging notes",
	}, s.getOrganizeNotesPrompt)
}

func (s *Server) getDailyJournalPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	date, ok := req.Params.Arguments["date"]
	if !ok || date == "" {
		date = "today"
	}

	template := fmt.Sprintf(`Create a daily journal entry for %s.

Please include reflections on:

## Today's Highlights
- What went well today?

## Challenges
- What difficulties came up, and what can be learned from them?

## Tomorrow's Focus
- What are the top 3 priorities?

Use the add_note tool to create this journal entry with tags like "journal", "daily-notes".`, date)

	return promptResult(template), nil
}

func (s *Server) getReviewNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	noteID, ok := req.Params.Arguments["note_id"]
	if !ok || noteID == "" {
		return nil, fmt.Errorf("note_id argument is required")
	}

	template := fmt.Sprintf(`Please review the note with ID: %s

1. Use the get_note tool to retrieve the note content
2. Use the grammar_check tool to find grammar issues
3. Use the summarize_note tool to generate a summary
4. Suggest structural improvements (headings, lists, splitting long sections)
5. If the content changed, use the update_note tool to apply the fixes`, noteID)

	return promptResult(template), nil
}

func (s *Server) getOrganizeNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `Help me organize my notes by:

1. Use the list_notes tool to see all my notes
2. Analyze the content and identify common themes
3. Suggest a tagging system that would help categorize them
4. Recommend which notes deserve pinning with the pin_note tool
5. Identify notes that might need updating or archiving

Please provide specific recommendations with note IDs and suggested tags.`

	return promptResult(template), nil
}

func promptResult(template string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: template,
				},
			},
		},
	}
}
