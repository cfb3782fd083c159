// ABOUTME: Logical inference operations: summarize, tags, translate, grammar, glossary.
// ABOUTME: Every operation degrades to a usable local value when the service is out.

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	summaryPrompt  = "You are a helpful assistant that creates concise summaries. Summarize the following text in 1-2 sentences."
	tagsPrompt     = "Generate 3-5 relevant tags for the following content. Return only the tags separated by commas, no other text."
	grammarPrompt  = "Find grammar/spelling issues in this text. Return a compact JSON array of objects with fields: text (string), suggestion (string). No extra text."
	insightsPrompt = "Extract 3-5 actionable insights or key points from the text. Return each as a bullet sentence."
)

// fallbackTags seeds the tag set returned when tag generation is unavailable.
// Callers get a copy; the note service hands tags straight to the note.
var fallbackTags = []string{"note", "document"}

func fallbackTagSet() []string {
	return append([]string(nil), fallbackTags...)
}

// GrammarSuggestion is a single proposed correction.
type GrammarSuggestion struct {
	Text       string `json:"text"`
	Suggestion string `json:"suggestion"`
}

// GlossaryTerm is a recognized term with its position in the source text.
type GlossaryTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
}

// Summarize produces a short summary of content. Empty content yields an
// empty summary without a request.
func (g *Gateway) Summarize(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	if err := g.checkCooldown(CategoryTools); err != nil {
		return "", err
	}
	text, err := g.invoke(ctx, summaryPrompt, content)
	g.settleCooldown(CategoryTools, err)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateTags suggests tags for content. When the service is unavailable it
// returns a small fixed tag set alongside the error.
func (g *Gateway) GenerateTags(ctx context.Context, content string) ([]string, error) {
	if strings.TrimSpace(content) == "" {
		return []string{}, nil
	}
	if err := g.checkCooldown(CategoryTools); err != nil {
		return []string{}, err
	}
	text, err := g.invoke(ctx, tagsPrompt, content)
	g.settleCooldown(CategoryTools, err)
	if err != nil {
		return fallbackTagSet(), err
	}
	return splitTags(text), nil
}

// Enrich runs the summary and tag generation pair under a single cooldown
// check, the bundle used by note creation. Failures surface in the returned
// error while the values stay usable.
func (g *Gateway) Enrich(ctx context.Context, content string) (string, []string, error) {
	if strings.TrimSpace(content) == "" {
		return "", []string{}, nil
	}
	if err := g.checkCooldown(CategoryTools); err != nil {
		return "", []string{}, err
	}

	summary, sumErr := g.invoke(ctx, summaryPrompt, content)
	tagText, tagErr := g.invoke(ctx, tagsPrompt, content)

	err := sumErr
	if err == nil {
		err = tagErr
	}
	g.settleCooldown(CategoryTools, err)

	tags := fallbackTagSet()
	if tagErr == nil {
		tags = splitTags(tagText)
	}
	if sumErr != nil {
		summary = ""
	}
	return strings.TrimSpace(summary), tags, err
}

// Translate renders text in the target language. The input text comes back
// unchanged when the service is unavailable.
func (g *Gateway) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if err := g.checkCooldown(CategoryTranslate); err != nil {
		return text, err
	}
	prompt := fmt.Sprintf("Translate the following text to %s. Return only the translation, no other text.", targetLanguage)
	out, err := g.invoke(ctx, prompt, text)
	g.settleCooldown(CategoryTranslate, err)
	if err != nil {
		return text, err
	}
	return strings.TrimSpace(out), nil
}

// CheckGrammar asks for corrections as a JSON array. Unavailability and
// unparseable replies both degrade to a local heuristic pass.
func (g *Gateway) CheckGrammar(ctx context.Context, text string) ([]GrammarSuggestion, error) {
	if strings.TrimSpace(text) == "" {
		return []GrammarSuggestion{}, nil
	}
	if err := g.checkCooldown(CategoryTools); err != nil {
		return []GrammarSuggestion{}, err
	}
	raw, err := g.invoke(ctx, grammarPrompt, text)
	g.settleCooldown(CategoryTools, err)
	if err != nil {
		return localGrammar(text), err
	}

	var parsed []GrammarSuggestion
	if jsonErr := json.Unmarshal([]byte(stripFences(raw)), &parsed); jsonErr != nil {
		return localGrammar(text), nil
	}
	out := parsed[:0]
	for _, s := range parsed {
		if s.Text != "" && s.Suggestion != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// Insights extracts up to five actionable bullet points from the content.
// Unavailability degrades to an empty list alongside the error.
func (g *Gateway) Insights(ctx context.Context, content string) ([]string, error) {
	if strings.TrimSpace(content) == "" {
		return []string{}, nil
	}
	if err := g.checkCooldown(CategoryTools); err != nil {
		return []string{}, err
	}
	raw, err := g.invoke(ctx, insightsPrompt, content)
	g.settleCooldown(CategoryTools, err)
	if err != nil {
		return []string{}, err
	}
	return splitInsights(raw), nil
}

// ExtractGlossary finds known terms in the text. It is always local and
// never fails.
func (g *Gateway) ExtractGlossary(text string) []GlossaryTerm {
	known := []string{"AI", "encryption", "database", "algorithm"}

	terms := []GlossaryTerm{}
	for _, term := range known {
		idx := strings.Index(text, term)
		if idx < 0 {
			continue
		}
		terms = append(terms, GlossaryTerm{
			Term:       term,
			Definition: fmt.Sprintf("Definition for %s", term),
			Start:      idx,
			End:        idx + len(term),
		})
	}
	return terms
}

func splitTags(text string) []string {
	tags := []string{}
	for _, t := range strings.Split(text, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// splitInsights breaks a bullet-formatted reply into at most five points,
// accepting newline or "- " separators.
func splitInsights(raw string) []string {
	out := []string{}
	for _, line := range strings.Split(raw, "\n") {
		for _, piece := range strings.Split(line, "- ") {
			piece = strings.TrimSpace(strings.TrimLeft(piece, "-*• "))
			if piece == "" {
				continue
			}
			out = append(out, piece)
			if len(out) == 5 {
				return out
			}
		}
	}
	return out
}

// localGrammar is the offline fallback: a single common-typo check.
func localGrammar(text string) []GrammarSuggestion {
	if strings.Contains(text, "teh") {
		return []GrammarSuggestion{{Text: "teh", Suggestion: "the"}}
	}
	return []GrammarSuggestion{}
}

// stripFences removes a markdown code fence the model sometimes wraps JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
