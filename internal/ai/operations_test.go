// ABOUTME: Tests for the logical inference operations.
// ABOUTME: Covers fallback values, tag parsing, grammar parsing, and glossary locality.

package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func unavailableGateway() *Gateway {
	// No server behind this address; every attempt fails fast.
	return testGateway("http://127.0.0.1:0", func(c *Config) {
		c.MaxRetries = 1
		c.BaseDelay = time.Millisecond
	})
}

func TestSummarizeEmptyContentSkipsRequest(t *testing.T) {
	g := unavailableGateway()

	got, err := g.Summarize(context.Background(), "   ")
	if err != nil {
		t.Fatalf("empty content should not error, got %v", err)
	}
	if got != "" {
		t.Errorf("expected empty summary, got %q", got)
	}
}

func TestGenerateTagsParsesCommaList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("go, notes , ,encryption"))
	}))
	defer srv.Close()

	g := testGateway(srv.URL, nil)

	tags, err := g.GenerateTags(context.Background(), "content")
	if err != nil {
		t.Fatalf("generate tags: %v", err)
	}
	want := []string{"go", "notes", "encryption"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tag %d: expected %q, got %q", i, want[i], tags[i])
		}
	}
}

func TestGenerateTagsFallback(t *testing.T) {
	g := unavailableGateway()

	tags, err := g.GenerateTags(context.Background(), "content")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if len(tags) != 2 || tags[0] != "note" || tags[1] != "document" {
		t.Errorf("expected fallback tag set, got %v", tags)
	}
}

func TestTranslateFallbackReturnsInput(t *testing.T) {
	g := unavailableGateway()

	got, err := g.Translate(context.Background(), "bonjour", "English")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if got != "bonjour" {
		t.Errorf("expected unmodified input, got %q", got)
	}
}

func TestCheckGrammarParsesSuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody(`[{"text":"teh","suggestion":"the"},{"text":"","suggestion":"dropped"}]`))
	}))
	defer srv.Close()

	g := testGateway(srv.URL, nil)

	got, err := g.CheckGrammar(context.Background(), "teh text")
	if err != nil {
		t.Fatalf("check grammar: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected incomplete entries filtered, got %v", got)
	}
	if got[0].Text != "teh" || got[0].Suggestion != "the" {
		t.Errorf("unexpected suggestion %+v", got[0])
	}
}

func TestCheckGrammarFencedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("```json\n[{\"text\":\"recieve\",\"suggestion\":\"receive\"}]\n```"))
	}))
	defer srv.Close()

	g := testGateway(srv.URL, nil)

	got, err := g.CheckGrammar(context.Background(), "recieve")
	if err != nil {
		t.Fatalf("check grammar: %v", err)
	}
	if len(got) != 1 || got[0].Suggestion != "receive" {
		t.Errorf("expected fenced JSON parsed, got %v", got)
	}
}

func TestCheckGrammarLocalHeuristicFallback(t *testing.T) {
	g := unavailableGateway()

	got, err := g.CheckGrammar(context.Background(), "teh quick fox")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if len(got) != 1 || got[0].Text != "teh" || got[0].Suggestion != "the" {
		t.Errorf("expected local heuristic match, got %v", got)
	}

	got, _ = g.CheckGrammar(context.Background(), "clean text")
	if len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestEnrichBundle(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, completionBody("the summary"))
			return
		}
		fmt.Fprint(w, completionBody("alpha, beta"))
	}))
	defer srv.Close()

	g := testGateway(srv.URL, nil)

	summary, tags, err := g.Enrich(context.Background(), "content")
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if summary != "the summary" {
		t.Errorf("expected summary, got %q", summary)
	}
	if len(tags) != 2 || tags[0] != "alpha" {
		t.Errorf("expected parsed tags, got %v", tags)
	}
	if calls != 2 {
		t.Errorf("expected summary+tags pair of requests, got %d", calls)
	}

	// The bundle armed one tools cooldown covering both operations.
	if _, err := g.Summarize(context.Background(), "content"); !errors.Is(err, ErrCooldown) {
		t.Errorf("expected tools cooldown after enrich, got %v", err)
	}
}

func TestEnrichFallbackValues(t *testing.T) {
	g := unavailableGateway()

	summary, tags, err := g.Enrich(context.Background(), "content")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if summary != "" {
		t.Errorf("expected empty summary fallback, got %q", summary)
	}
	if len(tags) != 2 {
		t.Errorf("expected fallback tags, got %v", tags)
	}
}

func TestExtractGlossaryIsLocal(t *testing.T) {
	g := unavailableGateway()

	terms := g.ExtractGlossary("notes about encryption and a database")
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %v", terms)
	}
	if terms[0].Term != "encryption" {
		t.Errorf("expected encryption first, got %q", terms[0].Term)
	}
	for _, term := range terms {
		if term.Start < 0 || term.End <= term.Start {
			t.Errorf("bad position for %q: %d-%d", term.Term, term.Start, term.End)
		}
	}

	if terms := g.ExtractGlossary("nothing relevant here"); len(terms) != 0 {
		t.Errorf("expected no terms, got %v", terms)
	}
}

func TestInsightsParsesBullets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("- Ship the draft\n- Follow up with the vendor\n- Archive stale notes"))
	}))
	defer srv.Close()
	g := testGateway(srv.URL, nil)

	got, err := g.Insights(context.Background(), "meeting notes")
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if len(got) != 3 || got[0] != "Ship the draft" || got[2] != "Archive stale notes" {
		t.Errorf("unexpected insights: %v", got)
	}
}

func TestInsightsCapsAtFivePoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("- one\n- two\n- three\n- four\n- five\n- six\n- seven"))
	}))
	defer srv.Close()
	g := testGateway(srv.URL, nil)

	got, err := g.Insights(context.Background(), "a long document")
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("expected at most 5 insights, got %d: %v", len(got), got)
	}
}

func TestInsightsFallbackEmptyList(t *testing.T) {
	g := unavailableGateway()

	got, err := g.Insights(context.Background(), "content")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty fallback, got %v", got)
	}
}

func TestInsightsEmptyContentSkipsRequest(t *testing.T) {
	g := unavailableGateway()

	got, err := g.Insights(context.Background(), "   \n  ")
	if err != nil || len(got) != 0 {
		t.Errorf("expected silent empty result, got %v (%v)", got, err)
	}
}

func TestFallbackTagsAreNotShared(t *testing.T) {
	g := unavailableGateway()

	tags, err := g.GenerateTags(context.Background(), "content")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	tags[0] = "mutated"
	if fallbackTags[0] != "note" || fallbackTags[1] != "document" {
		t.Errorf("caller mutation leaked into shared fallback: %v", fallbackTags)
	}
}
