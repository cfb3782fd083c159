// ABOUTME: Tests for the note lifecycle service.
// ABOUTME: Covers creation, version bookkeeping, pinning, and the encryption state machine.

package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quillnotes/quill/internal/crypto"
	"github.com/quillnotes/quill/internal/db"
)

type fakeEnricher struct {
	summary string
	tags    []string
	err     error
	calls   int
}

func (f *fakeEnricher) Enrich(ctx context.Context, content string) (string, []string, error) {
	f.calls++
	return f.summary, f.tags, f.err
}

func newTestService(t *testing.T, enricher Enricher) (*Service, *sql.DB) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewService(database, enricher, nil), database
}

func TestCreateWithEnrichment(t *testing.T) {
	enricher := &fakeEnricher{summary: "a summary", tags: []string{"go", "notes"}}
	svc, _ := newTestService(t, enricher)

	note, err := svc.Create(context.Background(), "My Note", "some content")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if note.Version != 1 || len(note.Versions) != 0 {
		t.Errorf("expected fresh note at version 1, got %d/%d", note.Version, len(note.Versions))
	}
	if note.AISummary != "a summary" {
		t.Errorf("expected enriched summary, got %q", note.AISummary)
	}
	if len(note.Tags) != 2 {
		t.Errorf("expected enriched tags, got %v", note.Tags)
	}
	if enricher.calls != 1 {
		t.Errorf("expected one enrichment call, got %d", enricher.calls)
	}

	got, err := svc.Get(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "some content" {
		t.Errorf("expected stored content, got %q", got.Content)
	}
}

func TestCreateDefaultsBlankTitle(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, err := svc.Create(context.Background(), "  ", "content")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if note.Title != "Untitled" {
		t.Errorf("expected default title, got %q", note.Title)
	}
}

func TestCreateSurvivesEnrichmentFailure(t *testing.T) {
	enricher := &fakeEnricher{err: errors.New("service down")}
	svc, _ := newTestService(t, enricher)

	note, err := svc.Create(context.Background(), "Title", "content")
	if err != nil {
		t.Fatalf("enrichment failure must not fail creation: %v", err)
	}
	if note.AISummary != "" {
		t.Errorf("expected no summary, got %q", note.AISummary)
	}

	if _, err := svc.Get(context.Background(), note.ID); err != nil {
		t.Errorf("note should still be stored: %v", err)
	}
}

func TestUpdateVersionBookkeeping(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, err := svc.Create(context.Background(), "Title", "content 0")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	const updates = 4
	for i := 1; i <= updates; i++ {
		content := fmt.Sprintf("content %d", i)
		if _, err := svc.Update(context.Background(), note.ID, UpdateParams{Content: &content}); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	got, err := svc.Get(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Version != updates+1 {
		t.Errorf("expected version %d, got %d", updates+1, got.Version)
	}
	if len(got.Versions) != updates {
		t.Fatalf("expected %d snapshots, got %d", updates, len(got.Versions))
	}
	for i, v := range got.Versions {
		want := fmt.Sprintf("content %d", i)
		if v.Content != want {
			t.Errorf("snapshot %d: expected %q, got %q", i, want, v.Content)
		}
		if v.Version != i+1 {
			t.Errorf("snapshot %d: expected version %d, got %d", i, i+1, v.Version)
		}
	}
}

func TestUpdateUnchangedContentNoSnapshot(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, _ := svc.Create(context.Background(), "Title", "same")
	same := "same"
	if _, err := svc.Update(context.Background(), note.ID, UpdateParams{Content: &same}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := svc.Get(context.Background(), note.ID)
	if got.Version != 1 || len(got.Versions) != 0 {
		t.Errorf("unchanged content must not version, got %d/%d", got.Version, len(got.Versions))
	}
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, _ := svc.Create(context.Background(), "Title", "content")
	before := note.UpdatedAt
	time.Sleep(10 * time.Millisecond)

	title := "Renamed"
	updated, err := svc.Update(context.Background(), note.ID, UpdateParams{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.UpdatedAt.After(before) {
		t.Error("update should refresh UpdatedAt")
	}
	if updated.Title != "Renamed" {
		t.Errorf("expected renamed title, got %q", updated.Title)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)

	content := "content"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateParams{Content: &content})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTogglePin(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, _ := svc.Create(context.Background(), "Title", "content")

	pinned, err := svc.TogglePin(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("toggle pin: %v", err)
	}
	if !pinned.Pinned {
		t.Error("expected note pinned")
	}

	unpinned, err := svc.TogglePin(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("toggle pin: %v", err)
	}
	if unpinned.Pinned {
		t.Error("expected note unpinned again")
	}
}

func TestEncryptDecryptScenario(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, err := svc.Create(context.Background(), "", "Hello world")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if note.Title != "Untitled" || note.Version != 1 || len(note.Versions) != 0 {
		t.Fatalf("unexpected fresh note state: %+v", note)
	}

	content := "Hello world!!"
	if _, err := svc.Update(context.Background(), note.ID, UpdateParams{Content: &content}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := svc.Get(context.Background(), note.ID)
	if got.Version != 2 || len(got.Versions) != 1 || got.Versions[0].Content != "Hello world" {
		t.Fatalf("unexpected state after update: version %d, versions %v", got.Version, got.Versions)
	}

	locked, err := svc.Encrypt(context.Background(), note.ID, "secret")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if !locked.Encrypted || locked.Content != "" || locked.EncryptedPayload == "" {
		t.Fatalf("unexpected encrypted state: %+v", locked)
	}

	// Wrong password first: fails and leaves the note encrypted.
	if _, err := svc.Decrypt(context.Background(), note.ID, "wrong"); !errors.Is(err, crypto.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	still, _ := svc.Get(context.Background(), note.ID)
	if !still.Encrypted || still.Content != "" {
		t.Fatal("failed decrypt must leave the note encrypted")
	}

	plaintext, err := svc.Decrypt(context.Background(), note.ID, "secret")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plaintext != "Hello world!!" {
		t.Errorf("expected original content back, got %q", plaintext)
	}

	unlocked, _ := svc.Get(context.Background(), note.ID)
	if unlocked.Encrypted || unlocked.EncryptedPayload != "" {
		t.Error("decrypt should disarm encryption")
	}
	if unlocked.Content != "Hello world!!" {
		t.Errorf("expected restored content, got %q", unlocked.Content)
	}
}

// Encrypting does not erase earlier plaintext snapshots: the history keeps
// pre-encryption content in the clear. This is current product behavior and
// the test pins it down deliberately.
func TestEncryptKeepsPlaintextHistory(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, _ := svc.Create(context.Background(), "Title", "first draft")
	content := "final draft"
	svc.Update(context.Background(), note.ID, UpdateParams{Content: &content})

	if _, err := svc.Encrypt(context.Background(), note.ID, "secret"); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	got, _ := svc.Get(context.Background(), note.ID)
	if len(got.Versions) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(got.Versions))
	}
	if got.Versions[0].Content != "first draft" || got.Versions[1].Content != "final draft" {
		t.Errorf("plaintext history should survive encryption, got %v", got.Versions)
	}
	if got.Version != len(got.Versions)+1 {
		t.Errorf("version %d must equal len(versions)+1", got.Version)
	}
}

func TestEncryptEmptyPassword(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, _ := svc.Create(context.Background(), "Title", "content")
	if _, err := svc.Encrypt(context.Background(), note.ID, "   "); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestEncryptNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)

	if _, err := svc.Encrypt(context.Background(), uuid.New(), "secret"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEncryptTwiceRejected(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, _ := svc.Create(context.Background(), "Title", "content")
	if _, err := svc.Encrypt(context.Background(), note.ID, "secret"); err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := svc.Encrypt(context.Background(), note.ID, "other"); !errors.Is(err, ErrAlreadyEncrypted) {
		t.Errorf("expected ErrAlreadyEncrypted, got %v", err)
	}
}

func TestDecryptPlainNote(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, _ := svc.Create(context.Background(), "Title", "content")
	if _, err := svc.Decrypt(context.Background(), note.ID, "secret"); !errors.Is(err, ErrNotEncrypted) {
		t.Errorf("expected ErrNotEncrypted, got %v", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, _ := svc.Create(context.Background(), "Title", "content")
	if err := svc.Delete(context.Background(), note.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), note.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), note.ID); err != nil {
		t.Errorf("deleting an unknown id must be a no-op, got %v", err)
	}
}

func TestListMostRecentFirst(t *testing.T) {
	svc, _ := newTestService(t, nil)

	first, _ := svc.Create(context.Background(), "First", "a")
	time.Sleep(10 * time.Millisecond)
	second, _ := svc.Create(context.Background(), "Second", "b")

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(all))
	}
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Error("expected most recently updated note first")
	}
}

func TestResolveAcceptsIDAndPrefix(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, err := svc.Create(context.Background(), "Resolvable", "content")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if id, err := svc.Resolve(context.Background(), note.ID.String()); err != nil || id != note.ID {
		t.Errorf("full id resolve failed: %v %v", id, err)
	}
	if id, err := svc.Resolve(context.Background(), note.ID.String()[:8]); err != nil || id != note.ID {
		t.Errorf("prefix resolve failed: %v %v", id, err)
	}
	if _, err := svc.Resolve(context.Background(), "ffffffff"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown prefix, got %v", err)
	}
}

func TestUpdateContentRejectedWhileLocked(t *testing.T) {
	svc, _ := newTestService(t, nil)

	note, err := svc.Create(context.Background(), "Locked", "secret text")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Encrypt(context.Background(), note.ID, "pw"); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	content := "plaintext written while locked"
	if _, err := svc.Update(context.Background(), note.ID, UpdateParams{Content: &content}); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	got, err := svc.Get(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Encrypted || got.Content != "" || got.EncryptedPayload == "" {
		t.Errorf("locked state corrupted: encrypted=%v content=%q payload=%q", got.Encrypted, got.Content, got.EncryptedPayload)
	}

	// Title-only edits do not touch the sealed content.
	title := "Renamed while locked"
	renamed, err := svc.Update(context.Background(), note.ID, UpdateParams{Title: &title})
	if err != nil {
		t.Fatalf("title update on locked note: %v", err)
	}
	if renamed.Title != title || !renamed.Encrypted || renamed.Content != "" {
		t.Errorf("title update disturbed locked note: %+v", renamed)
	}
}
