// ABOUTME: Note lifecycle service: creation, mutation, pinning, lock/unlock.
// ABOUTME: Owns the version bookkeeping and encryption state transitions.

package notes

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/quillnotes/quill/internal/crypto"
	"github.com/quillnotes/quill/internal/db"
	"github.com/quillnotes/quill/internal/models"
	"go.uber.org/zap"
)

var (
	ErrNotFound         = errors.New("note not found")
	ErrEmptyPassword    = errors.New("password must not be empty")
	ErrNotEncrypted     = errors.New("note is not encrypted")
	ErrAlreadyEncrypted = errors.New("note is already encrypted")
	ErrLocked           = errors.New("note is locked; decrypt before editing content")
)

// Enricher produces a best-effort summary and tag set for new content.
// The inference gateway implements it; tests substitute fakes.
type Enricher interface {
	Enrich(ctx context.Context, content string) (summary string, tags []string, err error)
}

// Service enforces the note invariants across every mutation entry point.
// Updates to one note id are serialized internally, so concurrent callers
// cannot interleave load-modify-save sequences on the same note.
type Service struct {
	db       *sql.DB
	enricher Enricher
	log      *zap.Logger
	locks    idLocks
}

func NewService(database *sql.DB, enricher Enricher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: database, enricher: enricher, log: log}
}

// UpdateParams carries the fields an update may change. Nil pointers leave
// the stored value alone; a nil Tags slice does too.
type UpdateParams struct {
	Title     *string
	Content   *string
	Pinned    *bool
	Tags      []string
	AISummary *string
}

// Create stores a new note. Enrichment (summary, tags) is best-effort: its
// failure is logged and the note is created regardless.
func (s *Service) Create(ctx context.Context, title, content string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}
	note := models.NewNote(title, content)

	if s.enricher != nil {
		summary, tags, err := s.enricher.Enrich(ctx, content)
		if err != nil {
			s.log.Warn("ai enrichment unavailable",
				zap.String("note_id", note.ID.String()),
				zap.Error(err))
		}
		if summary != "" {
			note.AISummary = summary
		}
		if len(tags) > 0 {
			note.Tags = tags
		}
	}

	if err := db.SaveNote(s.db, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Get returns a single note with its version history.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	return s.load(id)
}

// List returns every note, most recently updated first.
func (s *Service) List(ctx context.Context) ([]*models.Note, error) {
	return db.ListNotes(s.db)
}

// Search returns ranked full-text matches over title, content, and summary.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*db.SearchResult, error) {
	return db.SearchNotes(s.db, query, limit)
}

// Resolve accepts a full note id or an id prefix of 6+ characters.
func (s *Service) Resolve(ctx context.Context, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	note, err := db.GetNoteByPrefix(s.db, ref)
	if err != nil {
		if errors.Is(err, db.ErrNoteNotFound) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, err
	}
	return note.ID, nil
}

// Update applies the given fields. When the supplied content differs from
// the stored content, a snapshot of the stored content is appended and the
// version incremented before the change lands. UpdatedAt always refreshes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.Note, error) {
	unlock := s.locks.lock(id)
	defer unlock()
	return s.updateLocked(id, p)
}

func (s *Service) updateLocked(id uuid.UUID, p UpdateParams) (*models.Note, error) {
	note, err := s.load(id)
	if err != nil {
		return nil, err
	}

	// A locked note's content is the empty string by invariant; accepting
	// plaintext here would leave it readable next to the envelope.
	if p.Content != nil && note.Encrypted {
		return nil, ErrLocked
	}

	if p.Content != nil {
		note.SetContent(*p.Content)
	}
	if p.Title != nil {
		note.Title = *p.Title
	}
	if p.Pinned != nil {
		note.Pinned = *p.Pinned
	}
	if p.Tags != nil {
		note.Tags = p.Tags
	}
	if p.AISummary != nil {
		note.AISummary = *p.AISummary
	}
	note.Touch()

	if err := db.SaveNote(s.db, note); err != nil {
		return nil, err
	}
	return note, nil
}

// TogglePin flips the pinned flag.
func (s *Service) TogglePin(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	note, err := s.load(id)
	if err != nil {
		return nil, err
	}
	pinned := !note.Pinned
	return s.updateLocked(id, UpdateParams{Pinned: &pinned})
}

// Encrypt seals the note content under the password and clears the
// plaintext. The content change flows through the normal version rule, so
// earlier plaintext snapshots remain in the history.
func (s *Service) Encrypt(ctx context.Context, id uuid.UUID, password string) (*models.Note, error) {
	if strings.TrimSpace(password) == "" {
		return nil, ErrEmptyPassword
	}

	unlock := s.locks.lock(id)
	defer unlock()

	note, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if note.Encrypted {
		return nil, ErrAlreadyEncrypted
	}

	envelope, err := crypto.Encrypt(note.Content, password)
	if err != nil {
		return nil, err
	}

	note.SetContent("")
	note.Encrypted = true
	note.EncryptedPayload = envelope
	note.Touch()

	if err := db.SaveNote(s.db, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Decrypt is a one-shot unlock: on success the note transitions back to
// plaintext and the envelope is discarded. A wrong password leaves the note
// untouched and is indistinguishable from corrupted data.
func (s *Service) Decrypt(ctx context.Context, id uuid.UUID, password string) (string, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	note, err := s.load(id)
	if err != nil {
		return "", err
	}
	if !note.Encrypted {
		return "", ErrNotEncrypted
	}

	plaintext, err := crypto.Decrypt(note.EncryptedPayload, password)
	if err != nil {
		return "", err
	}

	note.SetContent(plaintext)
	note.Encrypted = false
	note.EncryptedPayload = ""
	note.Touch()

	if err := db.SaveNote(s.db, note); err != nil {
		return "", err
	}
	return plaintext, nil
}

// Delete removes a note. Deleting an unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.lock(id)
	defer unlock()
	return db.DeleteNote(s.db, id)
}

func (s *Service) load(id uuid.UUID) (*models.Note, error) {
	note, err := db.GetNote(s.db, id)
	if errors.Is(err, db.ErrNoteNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}
