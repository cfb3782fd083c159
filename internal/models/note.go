// ABOUTME: Note and Version models for the note store.
// ABOUTME: Provides constructors and version snapshot helpers.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Version is an immutable snapshot of a note's content taken before a
// content mutation. CreatedAt carries the note's UpdatedAt from before the
// mutation, Version the note's version number before the increment.
type Version struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int       `json:"version"`
}

type Note struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Pinned           bool      `json:"isPinned"`
	Encrypted        bool      `json:"isEncrypted"`
	EncryptedPayload string    `json:"encryptedPayload,omitempty"`
	Tags             []string  `json:"tags"`
	AISummary        string    `json:"aiSummary,omitempty"`
	Version          int       `json:"version"`
	Versions         []Version `json:"versions"`
}

func NewNote(title, content string) *Note {
	now := time.Now()
	return &Note{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []string{},
		Version:   1,
		Versions:  []Version{},
	}
}

// Snapshot returns a Version capturing the note's current content.
func (n *Note) Snapshot() Version {
	return Version{
		ID:        uuid.New(),
		Content:   n.Content,
		CreatedAt: n.UpdatedAt,
		Version:   n.Version,
	}
}

// SetContent applies new content. When the value actually changes it first
// appends a snapshot of the current content and bumps the version; it
// reports whether a snapshot was taken.
func (n *Note) SetContent(content string) bool {
	if content == n.Content {
		return false
	}
	n.Versions = append(n.Versions, n.Snapshot())
	n.Version++
	n.Content = content
	return true
}

func (n *Note) Touch() {
	n.UpdatedAt = time.Now()
}

// HasTag reports whether the note carries the given tag.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
