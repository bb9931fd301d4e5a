// Package storage defines the vault file-system abstraction.
//
// The dashboard never writes to the vault, so the provider surface is
// deliberately read-only: listing, reading, and stat-ing notes.
package storage

import "github.com/starford/dagaz/internal/models"

// Provider is the interface for read-only vault file operations.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to vault root).
	List(dir string) ([]models.NoteMetadata, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Stat returns metadata for a single file, or an error if it does not exist.
	Stat(path string) (models.NoteMetadata, error)
}
