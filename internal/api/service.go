package api

import (
	"fmt"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/parser"
	"github.com/starford/dagaz/internal/storage"
)

// Service coordinates storage and index reads for the API layer. The
// dashboard never mutates the vault, so every operation here is read-only.
type Service struct {
	store storage.Provider
	db    *index.DB
}

// NewService creates a new API service.
func NewService(store storage.Provider, db *index.DB) *Service {
	return &Service{store: store, db: db}
}

// GetNote reads a note from storage, parses it, and enriches with backlinks.
func (s *Service) GetNote(path string) (*NoteDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		return nil, fmt.Errorf("api: read %s: %w", path, apperr.ErrNotFound)
	}
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	meta, err := s.store.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("api: stat %s: %w", path, apperr.ErrNotFound)
	}
	bl, _ := s.db.Backlinks(path)
	if bl == nil {
		bl = []string{}
	}
	tags := res.Tags
	if tags == nil {
		tags = []string{}
	}
	return &NoteDetail{
		Path:       path,
		Title:      res.Title,
		Content:    string(data),
		Checksum:   checksum.Sum(data),
		Tags:       tags,
		Links:      res.Links,
		Backlinks:  bl,
		ModifiedAt: meta.ModifiedAt,
	}, nil
}
