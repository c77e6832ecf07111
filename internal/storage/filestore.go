package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"storefront-backend/internal/models"
)

const (
	BranchesFile = "branches.json"
	SlidesFile   = "slides.json"
	ReviewsFile  = "reviews.json"
	ContactFile  = "contact.json"
)

// FileStore keeps one JSON document per entity kind under a data directory:
// {"branches": [...]}, {"slides": [...]}, {"reviews": [...]} and the bare
// contact object. Every mutation rewrites the whole file.
type FileStore struct {
	dir      string
	branches *Table[models.Branch, *models.Branch]
	slides   *Table[models.Slide, *models.Slide]
	reviews  reviewTable
	contact  *contactCell
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	branches, err := ReadCollectionFile[models.Branch](filepath.Join(dir, BranchesFile), "branches")
	if err != nil {
		return nil, err
	}
	slides, err := ReadCollectionFile[models.Slide](filepath.Join(dir, SlidesFile), "slides")
	if err != nil {
		return nil, err
	}
	reviews, err := ReadCollectionFile[models.Review](filepath.Join(dir, ReviewsFile), "reviews")
	if err != nil {
		return nil, err
	}
	contact, err := ReadContactFile(filepath.Join(dir, ContactFile))
	if err != nil {
		return nil, err
	}

	s := &FileStore{dir: dir}
	s.branches = NewTable[models.Branch](branches, BranchOrder, collectionWriter[models.Branch](filepath.Join(dir, BranchesFile), "branches"))
	s.slides = NewTable[models.Slide](slides, SlideOrder, collectionWriter[models.Slide](filepath.Join(dir, SlidesFile), "slides"))
	s.reviews = reviewTable{NewTable[models.Review](reviews, ReviewOrder, collectionWriter[models.Review](filepath.Join(dir, ReviewsFile), "reviews"))}
	s.contact = &contactCell{
		value: contact,
		persist: func(c *models.Contact) error {
			return writeJSON(filepath.Join(dir, ContactFile), c)
		},
	}
	return s, nil
}

func (s *FileStore) Branches() Collection[models.Branch] { return s.branches }
func (s *FileStore) Slides() Collection[models.Slide]    { return s.slides }
func (s *FileStore) Reviews() ReviewCollection           { return s.reviews }
func (s *FileStore) Contact() ContactStore               { return s.contact }
func (s *FileStore) Close(context.Context) error         { return nil }

// ReadCollectionFile decodes {"<key>": [...]} from path. A missing file is an
// empty collection.
func ReadCollectionFile[T any](path, key string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc map[string][]T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return doc[key], nil
}

// ReadContactFile returns nil when the file does not exist yet.
func ReadContactFile(path string) (*models.Contact, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var c models.Contact
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &c, nil
}

func collectionWriter[T any](path, key string) func([]T) error {
	return func(rows []T) error {
		if rows == nil {
			rows = []T{}
		}
		return writeJSON(path, map[string][]T{key: rows})
	}
}

// writeJSON replaces path atomically: the document goes to a temp file in the
// same directory which is then renamed over the target.
func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
