package storage

import (
	"context"

	"storefront-backend/internal/models"
)

// MemoryStore keeps every collection in process memory. Nothing survives a restart.
type MemoryStore struct {
	branches *Table[models.Branch, *models.Branch]
	slides   *Table[models.Slide, *models.Slide]
	reviews  reviewTable
	contact  *contactCell
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		branches: NewTable[models.Branch](nil, BranchOrder, nil),
		slides:   NewTable[models.Slide](nil, SlideOrder, nil),
		reviews:  reviewTable{NewTable[models.Review](nil, ReviewOrder, nil)},
		contact:  &contactCell{},
	}
}

func (s *MemoryStore) Branches() Collection[models.Branch] { return s.branches }
func (s *MemoryStore) Slides() Collection[models.Slide]    { return s.slides }
func (s *MemoryStore) Reviews() ReviewCollection           { return s.reviews }
func (s *MemoryStore) Contact() ContactStore               { return s.contact }
func (s *MemoryStore) Close(context.Context) error         { return nil }
