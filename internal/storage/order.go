package storage

import (
	"cmp"

	"storefront-backend/internal/models"
)

func BranchOrder(a, b *models.Branch) int { return cmp.Compare(a.ID, b.ID) }

func SlideOrder(a, b *models.Slide) int { return cmp.Compare(a.ID, b.ID) }

// ReviewOrder sorts newest first.
func ReviewOrder(a, b *models.Review) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}
