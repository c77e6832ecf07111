package storage

import (
	"context"

	"storefront-backend/internal/models"
)

// ReadOnly serves reads from s and rejects every mutation with ErrReadOnly.
func ReadOnly(s Store) Store {
	return readOnlyStore{s}
}

type readOnlyStore struct {
	Store
}

func (r readOnlyStore) Branches() Collection[models.Branch] {
	return readOnlyCollection[models.Branch]{r.Store.Branches()}
}

func (r readOnlyStore) Slides() Collection[models.Slide] {
	return readOnlyCollection[models.Slide]{r.Store.Slides()}
}

func (r readOnlyStore) Reviews() ReviewCollection {
	rv := r.Store.Reviews()
	return readOnlyReviews{readOnlyCollection[models.Review]{rv}, rv}
}

func (r readOnlyStore) Contact() ContactStore {
	return readOnlyContact{r.Store.Contact()}
}

type readOnlyCollection[T any] struct {
	Collection[T]
}

func (readOnlyCollection[T]) Create(context.Context, *T) error { return ErrReadOnly }
func (readOnlyCollection[T]) Insert(context.Context, *T) error { return ErrReadOnly }

func (readOnlyCollection[T]) Update(context.Context, int, func(*T)) (*T, error) {
	return nil, ErrReadOnly
}

func (readOnlyCollection[T]) Delete(context.Context, int) (*T, error) {
	return nil, ErrReadOnly
}

type readOnlyReviews struct {
	readOnlyCollection[models.Review]
	src ReviewCollection
}

func (r readOnlyReviews) ListByBranch(ctx context.Context, branchID int) ([]models.Review, error) {
	return r.src.ListByBranch(ctx, branchID)
}

func (r readOnlyReviews) ListActive(ctx context.Context) ([]models.Review, error) {
	return r.src.ListActive(ctx)
}

type readOnlyContact struct {
	ContactStore
}

func (readOnlyContact) Update(context.Context, func(*models.Contact)) (*models.Contact, error) {
	return nil, ErrReadOnly
}

// ReadOnlyImages serves stored images and rejects new uploads.
func ReadOnlyImages(images ImageStore) ImageStore {
	return readOnlyImages{images}
}

type readOnlyImages struct {
	ImageStore
}

func (readOnlyImages) Save(context.Context, Upload) (string, error) { return "", ErrReadOnly }
