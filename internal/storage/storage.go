// Package storage defines the record and image persistence contracts shared by
// every backend, plus the JSON-file, in-memory and local-disk implementations.
package storage

import (
	"context"
	"errors"
	"io"

	"storefront-backend/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrExists   = errors.New("record already exists")
	// ErrReadOnly is returned by every mutation of a read-only deployment.
	ErrReadOnly = errors.New("storage is read-only")
)

// Collection persists one id-keyed entity kind.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int) (*T, error)
	// Create assigns the next free id to rec and stores it.
	Create(ctx context.Context, rec *T) error
	// Update loads the record, lets apply mutate it and stores the result.
	// The id cannot be changed by apply.
	Update(ctx context.Context, id int, apply func(*T)) (*T, error)
	Delete(ctx context.Context, id int) (*T, error)
	// Insert stores rec under its own id, failing with ErrExists when taken.
	Insert(ctx context.Context, rec *T) error
	Count(ctx context.Context) (int, error)
}

type ReviewCollection interface {
	Collection[models.Review]
	// ListByBranch returns the active reviews of one branch, newest first.
	ListByBranch(ctx context.Context, branchID int) ([]models.Review, error)
	ListActive(ctx context.Context) ([]models.Review, error)
}

// ContactStore holds the singleton contact record. Get seeds the default
// contact when none is stored yet.
type ContactStore interface {
	Get(ctx context.Context) (*models.Contact, error)
	Update(ctx context.Context, apply func(*models.Contact)) (*models.Contact, error)
}

type Store interface {
	Branches() Collection[models.Branch]
	Slides() Collection[models.Slide]
	Reviews() ReviewCollection
	Contact() ContactStore
	Close(ctx context.Context) error
}

type Upload struct {
	// Prefix is prepended to generated names, e.g. "branch".
	Prefix      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Blob struct {
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// ImageStore keeps uploaded image bytes and hands out the URL they are served from.
type ImageStore interface {
	Save(ctx context.Context, up Upload) (string, error)
	Open(ctx context.Context, id string) (*Blob, error)
}
