package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-backend/internal/storage"
)

type imageRow struct {
	ID          string `gorm:"primaryKey;size:36"`
	Filename    string `gorm:"size:255"`
	ContentType string `gorm:"size:100"`
	Size        int64
	Data        []byte
	CreatedAt   time.Time
}

func (imageRow) TableName() string { return "images" }

// Images keeps uploaded bytes in the images table; they are served back
// through urlPrefix + "/" + id.
type Images struct {
	db        *gorm.DB
	urlPrefix string
}

func NewImages(db *gorm.DB, urlPrefix string) *Images {
	return &Images{db: db, urlPrefix: urlPrefix}
}

func (i *Images) Save(ctx context.Context, up storage.Upload) (string, error) {
	data, err := io.ReadAll(up.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	row := imageRow{
		ID:          uuid.NewString(),
		Filename:    storage.ImageName(up.Prefix, up.Filename),
		ContentType: storage.ContentTypeFor(up.Filename, up.ContentType),
		Size:        int64(len(data)),
		Data:        data,
	}
	if err := i.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return i.urlPrefix + "/" + row.ID, nil
}

func (i *Images) Open(ctx context.Context, id string) (*storage.Blob, error) {
	if uuid.Validate(id) != nil {
		return nil, storage.ErrNotFound
	}

	var row imageRow
	err := i.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	return &storage.Blob{
		ContentType: row.ContentType,
		Size:        row.Size,
		Body:        io.NopCloser(bytes.NewReader(row.Data)),
	}, nil
}
