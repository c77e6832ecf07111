package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-backend/internal/storage"
)

type fileMetadata struct {
	ContentType string `bson:"contentType"`
}

// GridFSImages streams uploads into a GridFS bucket. The returned URL carries
// the object id, e.g. /api/images/6650c0...
type GridFSImages struct {
	bucket    *gridfs.Bucket
	urlPrefix string
}

func NewGridFSImages(db *mongo.Database, bucketName, urlPrefix string) (*GridFSImages, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs bucket %s: %w", bucketName, err)
	}
	return &GridFSImages{bucket: bucket, urlPrefix: urlPrefix}, nil
}

func (g *GridFSImages) Save(_ context.Context, up storage.Upload) (string, error) {
	name := storage.ImageName(up.Prefix, up.Filename)
	opts := options.GridFSUpload().SetMetadata(fileMetadata{
		ContentType: storage.ContentTypeFor(up.Filename, up.ContentType),
	})

	id, err := g.bucket.UploadFromStream(name, up.Body, opts)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to gridfs: %w", name, err)
	}
	return g.urlPrefix + "/" + id.Hex(), nil
}

func (g *GridFSImages) Open(_ context.Context, id string) (*storage.Blob, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, storage.ErrNotFound
	}

	stream, err := g.bucket.OpenDownloadStream(oid)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs file %s: %w", id, err)
	}

	file := stream.GetFile()
	meta := fileMetadata{ContentType: storage.DefaultContentType}
	if len(file.Metadata) > 0 {
		if err := bson.Unmarshal(file.Metadata, &meta); err != nil {
			log.Warn().Err(err).Str("image_id", id).Msg("unreadable gridfs metadata")
		}
	}
	if meta.ContentType == "" {
		meta.ContentType = storage.ContentTypeFor(file.Name, "")
	}

	return &storage.Blob{
		ContentType: meta.ContentType,
		Size:        file.Length,
		Body:        stream,
	}, nil
}
