// Package content holds the public site's entity handlers: branches, slides,
// contact, reviews and images. Reads are public; the router puts the admin
// gate in front of every mutating route.
package content

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"storefront-backend/internal/form"
	"storefront-backend/internal/storage"
)

const (
	DefaultBranchImage = "/korea-map.svg"
	DefaultSlideImage  = "/korea-map.svg"

	// Seoul city hall, used when a branch is created without coordinates.
	DefaultLat = 37.5665
	DefaultLng = 126.9780
)

func parseID(c *fiber.Ctx, param string) (int, error) {
	id, err := strconv.Atoi(c.Params(param))
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

func decodeBody(c *fiber.Ctx) (*form.Payload, error) {
	p, err := form.Decode(c)
	if errors.Is(err, form.ErrMalformed) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return p, err
}

// storageError turns the storage taxonomy into HTTP errors; anything else is
// passed on for the central error handler to log and answer with 500.
func storageError(err error, notFound string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, notFound)
	case errors.Is(err, storage.ErrReadOnly):
		return fiber.NewError(fiber.StatusNotImplemented, "This deployment is read-only")
	default:
		return err
	}
}

// uploadImage stores the attached file, if any. Upload failures are logged and
// reported as ok=false so the caller keeps its placeholder or previous image.
func uploadImage(c *fiber.Ctx, images storage.ImageStore, p *form.Payload, prefix string) (string, bool) {
	if p.File == nil {
		return "", false
	}

	f, err := p.File.Open()
	if err != nil {
		log.Warn().Err(err).Str("kind", prefix).Msg("failed to open uploaded image")
		return "", false
	}
	defer f.Close()

	url, err := images.Save(c.UserContext(), storage.Upload{
		Prefix:      prefix,
		Filename:    p.File.Filename,
		ContentType: p.File.Header.Get(fiber.HeaderContentType),
		Size:        p.File.Size,
		Body:        f,
	})
	if err != nil {
		log.Error().Err(err).Str("kind", prefix).Msg("image upload failed, keeping placeholder")
		return "", false
	}
	return url, true
}

// attachImage runs after a successful update: it uploads the attached file, if
// any, and points the record at it. An upload failure keeps rec as it is.
func attachImage[T any](c *fiber.Ctx, images storage.ImageStore, p *form.Payload, prefix string,
	coll storage.Collection[T], id int, rec *T, set func(*T, string)) (*T, error) {
	url, ok := uploadImage(c, images, p, prefix)
	if !ok {
		return rec, nil
	}
	return coll.Update(c.UserContext(), id, func(r *T) { set(r, url) })
}

// imageFor picks the uploaded image, then an image URL sent in the body.
func imageFor(c *fiber.Ctx, images storage.ImageStore, p *form.Payload, prefix string) (string, bool) {
	if url, ok := uploadImage(c, images, p, prefix); ok {
		return url, true
	}
	return p.String("image")
}
