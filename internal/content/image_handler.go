package content

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront-backend/internal/storage"
)

const imageCacheControl = "public, max-age=31536000"

// GET /api/images/:id
func GetImageHandler(images storage.ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		blob, err := images.Open(c.UserContext(), c.Params("id"))
		if errors.Is(err, storage.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Image not found")
		}
		if err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, blob.ContentType)
		c.Set(fiber.HeaderCacheControl, imageCacheControl)
		// fasthttp closes the body once it has been sent
		if blob.Size > 0 {
			return c.SendStream(blob.Body, int(blob.Size))
		}
		return c.SendStream(blob.Body)
	}
}

// POST /api/images
// Stores a single uploaded file and returns the URL it is served from.
func UploadImageHandler(images storage.ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := decodeBody(c)
		if err != nil {
			return err
		}
		if p.File == nil {
			return fiber.NewError(fiber.StatusBadRequest, "An image file is required")
		}

		f, err := p.File.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		prefix, _ := p.String("kind")
		url, err := images.Save(c.UserContext(), storage.Upload{
			Prefix:      prefix,
			Filename:    p.File.Filename,
			ContentType: p.File.Header.Get(fiber.HeaderContentType),
			Size:        p.File.Size,
			Body:        f,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
	}
}
