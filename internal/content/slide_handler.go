package content

import (
	"github.com/gofiber/fiber/v2"

	"storefront-backend/internal/models"
	"storefront-backend/internal/storage"
)

const slideNotFound = "Slide not found"

// GET /api/slides
func ListSlidesHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slides, err := st.Slides().List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(slides)
	}
}

// GET /api/slides/:id
func GetSlideHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		slide, err := st.Slides().Get(c.UserContext(), id)
		if err != nil {
			return storageError(err, slideNotFound)
		}
		return c.JSON(slide)
	}
}

// POST /api/slides
func CreateSlideHandler(st storage.Store, images storage.ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := decodeBody(c)
		if err != nil {
			return err
		}

		title, ok := p.String("title")
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Slide title is required")
		}

		slide := models.Slide{
			Title:  title,
			Image:  DefaultSlideImage,
			Active: true,
		}
		if v, ok := p.String("description"); ok {
			slide.Description = v
		}
		if v, ok := p.Bool("active"); ok {
			slide.Active = v
		}
		if url, ok := imageFor(c, images, p, "slide"); ok {
			slide.Image = url
		}

		if err := st.Slides().Create(c.UserContext(), &slide); err != nil {
			return storageError(err, slideNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(slide)
	}
}

// PUT /api/slides/:id
func UpdateSlideHandler(st storage.Store, images storage.ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		p, err := decodeBody(c)
		if err != nil {
			return err
		}
		slide, err := st.Slides().Update(c.UserContext(), id, func(s *models.Slide) {
			if v, ok := p.String("title"); ok {
				s.Title = v
			}
			if v, ok := p.String("description"); ok {
				s.Description = v
			}
			if v, ok := p.Bool("active"); ok {
				s.Active = v
			}
			if v, ok := p.String("image"); ok {
				s.Image = v
			}
		})
		if err != nil {
			return storageError(err, slideNotFound)
		}

		slide, err = attachImage(c, images, p, "slide", st.Slides(), id, slide,
			func(s *models.Slide, url string) { s.Image = url })
		if err != nil {
			return storageError(err, slideNotFound)
		}
		return c.JSON(slide)
	}
}

// DELETE /api/slides/:id
func DeleteSlideHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		slide, err := st.Slides().Delete(c.UserContext(), id)
		if err != nil {
			return storageError(err, slideNotFound)
		}
		return c.JSON(slide)
	}
}
