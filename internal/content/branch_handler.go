package content

import (
	"github.com/gofiber/fiber/v2"

	"storefront-backend/internal/form"
	"storefront-backend/internal/models"
	"storefront-backend/internal/storage"
)

const branchNotFound = "Branch not found"

// GET /api/branches
func ListBranchesHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branches, err := st.Branches().List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(branches)
	}
}

// GET /api/branches/:id
func GetBranchHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		branch, err := st.Branches().Get(c.UserContext(), id)
		if err != nil {
			return storageError(err, branchNotFound)
		}
		return c.JSON(branch)
	}
}

// POST /api/branches (JSON or multipart with an "image" file)
func CreateBranchHandler(st storage.Store, images storage.ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := decodeBody(c)
		if err != nil {
			return err
		}

		name, ok := p.String("name")
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Branch name is required")
		}

		branch := models.Branch{
			Name:     name,
			Image:    DefaultBranchImage,
			Features: []string{},
			Lat:      DefaultLat,
			Lng:      DefaultLng,
		}
		applyBranchFields(&branch, p)
		if url, ok := imageFor(c, images, p, "branch"); ok {
			branch.Image = url
		}

		if err := st.Branches().Create(c.UserContext(), &branch); err != nil {
			return storageError(err, branchNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(branch)
	}
}

// PUT /api/branches/:id
// Fields left out of the body keep their stored value.
func UpdateBranchHandler(st storage.Store, images storage.ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		p, err := decodeBody(c)
		if err != nil {
			return err
		}
		branch, err := st.Branches().Update(c.UserContext(), id, func(b *models.Branch) {
			if name, ok := p.String("name"); ok {
				b.Name = name
			}
			applyBranchFields(b, p)
			if v, ok := p.String("image"); ok {
				b.Image = v
			}
		})
		if err != nil {
			return storageError(err, branchNotFound)
		}

		branch, err = attachImage(c, images, p, "branch", st.Branches(), id, branch,
			func(b *models.Branch, url string) { b.Image = url })
		if err != nil {
			return storageError(err, branchNotFound)
		}
		return c.JSON(branch)
	}
}

// DELETE /api/branches/:id
// Reviews pointing at the branch are left alone.
func DeleteBranchHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		branch, err := st.Branches().Delete(c.UserContext(), id)
		if err != nil {
			return storageError(err, branchNotFound)
		}
		return c.JSON(branch)
	}
}

func applyBranchFields(b *models.Branch, p *form.Payload) {
	if v, ok := p.String("address"); ok {
		b.Address = v
	}
	if v, ok := p.String("phone"); ok {
		b.Phone = v
	}
	if v, ok := p.String("hours"); ok {
		b.Hours = v
	}
	if v, ok := p.String("description"); ok {
		b.Description = v
	}
	if v, ok := p.List("features"); ok {
		b.Features = v
	}
	if v, ok := p.Float("lat"); ok {
		b.Lat = v
	}
	if v, ok := p.Float("lng"); ok {
		b.Lng = v
	}
}
