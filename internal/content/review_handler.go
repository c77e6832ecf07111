package content

import (
	"math/rand"
	"slices"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront-backend/internal/form"
	"storefront-backend/internal/models"
	"storefront-backend/internal/storage"
)

const (
	reviewNotFound     = "Review not found"
	defaultRandomCount = 3
)

// GET /api/reviews (newest first, inactive included)
func ListReviewsHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reviews, err := st.Reviews().List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(reviews)
	}
}

// GET /api/reviews/:id
func GetReviewHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		review, err := st.Reviews().Get(c.UserContext(), id)
		if err != nil {
			return storageError(err, reviewNotFound)
		}
		return c.JSON(review)
	}
}

// GET /api/reviews/branch/:branchId (active reviews only)
func ListBranchReviewsHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := parseID(c, "branchId")
		if err != nil {
			return err
		}
		reviews, err := st.Reviews().ListByBranch(c.UserContext(), branchID)
		if err != nil {
			return err
		}
		return c.JSON(reviews)
	}
}

// GET /api/reviews/random/:count
// Samples without replacement from the active reviews; a missing or
// non-positive count falls back to 3.
func RandomReviewsHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := strconv.Atoi(c.Params("count"))
		if err != nil || count <= 0 {
			count = defaultRandomCount
		}

		active, err := st.Reviews().ListActive(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(sampleReviews(active, count))
	}
}

// POST /api/reviews
func CreateReviewHandler(st storage.Store, images storage.ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := decodeBody(c)
		if err != nil {
			return err
		}

		branchID, okBranch := p.Int("branchId")
		customer, okCustomer := p.String("customerName")
		comment, okComment := p.String("comment")
		if !okBranch || !okCustomer || !okComment || !p.Has("rating") {
			return fiber.NewError(fiber.StatusBadRequest, "branchId, customerName, rating and comment are required")
		}
		rating, err := parseRating(p)
		if err != nil {
			return err
		}

		review := models.Review{
			BranchID:     branchID,
			CustomerName: customer,
			Rating:       rating,
			Comment:      comment,
			IsActive:     true,
		}
		if v, ok := p.String("branchName"); ok {
			review.BranchName = v
		}
		if v, ok := p.Bool("isActive"); ok {
			review.IsActive = v
		}
		if url, ok := imageFor(c, images, p, "review"); ok {
			review.Image = url
		}

		if err := st.Reviews().Create(c.UserContext(), &review); err != nil {
			return storageError(err, reviewNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(review)
	}
}

// PUT /api/reviews/:id
func UpdateReviewHandler(st storage.Store, images storage.ImageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		p, err := decodeBody(c)
		if err != nil {
			return err
		}

		hasRating := p.Has("rating")
		rating := 0
		if hasRating {
			if rating, err = parseRating(p); err != nil {
				return err
			}
		}
		if p.Has("branchId") {
			if _, ok := p.Int("branchId"); !ok {
				return fiber.NewError(fiber.StatusBadRequest, "branchId must be an integer")
			}
		}
		review, err := st.Reviews().Update(c.UserContext(), id, func(r *models.Review) {
			if v, ok := p.Int("branchId"); ok {
				r.BranchID = v
			}
			if v, ok := p.String("branchName"); ok {
				r.BranchName = v
			}
			if v, ok := p.String("customerName"); ok {
				r.CustomerName = v
			}
			if v, ok := p.String("comment"); ok {
				r.Comment = v
			}
			if hasRating {
				r.Rating = rating
			}
			if v, ok := p.Bool("isActive"); ok {
				r.IsActive = v
			}
			if v, ok := p.String("image"); ok {
				r.Image = v
			}
		})
		if err != nil {
			return storageError(err, reviewNotFound)
		}

		review, err = attachImage[models.Review](c, images, p, "review", st.Reviews(), id, review,
			func(r *models.Review, url string) { r.Image = url })
		if err != nil {
			return storageError(err, reviewNotFound)
		}
		return c.JSON(review)
	}
}

// DELETE /api/reviews/:id
func DeleteReviewHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		review, err := st.Reviews().Delete(c.UserContext(), id)
		if err != nil {
			return storageError(err, reviewNotFound)
		}
		return c.JSON(review)
	}
}

func parseRating(p *form.Payload) (int, error) {
	rating, ok := p.Int("rating")
	if !ok || rating < models.MinRating || rating > models.MaxRating {
		return 0, fiber.NewError(fiber.StatusBadRequest, "rating must be an integer between 1 and 5")
	}
	return rating, nil
}

// sampleReviews returns min(n, len(reviews)) distinct reviews in random order.
func sampleReviews(reviews []models.Review, n int) []models.Review {
	out := slices.Clone(reviews)
	if out == nil {
		out = []models.Review{}
	}
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if n < len(out) {
		out = out[:n]
	}
	return out
}
