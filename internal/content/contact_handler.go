package content

import (
	"github.com/gofiber/fiber/v2"

	"storefront-backend/internal/models"
	"storefront-backend/internal/storage"
)

// GET /api/contact
func GetContactHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contact, err := st.Contact().Get(c.UserContext())
		if err != nil {
			return storageError(err, "Contact not found")
		}
		return c.JSON(contact)
	}
}

// PUT /api/contact
// Flat keys (phone_number, phone_hours, email_address, email_hours, kakao_id,
// kakao_hours); each missing key keeps the stored value.
func UpdateContactHandler(st storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := decodeBody(c)
		if err != nil {
			return err
		}

		contact, err := st.Contact().Update(c.UserContext(), func(ct *models.Contact) {
			set := func(dst *string, key string) {
				if v, ok := p.String(key); ok {
					*dst = v
				}
			}
			set(&ct.Phone.Number, "phone_number")
			set(&ct.Phone.Hours, "phone_hours")
			set(&ct.Email.Address, "email_address")
			set(&ct.Email.Hours, "email_hours")
			set(&ct.Kakao.ID, "kakao_id")
			set(&ct.Kakao.Hours, "kakao_hours")
		})
		if err != nil {
			return storageError(err, "Contact not found")
		}
		return c.JSON(contact)
	}
}
