package content

import (
	"net/http"
	"testing"

	"storefront-backend/internal/models"
)

func TestUpdateContactMergesFields(t *testing.T) {
	env := newTestEnv(t, nil)
	before := decode[models.Contact](t, env.do(t, "GET", "/contact", ""))

	resp := env.do(t, "PUT", "/contact", `{"phone_number":"X"}`)
	expectStatus(t, resp, http.StatusOK)
	after := decode[models.Contact](t, resp)

	if after.Phone.Number != "X" {
		t.Fatalf("phone number not updated: %+v", after)
	}
	if after.Phone.Hours != before.Phone.Hours || after.Email != before.Email || after.Kakao != before.Kakao {
		t.Fatalf("untouched fields changed: before %+v, after %+v", before, after)
	}

	stored := decode[models.Contact](t, env.do(t, "GET", "/contact", ""))
	if stored != after {
		t.Fatalf("stored contact %+v differs from response %+v", stored, after)
	}
}

func TestUpdateContactAcceptsForm(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.multipart(t, "PUT", "/contact", map[string]string{
		"email_address": "help@example.com",
		"kakao_hours":   "24h",
	}, nil)
	expectStatus(t, resp, http.StatusOK)
	contact := decode[models.Contact](t, resp)
	if contact.Email.Address != "help@example.com" || contact.Kakao.Hours != "24h" {
		t.Fatalf("form fields not applied: %+v", contact)
	}
}
