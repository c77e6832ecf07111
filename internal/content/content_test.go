package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"storefront-backend/internal/storage"
)

type testEnv struct {
	app    *fiber.App
	store  *storage.MemoryStore
	images storage.ImageStore
}

// newTestEnv wires the handlers over a seeded memory store. Admin gating is
// the router's job and is covered there.
func newTestEnv(t *testing.T, images storage.ImageStore) *testEnv {
	t.Helper()
	st := storage.NewMemoryStore()
	if err := storage.Seed(context.Background(), st); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if images == nil {
		disk, err := storage.NewDiskImages(t.TempDir(), "/uploads")
		if err != nil {
			t.Fatal(err)
		}
		images = disk
	}

	app := fiber.New()
	app.Get("/branches", ListBranchesHandler(st))
	app.Get("/branches/:id", GetBranchHandler(st))
	app.Post("/branches", CreateBranchHandler(st, images))
	app.Put("/branches/:id", UpdateBranchHandler(st, images))
	app.Delete("/branches/:id", DeleteBranchHandler(st))

	app.Get("/slides", ListSlidesHandler(st))
	app.Post("/slides", CreateSlideHandler(st, images))
	app.Put("/slides/:id", UpdateSlideHandler(st, images))

	app.Get("/contact", GetContactHandler(st))
	app.Put("/contact", UpdateContactHandler(st))

	app.Get("/reviews", ListReviewsHandler(st))
	app.Get("/reviews/branch/:branchId", ListBranchReviewsHandler(st))
	app.Get("/reviews/random/:count?", RandomReviewsHandler(st))
	app.Get("/reviews/:id", GetReviewHandler(st))
	app.Post("/reviews", CreateReviewHandler(st, images))
	app.Put("/reviews/:id", UpdateReviewHandler(st, images))
	app.Delete("/reviews/:id", DeleteReviewHandler(st))

	app.Get("/images/:id", GetImageHandler(images))
	app.Post("/images", UploadImageHandler(images))

	return &testEnv{app: app, store: st, images: images}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func (e *testEnv) multipart(t *testing.T, method, target string, fields map[string]string, file []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	if file != nil {
		fw, err := w.CreateFormFile("image", "photo.png")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(file)
	}
	w.Close()

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, body)
	}
}

// failingImages rejects every upload.
type failingImages struct{}

func (failingImages) Save(context.Context, storage.Upload) (string, error) {
	return "", errors.New("bucket unavailable")
}

func (failingImages) Open(context.Context, string) (*storage.Blob, error) {
	return nil, storage.ErrNotFound
}

// countingImages records how many uploads reached the store.
type countingImages struct {
	storage.ImageStore
	saved int
}

func (c *countingImages) Save(ctx context.Context, up storage.Upload) (string, error) {
	c.saved++
	return c.ImageStore.Save(ctx, up)
}
