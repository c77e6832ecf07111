package mongodb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"storefront-backend/internal/models"
	"storefront-backend/internal/storage"
)

// setupTestStore needs a reachable server in TEST_MONGODB_URI; every test
// gets its own database which is dropped afterwards.
func setupTestStore(t *testing.T) (*Store, *GridFSImages) {
	t.Helper()
	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, uri)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	db := client.Database(fmt.Sprintf("storefront_test_%d", time.Now().UnixNano()))

	s, err := NewStore(ctx, client, db)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	imgs, err := NewGridFSImages(db, "images", "/api/images")
	if err != nil {
		t.Fatalf("NewGridFSImages failed: %v", err)
	}
	t.Cleanup(func() {
		db.Drop(ctx)
		s.Close(ctx)
	})
	return s, imgs
}

func TestSeedAndCreate(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)

	if err := storage.Seed(ctx, s); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if err := storage.Seed(ctx, s); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	if n, _ := s.Slides().Count(ctx); n != 3 {
		t.Fatalf("expected 3 slides after seeding twice, got %d", n)
	}

	slide := models.Slide{Title: "new", Active: true}
	if err := s.Slides().Create(ctx, &slide); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if slide.ID != 4 {
		t.Fatalf("expected id 4, got %d", slide.ID)
	}

	if err := s.Slides().Insert(ctx, &models.Slide{ID: 4}); !errors.Is(err, storage.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	if _, err := s.Slides().Delete(ctx, 4); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Slides().Delete(ctx, 4); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestContactMerge(t *testing.T) {
	ctx := context.Background()
	s, _ := setupTestStore(t)

	updated, err := s.Contact().Update(ctx, func(c *models.Contact) { c.Email.Address = "a@b.c" })
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Email.Address != "a@b.c" || updated.Phone != storage.DefaultContact().Phone {
		t.Fatalf("unexpected contact: %+v", updated)
	}
}

func TestGridFSRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, imgs := setupTestStore(t)

	url, err := imgs.Save(ctx, storage.Upload{Prefix: "branch", Filename: "x.png", Body: strings.NewReader("png")})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	blob, err := imgs.Open(ctx, strings.TrimPrefix(url, "/api/images/"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer blob.Body.Close()

	body, _ := io.ReadAll(blob.Body)
	if string(body) != "png" || blob.ContentType != "image/png" {
		t.Fatalf("unexpected blob %q %s", body, blob.ContentType)
	}

	if _, err := imgs.Open(ctx, "000000000000000000000000"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
