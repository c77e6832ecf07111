package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"storefront-backend/internal/models"
)

func TestFileStoreSeedAndReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := Seed(ctx, s); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	b := models.Branch{Name: "부산점", Features: []string{"a", "b"}}
	if err := s.Branches().Create(ctx, &b); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if b.ID != 3 {
		t.Fatalf("expected id 3, got %d", b.ID)
	}

	raw, err := os.ReadFile(filepath.Join(dir, BranchesFile))
	if err != nil {
		t.Fatalf("branches file missing: %v", err)
	}
	var doc struct {
		Branches []models.Branch `json:"branches"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("branches file is not valid JSON: %v", err)
	}
	if len(doc.Branches) != 3 {
		t.Fatalf("expected 3 branches on disk, got %d", len(doc.Branches))
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got, err := reopened.Branches().Get(ctx, 3)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got.Name != "부산점" || len(got.Features) != 2 {
		t.Fatalf("unexpected branch after reopen: %+v", got)
	}
}

func TestFileStoreContactIsBareObject(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if _, err := s.Contact().Update(ctx, func(c *models.Contact) { c.Phone.Number = "010-0000-0000" }); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	c, err := ReadContactFile(filepath.Join(dir, ContactFile))
	if err != nil {
		t.Fatalf("ReadContactFile failed: %v", err)
	}
	if c.Phone.Number != "010-0000-0000" {
		t.Fatalf("phone not persisted: %+v", c)
	}
	if c.Email != DefaultContact().Email || c.Kakao != DefaultContact().Kakao {
		t.Fatalf("untouched sub-records changed: %+v", c)
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SlidesFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(dir); err == nil {
		t.Fatal("expected error for corrupt slides file")
	}
}

func TestFileStoreConcurrentCreatesGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	const n = 50
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := models.Branch{Name: fmt.Sprintf("branch-%d", i)}
			if err := st.Branches().Create(ctx, &b); err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			ids <- b.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d handed out twice", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d ids, got %d", n, len(seen))
	}

	reloaded, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if count, _ := reloaded.Branches().Count(ctx); count != n {
		t.Fatalf("expected %d branches on disk, got %d", n, count)
	}
}
