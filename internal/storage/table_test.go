package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-backend/internal/models"
)

func TestNextID(t *testing.T) {
	cases := []struct {
		ids  []int
		want int
	}{
		{nil, 1},
		{[]int{1}, 2},
		{[]int{3, 1, 2}, 4},
		{[]int{7, 2}, 8},
	}
	for _, tc := range cases {
		if got := NextID(tc.ids); got != tc.want {
			t.Errorf("NextID(%v) = %d, want %d", tc.ids, got, tc.want)
		}
	}
}

func TestTableCreateAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[models.Branch]([]models.Branch{{ID: 4, Name: "a"}, {ID: 9, Name: "b"}}, BranchOrder, nil)

	first := models.Branch{Name: "c"}
	if err := tbl.Create(ctx, &first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.ID != 10 {
		t.Fatalf("expected id 10, got %d", first.ID)
	}

	second := models.Branch{Name: "d"}
	if err := tbl.Create(ctx, &second); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if second.ID != 11 {
		t.Fatalf("expected id 11, got %d", second.ID)
	}

	got, err := tbl.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []int{4, 9, 10, 11}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("row %d: expected id %d, got %d", i, id, got[i].ID)
		}
	}
}

func TestTableUpdateKeepsID(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[models.Slide]([]models.Slide{{ID: 1, Title: "old", Active: true}}, SlideOrder, nil)

	updated, err := tbl.Update(ctx, 1, func(s *models.Slide) {
		s.ID = 99
		s.Title = "new"
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != 1 || updated.Title != "new" || !updated.Active {
		t.Fatalf("unexpected record after update: %+v", updated)
	}

	if _, err := tbl.Update(ctx, 2, func(*models.Slide) {}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTableDeleteMissingLeavesRows(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[models.Branch](DefaultBranches(), BranchOrder, nil)

	if _, err := tbl.Delete(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n, _ := tbl.Count(ctx); n != 2 {
		t.Fatalf("expected 2 rows, got %d", n)
	}

	deleted, err := tbl.Delete(ctx, 1)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted.Name != "강남점" {
		t.Fatalf("unexpected deleted record: %+v", deleted)
	}
	if n, _ := tbl.Count(ctx); n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
}

func TestTableRollsBackOnPersistError(t *testing.T) {
	ctx := context.Background()
	fail := errors.New("disk full")
	tbl := NewTable[models.Branch](DefaultBranches(), BranchOrder, func([]models.Branch) error { return fail })

	if err := tbl.Create(ctx, &models.Branch{Name: "x"}); !errors.Is(err, fail) {
		t.Fatalf("expected persist error, got %v", err)
	}
	if _, err := tbl.Delete(ctx, 1); !errors.Is(err, fail) {
		t.Fatalf("expected persist error, got %v", err)
	}
	if n, _ := tbl.Count(ctx); n != 2 {
		t.Fatalf("expected rows untouched, got %d", n)
	}
}

func TestReviewQueries(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.Review{
		{ID: 1, BranchID: 1, IsActive: true, CreatedAt: base},
		{ID: 2, BranchID: 1, IsActive: false, CreatedAt: base.Add(time.Hour)},
		{ID: 3, BranchID: 2, IsActive: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, BranchID: 1, IsActive: true, CreatedAt: base.Add(3 * time.Hour)},
	}
	rv := reviewTable{NewTable[models.Review](rows, ReviewOrder, nil)}

	all, _ := rv.List(ctx)
	if all[0].ID != 4 || all[3].ID != 1 {
		t.Fatalf("expected newest first, got %d..%d", all[0].ID, all[3].ID)
	}

	byBranch, err := rv.ListByBranch(ctx, 1)
	if err != nil {
		t.Fatalf("ListByBranch failed: %v", err)
	}
	if len(byBranch) != 2 || byBranch[0].ID != 4 || byBranch[1].ID != 1 {
		t.Fatalf("unexpected branch reviews: %+v", byBranch)
	}

	active, _ := rv.ListActive(ctx)
	if len(active) != 3 {
		t.Fatalf("expected 3 active reviews, got %d", len(active))
	}
}

func TestCreateReviewStampsTimes(t *testing.T) {
	ctx := context.Background()
	rv := reviewTable{NewTable[models.Review](nil, ReviewOrder, nil)}

	r := models.Review{CustomerName: "kim", Rating: 5}
	if err := rv.Create(ctx, &r); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if r.ID != 1 || r.CreatedAt.IsZero() || r.UpdatedAt.IsZero() {
		t.Fatalf("expected id and timestamps to be set, got %+v", r)
	}

	created := r.CreatedAt
	updated, err := rv.Update(ctx, 1, func(x *models.Review) { x.Comment = "good" })
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed on update")
	}
}
