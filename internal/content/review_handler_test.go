package content

import (
	"fmt"
	"net/http"
	"testing"

	"storefront-backend/internal/models"
)

func TestCreateReviewValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, body := range []string{
		`{"customerName":"a","rating":5,"comment":"c"}`,
		`{"branchId":1,"rating":5,"comment":"c"}`,
		`{"branchId":1,"customerName":"a","comment":"c"}`,
		`{"branchId":1,"customerName":"a","rating":6,"comment":"c"}`,
		`{"branchId":1,"customerName":"a","rating":0,"comment":"c"}`,
		`{"branchId":"one","customerName":"a","rating":3,"comment":"c"}`,
	} {
		resp := env.do(t, "POST", "/reviews", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, resp.StatusCode)
		}
	}

	resp := env.do(t, "POST", "/reviews", `{"branchId":2,"branchName":"홍대점","customerName":"이**","rating":4,"comment":"좋아요"}`)
	expectStatus(t, resp, http.StatusCreated)
	review := decode[models.Review](t, resp)
	if review.ID != 4 || !review.IsActive || review.CreatedAt.IsZero() || review.Image != "" {
		t.Fatalf("unexpected created review: %+v", review)
	}

	list := decode[[]models.Review](t, env.do(t, "GET", "/reviews", ""))
	if len(list) != 4 || list[0].ID != 4 {
		t.Fatalf("expected the new review first, got %+v", list)
	}
}

func TestUpdateReview(t *testing.T) {
	env := newTestEnv(t, nil)

	expectStatus(t, env.do(t, "PUT", "/reviews/1", `{"rating":9}`), http.StatusBadRequest)

	resp := env.do(t, "PUT", "/reviews/1", `{"isActive":false,"comment":"edited"}`)
	expectStatus(t, resp, http.StatusOK)
	review := decode[models.Review](t, resp)
	if review.IsActive || review.Comment != "edited" || review.Rating != 5 {
		t.Fatalf("unexpected review after update: %+v", review)
	}

	expectStatus(t, env.do(t, "PUT", "/reviews/42", `{"comment":"x"}`), http.StatusNotFound)
}

func TestReviewsByBranch(t *testing.T) {
	env := newTestEnv(t, nil)
	env.do(t, "PUT", "/reviews/3", `{"isActive":false}`)

	resp := env.do(t, "GET", "/reviews/branch/1", "")
	expectStatus(t, resp, http.StatusOK)
	reviews := decode[[]models.Review](t, resp)
	if len(reviews) != 1 || reviews[0].ID != 1 {
		t.Fatalf("expected only active review 1 of branch 1, got %+v", reviews)
	}

	empty := decode[[]models.Review](t, env.do(t, "GET", "/reviews/branch/77", ""))
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected an empty array, got %v", empty)
	}

	expectStatus(t, env.do(t, "GET", "/reviews/branch/abc", ""), http.StatusBadRequest)
}

func TestRandomReviews(t *testing.T) {
	env := newTestEnv(t, nil)
	for i := 0; i < 5; i++ {
		body := fmt.Sprintf(`{"branchId":1,"customerName":"c%d","rating":3,"comment":"x"}`, i)
		expectStatus(t, env.do(t, "POST", "/reviews", body), http.StatusCreated)
	}
	env.do(t, "PUT", "/reviews/2", `{"isActive":false}`)

	cases := []struct {
		path string
		want int
	}{
		{"/reviews/random/2", 2},
		{"/reviews/random/100", 7},
		{"/reviews/random/zero", 3},
		{"/reviews/random", 3},
	}
	for _, tc := range cases {
		resp := env.do(t, "GET", tc.path, "")
		expectStatus(t, resp, http.StatusOK)
		got := decode[[]models.Review](t, resp)
		if len(got) != tc.want {
			t.Errorf("%s: expected %d reviews, got %d", tc.path, tc.want, len(got))
		}
		seen := map[int]bool{}
		for _, r := range got {
			if seen[r.ID] {
				t.Errorf("%s: review %d sampled twice", tc.path, r.ID)
			}
			if !r.IsActive {
				t.Errorf("%s: inactive review %d sampled", tc.path, r.ID)
			}
			seen[r.ID] = true
		}
	}
}

func TestSampleReviewsDoesNotMutateInput(t *testing.T) {
	in := []models.Review{{ID: 1}, {ID: 2}, {ID: 3}}
	out := sampleReviews(in, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2, got %d", len(out))
	}
	for i, r := range in {
		if r.ID != i+1 {
			t.Fatalf("input reordered: %+v", in)
		}
	}
	if got := sampleReviews(nil, 3); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestDeleteReview(t *testing.T) {
	env := newTestEnv(t, nil)
	expectStatus(t, env.do(t, "DELETE", "/reviews/2", ""), http.StatusOK)
	expectStatus(t, env.do(t, "DELETE", "/reviews/2", ""), http.StatusNotFound)
	expectStatus(t, env.do(t, "GET", "/reviews/2", ""), http.StatusNotFound)
}
