package storage

import (
	"context"
	"slices"
	"sync"
	"time"

	"storefront-backend/internal/models"
)

type recordPtr[T any] interface {
	*T
	models.Record
}

// Table is an in-memory collection. When persist is set, every mutation is
// written through it and rolled back in memory if the write fails.
type Table[T any, P recordPtr[T]] struct {
	mu      sync.RWMutex
	rows    []T
	order   func(a, b *T) int
	persist func(rows []T) error
	now     func() time.Time
}

func NewTable[T any, P recordPtr[T]](rows []T, order func(a, b *T) int, persist func([]T) error) *Table[T, P] {
	return &Table[T, P]{
		rows:    slices.Clone(rows),
		order:   order,
		persist: persist,
		now:     time.Now,
	}
}

func (t *Table[T, P]) List(_ context.Context) ([]T, error) {
	t.mu.RLock()
	out := slices.Clone(t.rows)
	t.mu.RUnlock()

	if out == nil {
		out = []T{}
	}
	if t.order != nil {
		slices.SortStableFunc(out, func(a, b T) int { return t.order(&a, &b) })
	}
	return out, nil
}

// Filter returns the rows keep accepts, in list order.
func (t *Table[T, P]) Filter(ctx context.Context, keep func(*T) bool) ([]T, error) {
	all, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (t *Table[T, P]) Get(_ context.Context, id int) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i := t.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	rec := t.rows[i]
	return &rec, nil
}

func (t *Table[T, P]) Count(_ context.Context) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows), nil
}

func (t *Table[T, P]) Create(_ context.Context, rec *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]int, len(t.rows))
	for i := range t.rows {
		ids[i] = P(&t.rows[i]).RecordID()
	}
	P(rec).SetRecordID(NextID(ids))
	P(rec).Stamp(t.now())

	return t.commit(append(slices.Clone(t.rows), *rec))
}

func (t *Table[T, P]) Insert(_ context.Context, rec *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.index(P(rec).RecordID()) >= 0 {
		return ErrExists
	}
	P(rec).Stamp(t.now())
	return t.commit(append(slices.Clone(t.rows), *rec))
}

func (t *Table[T, P]) Update(_ context.Context, id int, apply func(*T)) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	rec := t.rows[i]
	apply(&rec)
	P(&rec).SetRecordID(id)
	P(&rec).Stamp(t.now())

	rows := slices.Clone(t.rows)
	rows[i] = rec
	if err := t.commit(rows); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (t *Table[T, P]) Delete(_ context.Context, id int) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	rec := t.rows[i]
	if err := t.commit(slices.Delete(slices.Clone(t.rows), i, i+1)); err != nil {
		return nil, err
	}
	return &rec, nil
}

// commit must be called with mu held.
func (t *Table[T, P]) commit(rows []T) error {
	if t.persist != nil {
		if err := t.persist(rows); err != nil {
			return err
		}
	}
	t.rows = rows
	return nil
}

func (t *Table[T, P]) index(id int) int {
	for i := range t.rows {
		if P(&t.rows[i]).RecordID() == id {
			return i
		}
	}
	return -1
}

// reviewTable adds the review-specific queries on top of Table.
type reviewTable struct {
	*Table[models.Review, *models.Review]
}

func (r reviewTable) ListByBranch(ctx context.Context, branchID int) ([]models.Review, error) {
	return r.Filter(ctx, func(rv *models.Review) bool {
		return rv.IsActive && rv.BranchID == branchID
	})
}

func (r reviewTable) ListActive(ctx context.Context) ([]models.Review, error) {
	return r.Filter(ctx, func(rv *models.Review) bool { return rv.IsActive })
}

// contactCell holds the singleton contact record.
type contactCell struct {
	mu      sync.Mutex
	value   *models.Contact
	persist func(*models.Contact) error
}

func (c *contactCell) Get(_ context.Context) (*models.Contact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.value == nil {
		if err := c.commit(DefaultContact()); err != nil {
			return nil, err
		}
	}
	out := *c.value
	return &out, nil
}

func (c *contactCell) Update(_ context.Context, apply func(*models.Contact)) (*models.Contact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := DefaultContact()
	if c.value != nil {
		next = *c.value
	}
	apply(&next)
	if err := c.commit(next); err != nil {
		return nil, err
	}
	out := next
	return &out, nil
}

func (c *contactCell) commit(v models.Contact) error {
	if c.persist != nil {
		if err := c.persist(&v); err != nil {
			return err
		}
	}
	c.value = &v
	return nil
}
