package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"storefront-backend/internal/models"
	"storefront-backend/internal/storage"
)

type recordPtr[T any] interface {
	*T
	models.Record
}

// Store is the gorm-backed storage.Store.
type Store struct {
	db       *gorm.DB
	branches *collection[models.Branch, *models.Branch]
	slides   *collection[models.Slide, *models.Slide]
	reviews  *reviews
	contact  *contacts
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		branches: newCollection[models.Branch](db, "branches", "id asc"),
		slides:   newCollection[models.Slide](db, "slides", "id asc"),
		reviews:  &reviews{newCollection[models.Review](db, "reviews", "created_at desc, id desc")},
		contact:  &contacts{db: db},
	}
}

func (s *Store) Branches() storage.Collection[models.Branch] { return s.branches }
func (s *Store) Slides() storage.Collection[models.Slide]    { return s.slides }
func (s *Store) Reviews() storage.ReviewCollection           { return s.reviews }
func (s *Store) Contact() storage.ContactStore               { return s.contact }

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

type collection[T any, P recordPtr[T]] struct {
	db    *gorm.DB
	kind  string
	order string
	// mu serializes id allocation and read-modify-write updates.
	mu  sync.Mutex
	now func() time.Time
}

func newCollection[T any, P recordPtr[T]](db *gorm.DB, kind, order string) *collection[T, P] {
	return &collection[T, P]{db: db, kind: kind, order: order, now: time.Now}
}

func (c *collection[T, P]) List(ctx context.Context) ([]T, error) {
	return c.find(ctx, c.db.WithContext(ctx))
}

func (c *collection[T, P]) find(ctx context.Context, q *gorm.DB) ([]T, error) {
	out := []T{}
	if err := q.Order(c.order).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.kind, err)
	}
	return out, nil
}

func (c *collection[T, P]) Get(ctx context.Context, id int) (*T, error) {
	var rec T
	err := c.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %d: %w", c.kind, id, err)
	}
	return &rec, nil
}

func (c *collection[T, P]) Count(ctx context.Context) (int, error) {
	var n int64
	if err := c.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c.kind, err)
	}
	return int(n), nil
}

// nextID returns the highest stored id + 1, or 1 for an empty table.
func (c *collection[T, P]) nextID(ctx context.Context) (int, error) {
	var last T
	err := c.db.WithContext(ctx).Order("id desc").Take(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", c.kind, err)
	}
	return P(&last).RecordID() + 1, nil
}

func (c *collection[T, P]) Create(ctx context.Context, rec *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.nextID(ctx)
	if err != nil {
		return err
	}
	P(rec).SetRecordID(id)
	P(rec).Stamp(c.now())

	if err := c.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", c.kind, err)
	}
	return nil
}

func (c *collection[T, P]) Insert(ctx context.Context, rec *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.Get(ctx, P(rec).RecordID()); err == nil {
		return storage.ErrExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	P(rec).Stamp(c.now())

	if err := c.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to insert %s: %w", c.kind, err)
	}
	return nil
}

func (c *collection[T, P]) Update(ctx context.Context, id int, apply func(*T)) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(rec)
	P(rec).SetRecordID(id)
	P(rec).Stamp(c.now())

	if err := c.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to update %s %d: %w", c.kind, id, err)
	}
	return rec, nil
}

func (c *collection[T, P]) Delete(ctx context.Context, id int) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error; err != nil {
		return nil, fmt.Errorf("failed to delete %s %d: %w", c.kind, id, err)
	}
	return rec, nil
}

type reviews struct {
	*collection[models.Review, *models.Review]
}

func (r *reviews) ListByBranch(ctx context.Context, branchID int) ([]models.Review, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("branch_id = ? AND is_active = ?", branchID, true))
}

func (r *reviews) ListActive(ctx context.Context) ([]models.Review, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("is_active = ?", true))
}

// contactRow stores the singleton contact; only the first row is ever used.
type contactRow struct {
	ID uint `gorm:"primaryKey"`
	models.Contact
	UpdatedAt time.Time
}

func (contactRow) TableName() string { return "contacts" }

type contacts struct {
	db *gorm.DB
	mu sync.Mutex
}

func (c *contacts) Get(ctx context.Context) (*models.Contact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	row, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return &row.Contact, nil
}

func (c *contacts) Update(ctx context.Context, apply func(*models.Contact)) (*models.Contact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	row, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	apply(&row.Contact)
	if err := c.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return &row.Contact, nil
}

// load must be called with mu held. It inserts the default contact when the
// table is empty.
func (c *contacts) load(ctx context.Context) (*contactRow, error) {
	var row contactRow
	err := c.db.WithContext(ctx).Order("id asc").Take(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	row = contactRow{Contact: storage.DefaultContact()}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to seed contact: %w", err)
	}
	return &row, nil
}
