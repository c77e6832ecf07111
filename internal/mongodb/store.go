package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-backend/internal/models"
	"storefront-backend/internal/storage"
)

type recordPtr[T any] interface {
	*T
	models.Record
}

// Store is the MongoDB-backed storage.Store. It owns the client and
// disconnects it on Close.
type Store struct {
	client   *mongo.Client
	branches *collection[models.Branch, *models.Branch]
	slides   *collection[models.Slide, *models.Slide]
	reviews  *reviews
	contact  *contacts
}

func NewStore(ctx context.Context, client *mongo.Client, db *mongo.Database) (*Store, error) {
	s := &Store{
		client:   client,
		branches: newCollection[models.Branch](db.Collection("branches"), bson.D{{Key: "id", Value: 1}}),
		slides:   newCollection[models.Slide](db.Collection("slides"), bson.D{{Key: "id", Value: 1}}),
		reviews: &reviews{newCollection[models.Review](db.Collection("reviews"),
			bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: -1}})},
		contact: &contacts{coll: db.Collection("contacts")},
	}

	for _, coll := range []*mongo.Collection{s.branches.coll, s.slides.coll, s.reviews.coll} {
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create id index on %s: %w", coll.Name(), err)
		}
	}
	return s, nil
}

func (s *Store) Branches() storage.Collection[models.Branch] { return s.branches }
func (s *Store) Slides() storage.Collection[models.Slide]    { return s.slides }
func (s *Store) Reviews() storage.ReviewCollection           { return s.reviews }
func (s *Store) Contact() storage.ContactStore               { return s.contact }

func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongodb: %w", err)
	}
	return nil
}

type collection[T any, P recordPtr[T]] struct {
	coll *mongo.Collection
	sort bson.D
	// mu serializes id allocation and read-modify-write updates within this process.
	mu  sync.Mutex
	now func() time.Time
}

func newCollection[T any, P recordPtr[T]](coll *mongo.Collection, sort bson.D) *collection[T, P] {
	return &collection[T, P]{coll: coll, sort: sort, now: time.Now}
}

func (c *collection[T, P]) List(ctx context.Context) ([]T, error) {
	return c.find(ctx, bson.D{})
}

func (c *collection[T, P]) find(ctx context.Context, filter any) ([]T, error) {
	cur, err := c.coll.Find(ctx, filter, options.Find().SetSort(c.sort))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.coll.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

func (c *collection[T, P]) Get(ctx context.Context, id int) (*T, error) {
	var rec T
	err := c.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %d: %w", c.coll.Name(), id, err)
	}
	return &rec, nil
}

func (c *collection[T, P]) Count(ctx context.Context) (int, error) {
	n, err := c.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c.coll.Name(), err)
	}
	return int(n), nil
}

// nextID takes the document with the highest id and adds one.
func (c *collection[T, P]) nextID(ctx context.Context) (int, error) {
	var last T
	err := c.coll.FindOne(ctx, bson.D{}, options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", c.coll.Name(), err)
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

	if _, err := c.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to create %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *collection[T, P]) Insert(ctx context.Context, rec *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	P(rec).Stamp(c.now())
	_, err := c.coll.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", c.coll.Name(), err)
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

	res, err := c.coll.ReplaceOne(ctx, bson.M{"id": id}, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %d: %w", c.coll.Name(), id, err)
	}
	if res.MatchedCount == 0 {
		return nil, storage.ErrNotFound
	}
	return rec, nil
}

func (c *collection[T, P]) Delete(ctx context.Context, id int) (*T, error) {
	var rec T
	err := c.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s %d: %w", c.coll.Name(), id, err)
	}
	return &rec, nil
}

type reviews struct {
	*collection[models.Review, *models.Review]
}

func (r *reviews) ListByBranch(ctx context.Context, branchID int) ([]models.Review, error) {
	return r.find(ctx, bson.M{"branchId": branchID, "isActive": true})
}

func (r *reviews) ListActive(ctx context.Context) ([]models.Review, error) {
	return r.find(ctx, bson.M{"isActive": true})
}

type contacts struct {
	coll *mongo.Collection
	mu   sync.Mutex
}

func (c *contacts) Get(ctx context.Context) (*models.Contact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *contacts) Update(ctx context.Context, apply func(*models.Contact)) (*models.Contact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	contact, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	apply(contact)
	if _, err := c.coll.ReplaceOne(ctx, bson.D{}, contact, options.Replace().SetUpsert(true)); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}

// load must be called with mu held; it inserts the default contact when the
// collection is empty.
func (c *contacts) load(ctx context.Context) (*models.Contact, error) {
	var contact models.Contact
	err := c.coll.FindOne(ctx, bson.D{}).Decode(&contact)
	if err == nil {
		return &contact, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	contact = storage.DefaultContact()
	if _, err := c.coll.InsertOne(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to seed contact: %w", err)
	}
	return &contact, nil
}
