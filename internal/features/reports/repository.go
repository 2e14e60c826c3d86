package reports

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository is the MongoDB record store for reports
type Repository struct {
	collection *mongo.Collection
	now        func() time.Time

	mu          sync.Mutex
	lastCreated time.Time
}

func NewRepository(db *mongo.Database) *Repository {
	repo := &Repository{
		collection: db.Collection("reports"),
		now:        time.Now,
	}
	repo.ensureIndexes()
	return repo
}

func (r *Repository) ensureIndexes() {
	// Feed query: createdAt >= since ORDER BY createdAt DESC
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}
	_, _ = r.collection.Indexes().CreateOne(context.Background(), indexModel)
}

// Insert stores report and returns it with its ID and CreatedAt assigned
func (r *Repository) Insert(ctx context.Context, report *Report) (*Report, error) {
	if report == nil {
		return nil, errors.New("report is required")
	}

	doc := *report
	doc.ID = primitive.NilObjectID
	doc.CreatedAt = r.nextCreatedAt()

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("unexpected inserted id type")
	}
	doc.ID = oid

	return &doc, nil
}

// FindSince returns reports created at or after since, newest first
func (r *Repository) FindSince(ctx context.Context, since time.Time) ([]Report, error) {
	filter, opts := sinceQuery(since)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []Report{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

func sinceQuery(since time.Time) (bson.M, *options.FindOptions) {
	filter := bson.M{
		"createdAt": bson.M{"$gte": since.UTC()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return filter, opts
}

// nextCreatedAt never goes backwards, even if the wall clock does.
// BSON dates hold milliseconds, so truncate before handing the value back.
func (r *Repository) nextCreatedAt() time.Time {
	t := r.now().UTC().Truncate(time.Millisecond)

	r.mu.Lock()
	defer r.mu.Unlock()
	if t.Before(r.lastCreated) {
		t = r.lastCreated
	}
	r.lastCreated = t
	return t
}
