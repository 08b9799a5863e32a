package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

const collectionTopics = "topics"

// TopicRepository implements ports.TopicRepository.
type TopicRepository struct {
	col *mongo.Collection
}

func NewTopicRepository(db *mongo.Database) *TopicRepository {
	return &TopicRepository{col: db.Collection(collectionTopics)}
}

type topicDocument struct {
	Title string `bson:"title"`
}

func (r *TopicRepository) Exists(ctx context.Context, title string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"title": title}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count topic: %w", err)
	}
	return n > 0, nil
}

func (r *TopicRepository) Create(ctx context.Context, t domain.Topic) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, topicDocument{Title: t.Title}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTopicExists
		}
		return fmt.Errorf("insert topic: %w", err)
	}
	return nil
}

func (r *TopicRepository) List(ctx context.Context) ([]domain.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find topics: %w", err)
	}
	defer cur.Close(ctx)

	var docs []topicDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	out := make([]domain.Topic, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Topic{Title: d.Title})
	}
	return out, nil
}

// EnsureIndexes creates necessary indexes on the topics collection.
func (r *TopicRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
