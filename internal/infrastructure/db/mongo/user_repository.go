package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDocument struct {
	ObjectID      primitive.ObjectID `bson:"_id,omitempty"`
	ID            string             `bson:"id"`
	Name          string             `bson:"name"`
	TopicsTaught  []string           `bson:"topics_taught"`
	TopicsLearned []string           `bson:"topics_learned"`
	Meetups       []string           `bson:"meetups"`
}

func (d userDocument) toDomain() *domain.User {
	meetups := d.Meetups
	if meetups == nil {
		meetups = []string{}
	}
	return &domain.User{
		ID:            d.ID,
		Name:          d.Name,
		TopicsTaught:  domain.NewTopicSet(d.TopicsTaught...),
		TopicsLearned: domain.NewTopicSet(d.TopicsLearned...),
		Meetups:       meetups,
	}
}

// Create inserts a new profile. Names are unique.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	meetups := u.Meetups
	if meetups == nil {
		meetups = []string{}
	}
	doc := userDocument{
		ID:            u.ID,
		Name:          u.Name,
		TopicsTaught:  u.TopicsTaught.Slice(),
		TopicsLearned: u.TopicsLearned.Slice(),
		Meetups:       meetups,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// AppendMeetup pushes meetupID onto the user's meetup list.
func (r *UserRepository) AppendMeetup(ctx context.Context, userID, meetupID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"id": userID}, bson.M{"$push": bson.M{"meetups": meetupID}})
	if err != nil {
		return fmt.Errorf("append meetup: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"id": userID}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// UpdateTopics replaces both topic lists and returns the updated profile.
func (r *UserRepository) UpdateTopics(ctx context.Context, userID string, taught, learned domain.TopicSet) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"id": userID},
		bson.M{"$set": bson.M{"topics_taught": taught.Slice(), "topics_learned": learned.Slice()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update topics: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
