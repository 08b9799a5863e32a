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
	"github.com/RMvanderGaag/find-a-buddy/internal/core/ports"
)

const collectionMeetups = "meetups"

// MeetupRepository implements ports.MeetupStore.
type MeetupRepository struct {
	col *mongo.Collection
}

func NewMeetupRepository(db *mongo.Database) *MeetupRepository {
	return &MeetupRepository{col: db.Collection(collectionMeetups)}
}

type reviewDocument struct {
	Text   string `bson:"text"`
	Rating int    `bson:"rating"`
}

type meetupDocument struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty"`
	ID       string             `bson:"id"`
	Topic    string             `bson:"topic"`
	Datetime time.Time          `bson:"datetime"`
	Coach    string             `bson:"coach"`
	Pupil    string             `bson:"pupil"`
	Accepted bool               `bson:"accepted"`
	Review   *reviewDocument    `bson:"review,omitempty"`
}

func toMeetupDocument(m *domain.Meetup) meetupDocument {
	doc := meetupDocument{
		ID:       m.ID,
		Topic:    m.Topic,
		Datetime: m.Datetime,
		Coach:    m.Coach,
		Pupil:    m.Pupil,
		Accepted: m.Accepted,
	}
	if m.Review != nil {
		doc.Review = &reviewDocument{Text: m.Review.Text, Rating: m.Review.Rating}
	}
	return doc
}

func (d meetupDocument) toDomain() *domain.Meetup {
	m := &domain.Meetup{
		ID:       d.ID,
		Topic:    d.Topic,
		Datetime: d.Datetime.UTC(),
		Coach:    d.Coach,
		Pupil:    d.Pupil,
		Accepted: d.Accepted,
	}
	if d.Review != nil {
		m.Review = &domain.Review{Text: d.Review.Text, Rating: d.Review.Rating}
	}
	return m
}

// Insert stores a new meetup document.
func (r *MeetupRepository) Insert(ctx context.Context, m *domain.Meetup) (*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toMeetupDocument(m)); err != nil {
		return nil, fmt.Errorf("insert meetup: %w", err)
	}
	stored := *m
	return &stored, nil
}

func (r *MeetupRepository) FindByID(ctx context.Context, id string) (*domain.Meetup, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc meetupDocument
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMeetupNotFound
		}
		return nil, fmt.Errorf("find meetup: %w", err)
	}
	return doc.toDomain(), nil
}

// FindMatching returns the meetups matching any criteria of f, in insertion order.
func (r *MeetupRepository) FindMatching(ctx context.Context, f ports.MeetupFilter) ([]*domain.Meetup, error) {
	if len(f.AnyOf) == 0 {
		return []*domain.Meetup{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, meetupFilter(f), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find meetups: %w", err)
	}
	defer cur.Close(ctx)

	var docs []meetupDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode meetups: %w", err)
	}

	out := make([]*domain.Meetup, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func meetupFilter(f ports.MeetupFilter) bson.M {
	clauses := make(bson.A, 0, len(f.AnyOf))
	for _, c := range f.AnyOf {
		clause := bson.M{}
		if c.Coach != "" {
			clause["coach"] = c.Coach
		}
		if c.Pupil != "" {
			clause["pupil"] = c.Pupil
		}
		if c.Accepted != nil {
			clause["accepted"] = *c.Accepted
		}
		clauses = append(clauses, clause)
	}
	if len(clauses) == 1 {
		return clauses[0].(bson.M)
	}
	return bson.M{"$or": clauses}
}

// SetReviewIfAbsent writes the review only when the meetup has none yet.
func (r *MeetupRepository) SetReviewIfAbsent(ctx context.Context, id string, review domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"id": id, "review": nil},
		bson.M{"$set": bson.M{"review": reviewDocument{Text: review.Text, Rating: review.Rating}}},
	)
	if err != nil {
		return fmt.Errorf("set review: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, id, domain.ErrReviewConflict)
	}
	return nil
}

// AcceptIfPending flips accepted to true only when it is still false.
func (r *MeetupRepository) AcceptIfPending(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"id": id, "accepted": false},
		bson.M{"$set": bson.M{"accepted": true}},
	)
	if err != nil {
		return fmt.Errorf("accept meetup: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, id, domain.ErrAlreadyAccepted)
	}
	return nil
}

// missOrConflict tells a missing meetup apart from a failed condition.
func (r *MeetupRepository) missOrConflict(ctx context.Context, id string, conflict error) error {
	n, err := r.col.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("count meetup: %w", err)
	}
	if n == 0 {
		return domain.ErrMeetupNotFound
	}
	return conflict
}

// EnsureIndexes creates necessary indexes on the meetups collection.
func (r *MeetupRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "pupil", Value: 1}, {Key: "accepted", Value: 1}}},
		{Keys: bson.D{{Key: "coach", Value: 1}, {Key: "accepted", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
