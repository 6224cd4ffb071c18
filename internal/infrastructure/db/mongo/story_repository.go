package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunshine-recruitment/portal/internal/core/domain"
)

type StoryRepository struct {
	coll *mongo.Collection
}

func NewStoryRepository(s *Store) *StoryRepository {
	return &StoryRepository{coll: s.db.Collection(storiesCollection)}
}

type mongoStory struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	CustomerName  string             `bson:"customerName"`
	CustomerImage string             `bson:"customerImage"`
	JobTitle      string             `bson:"jobTitle"`
	Company       string             `bson:"company"`
	Location      string             `bson:"location"`
	Testimonial   string             `bson:"testimonial"`
	Rating        int                `bson:"rating"`
	CreatedBy     string             `bson:"createdBy,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (m *mongoStory) toDomain() *domain.SuccessStory {
	return &domain.SuccessStory{
		ID:            m.ID.Hex(),
		CustomerName:  m.CustomerName,
		CustomerImage: m.CustomerImage,
		JobTitle:      m.JobTitle,
		Company:       m.Company,
		Location:      m.Location,
		Testimonial:   m.Testimonial,
		Rating:        m.Rating,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

func (r *StoryRepository) Create(ctx context.Context, s *domain.SuccessStory) (*domain.SuccessStory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoStory{
		CustomerName:  s.CustomerName,
		CustomerImage: s.CustomerImage,
		JobTitle:      s.JobTitle,
		Company:       s.Company,
		Location:      s.Location,
		Testimonial:   s.Testimonial,
		Rating:        s.Rating,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert success story: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *StoryRepository) List(ctx context.Context, limit int) ([]*domain.SuccessStory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find success stories: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoStory
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode success stories: %w", err)
	}
	stories := make([]*domain.SuccessStory, 0, len(docs))
	for i := range docs {
		stories = append(stories, docs[i].toDomain())
	}
	return stories, nil
}
