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

	"github.com/sunshine-recruitment/portal/internal/core/domain"
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

// JobRepository implements ports.JobRepository on the jobs collection.
type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(s *Store) *JobRepository {
	return &JobRepository{coll: s.db.Collection(jobsCollection)}
}

type mongoJob struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	Company          string             `bson:"company"`
	Location         string             `bson:"location"`
	Country          string             `bson:"country"`
	Salary           string             `bson:"salary"`
	Description      string             `bson:"description"`
	Responsibilities []string           `bson:"responsibilities"`
	Requirements     []string           `bson:"requirements"`
	Benefits         []string           `bson:"benefits"`
	Type             string             `bson:"type"`
	Experience       string             `bson:"experience"`
	Trade            string             `bson:"trade"`
	Featured         bool               `bson:"featured"`
	Date             string             `bson:"date"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func newMongoJob(j *domain.Job) mongoJob {
	return mongoJob{
		Title:            j.Title,
		Company:          j.Company,
		Location:         j.Location,
		Country:          j.Country,
		Salary:           j.Salary,
		Description:      j.Description,
		Responsibilities: j.Responsibilities,
		Requirements:     j.Requirements,
		Benefits:         j.Benefits,
		Type:             j.Type,
		Experience:       j.Experience,
		Trade:            j.Trade,
		Featured:         j.Featured,
		Date:             j.Date,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}

func (m *mongoJob) toDomain() *domain.Job {
	return &domain.Job{
		ID:               m.ID.Hex(),
		Title:            m.Title,
		Company:          m.Company,
		Location:         m.Location,
		Country:          m.Country,
		Salary:           m.Salary,
		Description:      m.Description,
		Responsibilities: m.Responsibilities,
		Requirements:     m.Requirements,
		Benefits:         m.Benefits,
		Type:             m.Type,
		Experience:       m.Experience,
		Trade:            m.Trade,
		Featured:         m.Featured,
		Date:             m.Date,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

// jobFilter translates listing filters into a query document. Search is an
// OR of case-insensitive substring matches over title, company and location.
func jobFilter(f ports.JobFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		rx := containsFold(f.Search)
		filter["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"company": rx},
			bson.M{"location": rx},
		}
	}
	if f.Trade != "" && f.Trade != domain.AllTrades {
		filter["trade"] = f.Trade
	}
	if f.Country != "" && f.Country != domain.AllCountries {
		filter["country"] = f.Country
	}
	if f.FeaturedOnly {
		filter["featured"] = true
	}
	return filter
}

func (r *JobRepository) List(ctx context.Context, f ports.JobFilter) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, jobFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer cur.Close(ctx)

	jobs := make([]*domain.Job, 0)
	for cur.Next(ctx) {
		var doc mongoJob
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoJob
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newMongoJob(job)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// Replace overwrites every mutable field; createdAt is preserved.
func (r *JobRepository) Replace(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	oid, ok := objectID(job.ID)
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newMongoJob(job)
	set := bson.M{
		"title":            doc.Title,
		"company":          doc.Company,
		"location":         doc.Location,
		"country":          doc.Country,
		"salary":           doc.Salary,
		"description":      doc.Description,
		"responsibilities": doc.Responsibilities,
		"requirements":     doc.Requirements,
		"benefits":         doc.Benefits,
		"type":             doc.Type,
		"experience":       doc.Experience,
		"trade":            doc.Trade,
		"featured":         doc.Featured,
		"date":             doc.Date,
		"updatedAt":        doc.UpdatedAt,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated mongoJob
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("update job: %w", err)
	}
	return updated.toDomain(), nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrJobNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}
