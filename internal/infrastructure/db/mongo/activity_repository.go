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
	"github.com/sunshine-recruitment/portal/internal/core/ports"
)

// ActivityRepository is the append-only activity_logs collection. It exposes
// no update or delete.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(s *Store) *ActivityRepository {
	return &ActivityRepository{coll: s.db.Collection(activityCollection)}
}

type mongoActivity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId,omitempty"`
	Action    string             `bson:"action"`
	Resource  string             `bson:"resource"`
	Details   string             `bson:"details"`
	IPAddress string             `bson:"ipAddress"`
	UserAgent string             `bson:"userAgent"`
	Timestamp time.Time          `bson:"timestamp"`
	Status    string             `bson:"status"`
}

func (r *ActivityRepository) Insert(ctx context.Context, e *domain.ActivityLog) (string, error) {
	res, err := r.coll.InsertOne(ctx, mongoActivity{
		UserID:    e.UserID,
		Action:    e.Action,
		Resource:  e.Resource,
		Details:   e.Details,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		Timestamp: e.Timestamp,
		Status:    string(e.Status),
	})
	if err != nil {
		return "", fmt.Errorf("insert activity: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// activityFilter builds the query document; search covers action, resource
// and details.
func activityFilter(f ports.ActivityFilter) bson.M {
	filter := bson.M{}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.Status != "" && f.Status != "all" {
		filter["status"] = f.Status
	}
	if f.Action != "" && f.Action != "all" {
		filter["action"] = containsFold(f.Action)
	}
	if f.Search != "" {
		rx := containsFold(f.Search)
		filter["$or"] = bson.A{
			bson.M{"action": rx},
			bson.M{"resource": rx},
			bson.M{"details": rx},
		}
	}
	return filter
}

func (r *ActivityRepository) Query(ctx context.Context, f ports.ActivityFilter) ([]*domain.ActivityLog, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := activityFilter(f)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count activity: %w", err)
	}

	// _id breaks timestamp ties so pages never overlap.
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skipFor(f.Page, f.PageSize)).
		SetLimit(int64(f.PageSize))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find activity: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]*domain.ActivityLog, 0, f.PageSize)
	for cur.Next(ctx) {
		var doc mongoActivity
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode activity: %w", err)
		}
		items = append(items, &domain.ActivityLog{
			ID:        doc.ID.Hex(),
			UserID:    doc.UserID,
			Action:    doc.Action,
			Resource:  doc.Resource,
			Details:   doc.Details,
			IPAddress: doc.IPAddress,
			UserAgent: doc.UserAgent,
			Timestamp: doc.Timestamp.UTC(),
			Status:    domain.ActivityStatus(doc.Status),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate activity: %w", err)
	}
	return items, total, nil
}
