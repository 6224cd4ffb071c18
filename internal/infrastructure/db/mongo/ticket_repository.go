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

type TicketRepository struct {
	coll *mongo.Collection
}

func NewTicketRepository(s *Store) *TicketRepository {
	return &TicketRepository{coll: s.db.Collection(ticketsCollection)}
}

type mongoTicket struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	UserEmail   string             `bson:"userEmail"`
	UserName    string             `bson:"userName"`
	ProblemType string             `bson:"problemType"`
	Subject     string             `bson:"subject"`
	Message     string             `bson:"message"`
	Priority    string             `bson:"priority"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (m *mongoTicket) toDomain() *domain.HelpTicket {
	return &domain.HelpTicket{
		ID:          m.ID.Hex(),
		UserID:      m.UserID,
		UserEmail:   m.UserEmail,
		UserName:    m.UserName,
		ProblemType: m.ProblemType,
		Subject:     m.Subject,
		Message:     m.Message,
		Priority:    domain.TicketPriority(m.Priority),
		Status:      domain.TicketStatus(m.Status),
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.HelpTicket) (*domain.HelpTicket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTicket{
		UserID:      t.UserID,
		UserEmail:   t.UserEmail,
		UserName:    t.UserName,
		ProblemType: t.ProblemType,
		Subject:     t.Subject,
		Message:     t.Message,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert help ticket: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (*domain.HelpTicket, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTicket
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find help ticket: %w", err)
	}
	return doc.toDomain(), nil
}

func ticketFilter(f ports.TicketFilter) bson.M {
	filter := bson.M{}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.Status != "" && f.Status != "all" {
		filter["status"] = f.Status
	}
	return filter
}

func (r *TicketRepository) List(ctx context.Context, f ports.TicketFilter) ([]*domain.HelpTicket, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := ticketFilter(f)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count help tickets: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skipFor(f.Page, f.PageSize)).
		SetLimit(int64(f.PageSize))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find help tickets: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoTicket
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode help tickets: %w", err)
	}
	items := make([]*domain.HelpTicket, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toDomain())
	}
	return items, total, nil
}
