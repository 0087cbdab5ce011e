package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/loopdesk/chat-api/internal/core/domain"
)

const messagesCollection = "messages"

// MessageRepository implements ports.MessageRepository using MongoDB.
type MessageRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{db: db, coll: db.Collection(messagesCollection)}
}

type mongoMessage struct {
	ID        int64      `bson:"_id"`
	UserID    int64      `bson:"user_id"`
	Sender    string     `bson:"sender"`
	Content   string     `bson:"content"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty"`
}

func (m mongoMessage) toDomain() *domain.Message {
	return &domain.Message{
		ID:        m.ID,
		UserID:    m.UserID,
		Sender:    domain.Sender(m.Sender),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
	}
}

// Insert allocates an id and persists the message.
func (r *MessageRepository) Insert(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, messagesCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoMessage{
		ID:        id,
		UserID:    msg.UserID,
		Sender:    string(msg.Sender),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt.UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	created := *msg
	created.ID = id
	return &created, nil
}

// FindByID retrieves a message by id, including soft-deleted ones. The
// service layer decides how deletion state affects each operation.
func (r *MessageRepository) FindByID(ctx context.Context, id int64) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMessage
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}
	return mm.toDomain(), nil
}

// ListByOwner returns the owner's messages ordered by creation time
// ascending. Soft-deleted records are filtered out in the query.
func (r *MessageRepository) ListByOwner(ctx context.Context, userID int64) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"user_id":    userID,
		"deleted_at": bson.M{"$exists": false},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cursor.Close(ctx)

	messages := make([]*domain.Message, 0)
	for cursor.Next(ctx) {
		var mm mongoMessage
		if err := cursor.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, mm.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// UpdateContent sets content and updated_at in one atomic write and returns
// the updated record.
func (r *MessageRepository) UpdateContent(ctx context.Context, id int64, content string, updatedAt time.Time) (*domain.Message, error) {
	return r.findAndSet(ctx, id, bson.M{
		"content":    content,
		"updated_at": updatedAt.UTC(),
	})
}

// SoftDelete sets deleted_at in one atomic write and returns the record with
// its deletion marker.
func (r *MessageRepository) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) (*domain.Message, error) {
	return r.findAndSet(ctx, id, bson.M{
		"deleted_at": deletedAt.UTC(),
	})
}

func (r *MessageRepository) findAndSet(ctx context.Context, id int64, set bson.M) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMessage
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mm)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("update message: %w", err)
	}
	return mm.toDomain(), nil
}

// EnsureIndexes creates the listing index on messages.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
