package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/logger"
)

// messageDoc maps to the messages collection.
type messageDoc struct {
	ID         string `bson:"_id"`
	SenderID   string `bson:"senderId"`
	ReceiverID string `bson:"receiverId"`
	ItemID     string `bson:"itemId"`
	Content    string `bson:"content"`
	ImageURL   string `bson:"imageUrl,omitempty"`
	Timestamp  int64  `bson:"timestamp"`
}

func (d *messageDoc) toModel() *models.Message {
	return &models.Message{
		ID:         d.ID,
		SenderID:   d.SenderID,
		ReceiverID: d.ReceiverID,
		ItemID:     d.ItemID,
		Content:    d.Content,
		ImageURL:   d.ImageURL,
		Timestamp:  d.Timestamp,
	}
}

// MessageRepository handles message database operations.
type MessageRepository struct {
	coll *mongo.Collection
}

// NewMessageRepository creates a new MessageRepository over the
// messages collection.
func NewMessageRepository(coll *mongo.Collection) *MessageRepository {
	return &MessageRepository{coll: coll}
}

// ListForUser returns every message the user sent or received, sorted
// ascending by timestamp.
func (r *MessageRepository) ListForUser(ctx context.Context, userID string) ([]*models.Message, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"senderId": userID},
			bson.M{"receiverId": userID},
		},
	}

	cursor, err := r.coll.Find(ctx, filter, findSortedBy("timestamp", 1))
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error listing messages")
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeMessages(ctx, cursor)
}

// ListAll returns every message in the system, sorted ascending by
// timestamp. Admin moderation view only.
func (r *MessageRepository) ListAll(ctx context.Context) ([]*models.Message, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, findSortedBy("timestamp", 1))
	if err != nil {
		logger.Error().Err(err).Msg("Error listing all messages")
		return nil, fmt.Errorf("error listing all messages: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeMessages(ctx, cursor)
}

// Insert stores a new message. The server stamps the timestamp.
// Messages are append-only; there is no update or delete path.
func (r *MessageRepository) Insert(ctx context.Context, msg *models.Message) (*models.Message, error) {
	doc := messageDoc{
		ID:         uuid.New().String(),
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		ItemID:     msg.ItemID,
		Content:    msg.Content,
		ImageURL:   msg.ImageURL,
		Timestamp:  time.Now().UnixMilli(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		logger.Error().Err(err).Msg("Error inserting message")
		return nil, fmt.Errorf("error inserting message: %w", err)
	}

	return doc.toModel(), nil
}

func decodeMessages(ctx context.Context, cursor *mongo.Cursor) ([]*models.Message, error) {
	var docs []messageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding messages: %w", err)
	}

	messages := make([]*models.Message, 0, len(docs))
	for i := range docs {
		messages = append(messages, docs[i].toModel())
	}
	return messages, nil
}
