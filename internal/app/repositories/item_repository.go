package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/logger"
)

// itemDoc maps to the items collection.
type itemDoc struct {
	ID          string            `bson:"_id"`
	Title       string            `bson:"title"`
	Description string            `bson:"description"`
	Category    models.Category   `bson:"category"`
	Location    string            `bson:"location"`
	Date        string            `bson:"date,omitempty"`
	Status      models.ItemStatus `bson:"status"`
	ImageURL    string            `bson:"imageUrl,omitempty"`
	PosterID    string            `bson:"posterId"`
	PosterName  string            `bson:"posterName"`
	CreatedAt   int64             `bson:"createdAt"`
	IsVerified  bool              `bson:"isVerified"`
}

func (d *itemDoc) toModel() *models.Item {
	return &models.Item{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Location:    d.Location,
		Date:        d.Date,
		Status:      d.Status,
		ImageURL:    d.ImageURL,
		PosterID:    d.PosterID,
		PosterName:  d.PosterName,
		CreatedAt:   d.CreatedAt,
		IsVerified:  d.IsVerified,
	}
}

// ItemRepository handles item database operations.
type ItemRepository struct {
	coll *mongo.Collection
}

// NewItemRepository creates a new ItemRepository over the items collection.
func NewItemRepository(coll *mongo.Collection) *ItemRepository {
	return &ItemRepository{coll: coll}
}

// List returns items newest first. When all is false only verified
// items are returned.
func (r *ItemRepository) List(ctx context.Context, all bool) ([]*models.Item, error) {
	filter := bson.M{}
	if !all {
		filter["isVerified"] = true
	}

	cursor, err := r.coll.Find(ctx, filter, findSortedBy("createdAt", -1))
	if err != nil {
		logger.Error().Err(err).Msg("Error listing items")
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []itemDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding items: %w", err)
	}

	items := make([]*models.Item, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toModel())
	}
	return items, nil
}

// FindByID looks an item up by id.
func (r *ItemRepository) FindByID(ctx context.Context, id string) (*models.Item, error) {
	var doc itemDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrItemNotFound
		}
		logger.Error().Err(err).Str("itemID", id).Msg("Error finding item")
		return nil, fmt.Errorf("error finding item: %w", err)
	}
	return doc.toModel(), nil
}

// Insert stores a new item. The server stamps createdAt and forces the
// report to start unverified regardless of the payload.
func (r *ItemRepository) Insert(ctx context.Context, item *models.Item) (*models.Item, error) {
	doc := itemDoc{
		ID:          uuid.New().String(),
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Location:    item.Location,
		Date:        item.Date,
		Status:      item.Status,
		ImageURL:    item.ImageURL,
		PosterID:    item.PosterID,
		PosterName:  item.PosterName,
		CreatedAt:   time.Now().UnixMilli(),
		IsVerified:  false,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		logger.Error().Err(err).Msg("Error inserting item")
		return nil, fmt.Errorf("error inserting item: %w", err)
	}

	return doc.toModel(), nil
}

// InsertSeed stores a starter report keeping its timestamps and
// verification flag. Only the seeder uses this path.
func (r *ItemRepository) InsertSeed(ctx context.Context, item *models.Item) (*models.Item, error) {
	doc := itemDoc{
		ID:          uuid.New().String(),
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Location:    item.Location,
		Date:        item.Date,
		Status:      item.Status,
		ImageURL:    item.ImageURL,
		PosterID:    item.PosterID,
		PosterName:  item.PosterName,
		CreatedAt:   item.CreatedAt,
		IsVerified:  item.IsVerified,
	}
	if doc.CreatedAt == 0 {
		doc.CreatedAt = time.Now().UnixMilli()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("error inserting seed item: %w", err)
	}

	return doc.toModel(), nil
}

// UpdateFields applies a partial update to an item. Identity fields
// (id, _id, createdAt) are stripped before applying.
func (r *ItemRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Item, error) {
	set := filterFields(fields, models.ItemFieldKeys)
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var doc itemDoc
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		findOneAndUpdateAfter(),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrItemNotFound
		}
		logger.Error().Err(err).Str("itemID", id).Msg("Error updating item")
		return nil, fmt.Errorf("error updating item: %w", err)
	}
	return doc.toModel(), nil
}

// Delete removes an item permanently.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Error().Err(err).Str("itemID", id).Msg("Error deleting item")
		return fmt.Errorf("error deleting item: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrItemNotFound
	}
	return nil
}

// Count returns the number of stored items.
func (r *ItemRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error counting items: %w", err)
	}
	return n, nil
}
