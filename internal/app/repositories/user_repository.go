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
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/normalize"
)

// userDoc maps to the users collection. Ids are uuid strings rather
// than ObjectIDs so the admin desk account can keep its well-known id
// and the offline mirror can fabricate compatible ones.
type userDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	CreatedAt time.Time `bson:"createdAt"`

	Department           string `bson:"department,omitempty"`
	Faculty              string `bson:"faculty,omitempty"`
	Level                string `bson:"level,omitempty"`
	StudentID            string `bson:"studentId,omitempty"`
	PhoneNumber          string `bson:"phoneNumber,omitempty"`
	Bio                  string `bson:"bio,omitempty"`
	AvatarURL            string `bson:"avatarUrl,omitempty"`
	PreferredMeetingSpot string `bson:"preferredMeetingSpot,omitempty"`
	SocialHandle         string `bson:"socialHandle,omitempty"`
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:                   d.ID,
		Name:                 d.Name,
		Email:                d.Email,
		CreatedAt:            d.CreatedAt,
		Department:           d.Department,
		Faculty:              d.Faculty,
		Level:                d.Level,
		StudentID:            d.StudentID,
		PhoneNumber:          d.PhoneNumber,
		Bio:                  d.Bio,
		AvatarURL:            d.AvatarURL,
		PreferredMeetingSpot: d.PreferredMeetingSpot,
		SocialHandle:         d.SocialHandle,
	}
}

// UserRepository handles user database operations.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository over the users collection.
func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

// FindByEmail looks a user up by normalized email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", normalize.Email(email)).Msg("Error finding user by email")
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return doc.toModel(), nil
}

// FindByID looks a user up by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("userID", id).Msg("Error finding user by id")
		return nil, fmt.Errorf("error finding user by id: %w", err)
	}
	return doc.toModel(), nil
}

// Insert stores a new user and returns it with the generated id and
// creation timestamp filled in. The email is stored normalized.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	doc := userDoc{
		ID:                   uuid.New().String(),
		Name:                 user.Name,
		Email:                normalize.Email(user.Email),
		CreatedAt:            time.Now().UTC(),
		Department:           user.Department,
		Faculty:              user.Faculty,
		Level:                user.Level,
		StudentID:            user.StudentID,
		PhoneNumber:          user.PhoneNumber,
		Bio:                  user.Bio,
		AvatarURL:            user.AvatarURL,
		PreferredMeetingSpot: user.PreferredMeetingSpot,
		SocialHandle:         user.SocialHandle,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error inserting user")
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return doc.toModel(), nil
}

// InsertWithID stores a user keeping the caller-supplied id. Used to
// provision well-known accounts such as the admin desk.
func (r *UserRepository) InsertWithID(ctx context.Context, user *models.User) (*models.User, error) {
	doc := userDoc{
		ID:        user.ID,
		Name:      user.Name,
		Email:     normalize.Email(user.Email),
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return doc.toModel(), nil
}

// UpdateFields applies a partial update to a user. Identity fields
// (id, email, createdAt) are stripped before applying; unknown keys
// are dropped.
func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	set := filterFields(fields, models.ProfileFieldKeys)
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var doc userDoc
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		findOneAndUpdateAfter(),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("userID", id).Msg("Error updating user")
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return doc.toModel(), nil
}

// List returns every registered user, newest first.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, findSortedBy("createdAt", -1))
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}

	users := make([]*models.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toModel())
	}
	return users, nil
}
