// Package services holds the business rules between the HTTP
// controllers and the repositories.
package services

import (
	"context"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/repositories"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/auth"
)

// userStore is the slice of the user repository the services consume.
type userStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

// itemStore is the slice of the item repository the services consume.
type itemStore interface {
	List(ctx context.Context, all bool) ([]*models.Item, error)
	FindByID(ctx context.Context, id string) (*models.Item, error)
	Insert(ctx context.Context, item *models.Item) (*models.Item, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Item, error)
	Delete(ctx context.Context, id string) error
}

// messageStore is the slice of the message repository the services consume.
type messageStore interface {
	ListForUser(ctx context.Context, userID string) ([]*models.Message, error)
	ListAll(ctx context.Context) ([]*models.Message, error)
	Insert(ctx context.Context, msg *models.Message) (*models.Message, error)
}

// Services bundles every service for dependency injection.
type Services struct {
	AuthService    AuthService
	ItemService    ItemService
	MessageService MessageService
}

// NewServices wires all services over the repositories.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	return &Services{
		AuthService:    NewAuthService(repos.UserRepository, jwtService),
		ItemService:    NewItemService(repos.ItemRepository),
		MessageService: NewMessageService(repos.MessageRepository),
	}
}
