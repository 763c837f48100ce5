// Package repositories implements the MongoDB persistence layer.
package repositories

import (
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/db"
)

// Repositories bundles every repository for dependency injection.
type Repositories struct {
	UserRepository    *UserRepository
	ItemRepository    *ItemRepository
	MessageRepository *MessageRepository
}

// NewRepositories creates all repositories over the shared client.
func NewRepositories(client *db.Client) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(client.Users()),
		ItemRepository:    NewItemRepository(client.Items()),
		MessageRepository: NewMessageRepository(client.Messages()),
	}
}

// filterFields keeps only the allowed keys of a partial-update payload.
// Everything else, identity fields included, is silently dropped.
func filterFields(fields map[string]interface{}, allowed []string) map[string]interface{} {
	set := make(map[string]interface{}, len(fields))
	for _, key := range allowed {
		if v, ok := fields[key]; ok {
			set[key] = v
		}
	}
	return set
}

func findOneAndUpdateAfter() options.Lister[options.FindOneAndUpdateOptions] {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func findSortedBy(field string, dir int) options.Lister[options.FindOptions] {
	return options.Find().SetSort(map[string]int{field: dir})
}
