// Package seed provisions the records every deployment starts with:
// the admin desk account and a couple of example reports.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	appModels "github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	appRepos "github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/repositories"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
)

// ExampleItems returns the starter reports shown to a fresh
// deployment before anyone posts. Both the server and the offline
// mirror seed from the same records so the two tiers agree.
func ExampleItems() []*appModels.Item {
	now := time.Now().UnixMilli()
	return []*appModels.Item{
		{
			Title:       "Blue JAMB Result Slip",
			Description: "Found a laminated JAMB slip near the faculty notice board. Name partially visible.",
			Category:    appModels.CategoryDocuments,
			Location:    "Faculty of Law",
			Date:        time.Now().AddDate(0, 0, -2).Format("2006-01-02"),
			Status:      appModels.StatusFound,
			PosterID:    appModels.AdminID,
			PosterName:  appModels.AdminName,
			CreatedAt:   now - 2*24*60*60*1000,
			IsVerified:  true,
		},
		{
			Title:       "Black Tecno Spark 10",
			Description: "Lost my phone around the cafeteria during lunch. Has a cracked screen protector.",
			Category:    appModels.CategoryElectronics,
			Location:    "Cafeteria",
			Date:        time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
			Status:      appModels.StatusLost,
			PosterID:    appModels.AdminID,
			PosterName:  appModels.AdminName,
			CreatedAt:   now - 24*60*60*1000,
			IsVerified:  true,
		},
	}
}

// CreateDefaultData ensures the admin desk account exists and, on a
// completely empty deployment, plants the example reports.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	admin := &appModels.User{
		ID:    appModels.AdminID,
		Name:  appModels.AdminName,
		Email: appModels.AdminEmail,
	}
	if _, err := repos.UserRepository.InsertWithID(ctx, admin); err != nil {
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating admin desk account")
			finalErr = errors.Join(finalErr, err)
		}
	} else {
		lgr.Info().Str("email", appModels.AdminEmail).Msg("Admin desk account created")
	}

	count, err := repos.ItemRepository.Count(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting items for seeding")
		return errors.Join(finalErr, err)
	}
	if count > 0 {
		return finalErr
	}

	for _, item := range ExampleItems() {
		if _, err := repos.ItemRepository.InsertSeed(ctx, item); err != nil {
			lgr.Error().Err(err).Str("title", item.Title).Msg("Error seeding example report")
			finalErr = errors.Join(finalErr, fmt.Errorf("seeding %q: %w", item.Title, err))
		}
	}
	lgr.Info().Int("count", len(ExampleItems())).Msg("Example reports seeded")

	return finalErr
}
