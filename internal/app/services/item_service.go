package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
)

// ItemService defines the interface for lost/found report operations.
type ItemService interface {
	// List returns items newest first; all=false filters to verified.
	List(ctx context.Context, all bool) ([]*models.Item, error)
	// Create validates and stores a new report. Reports always start
	// unverified, whatever the payload claims.
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	// Update applies a generic partial update.
	Update(ctx context.Context, itemID string, fields map[string]interface{}) (*models.Item, error)
	// UpdateStatus is a convenience wrapper over Update setting status.
	UpdateStatus(ctx context.Context, itemID string, status models.ItemStatus) (*models.Item, error)
	// UpdateStatusAsOwner changes a report's status on behalf of its
	// poster. Callers who did not post the report are rejected; any
	// other field requires the admin surface.
	UpdateStatusAsOwner(ctx context.Context, requesterID, itemID string, status models.ItemStatus) (*models.Item, error)
	// Verify is a convenience wrapper over Update setting isVerified.
	Verify(ctx context.Context, itemID string, verified bool) (*models.Item, error)
	// Delete removes a report permanently.
	Delete(ctx context.Context, itemID string) error
}

// itemServiceImpl implements the ItemService interface
type itemServiceImpl struct {
	items itemStore
}

// NewItemService creates a new item service instance
func NewItemService(items itemStore) ItemService {
	return &itemServiceImpl{items: items}
}

// validateItem validates report data before persistence
func validateItem(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(item.Description) == "" {
		return fmt.Errorf("%w: description cannot be empty", apperrors.ErrValidationFailed)
	}
	if item.PosterID == "" {
		return fmt.Errorf("%w: poster id is required", apperrors.ErrValidationFailed)
	}
	if !item.Category.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidCategory, item.Category)
	}
	if !item.Status.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, item.Status)
	}
	return nil
}

func (s *itemServiceImpl) List(ctx context.Context, all bool) ([]*models.Item, error) {
	items, err := s.items.List(ctx, all)
	if err != nil {
		return nil, fmt.Errorf("error retrieving items: %w", err)
	}
	return items, nil
}

func (s *itemServiceImpl) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	created, err := s.items.Insert(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating item: %w", err)
	}
	return created, nil
}

func (s *itemServiceImpl) Update(ctx context.Context, itemID string, fields map[string]interface{}) (*models.Item, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: item id is required", apperrors.ErrValidationFailed)
	}

	if raw, ok := fields["status"]; ok {
		status, isString := raw.(string)
		if !isString || !models.ItemStatus(status).Valid() {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidStatus, raw)
		}
	}
	if raw, ok := fields["category"]; ok {
		category, isString := raw.(string)
		if !isString || !models.Category(category).Valid() {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCategory, raw)
		}
	}

	updated, err := s.items.UpdateFields(ctx, itemID, fields)
	if err != nil {
		if errors.Is(err, apperrors.ErrItemNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("error updating item: %w", err)
	}
	return updated, nil
}

func (s *itemServiceImpl) UpdateStatus(ctx context.Context, itemID string, status models.ItemStatus) (*models.Item, error) {
	return s.Update(ctx, itemID, map[string]interface{}{"status": string(status)})
}

func (s *itemServiceImpl) UpdateStatusAsOwner(ctx context.Context, requesterID, itemID string, status models.ItemStatus) (*models.Item, error) {
	if requesterID == "" {
		return nil, fmt.Errorf("%w: requester id is required", apperrors.ErrValidationFailed)
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrItemNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("error loading item: %w", err)
	}
	if item.PosterID != requesterID {
		return nil, fmt.Errorf("%w: only the poster may change this report's status", apperrors.ErrPermissionDenied)
	}

	return s.UpdateStatus(ctx, itemID, status)
}

func (s *itemServiceImpl) Verify(ctx context.Context, itemID string, verified bool) (*models.Item, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: item id is required", apperrors.ErrValidationFailed)
	}

	updated, err := s.items.UpdateFields(ctx, itemID, map[string]interface{}{"isVerified": verified})
	if err != nil {
		if errors.Is(err, apperrors.ErrItemNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("error verifying item: %w", err)
	}
	return updated, nil
}

func (s *itemServiceImpl) Delete(ctx context.Context, itemID string) error {
	if itemID == "" {
		return fmt.Errorf("%w: item id is required", apperrors.ErrValidationFailed)
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		if errors.Is(err, apperrors.ErrItemNotFound) {
			return apperrors.ErrItemNotFound
		}
		return fmt.Errorf("error deleting item: %w", err)
	}
	return nil
}
