package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
)

// MessageService defines the interface for direct message operations.
type MessageService interface {
	// ListForUser returns every message the user sent or received,
	// oldest first.
	ListForUser(ctx context.Context, userID string) ([]*models.Message, error)
	// ListAll returns the full message log, oldest first.
	ListAll(ctx context.Context) ([]*models.Message, error)
	// Send appends a new message. Messages are immutable once stored.
	Send(ctx context.Context, msg *models.Message) (*models.Message, error)
}

// messageServiceImpl implements the MessageService interface
type messageServiceImpl struct {
	messages messageStore
}

// NewMessageService creates a new message service instance
func NewMessageService(messages messageStore) MessageService {
	return &messageServiceImpl{messages: messages}
}

func (s *messageServiceImpl) ListForUser(ctx context.Context, userID string) ([]*models.Message, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrValidationFailed)
	}

	msgs, err := s.messages.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving messages: %w", err)
	}
	return msgs, nil
}

func (s *messageServiceImpl) ListAll(ctx context.Context) ([]*models.Message, error) {
	msgs, err := s.messages.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving messages: %w", err)
	}
	return msgs, nil
}

func (s *messageServiceImpl) Send(ctx context.Context, msg *models.Message) (*models.Message, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: message is nil", apperrors.ErrValidationFailed)
	}
	if msg.SenderID == "" || msg.ReceiverID == "" {
		return nil, fmt.Errorf("%w: sender and receiver are required", apperrors.ErrValidationFailed)
	}
	if msg.SenderID == msg.ReceiverID {
		return nil, fmt.Errorf("%w: cannot message yourself", apperrors.ErrValidationFailed)
	}
	// An image attachment alone is a valid message.
	if strings.TrimSpace(msg.Content) == "" && msg.ImageURL == "" {
		return nil, apperrors.ErrEmptyMessage
	}

	sent, err := s.messages.Insert(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("error sending message: %w", err)
	}
	return sent, nil
}
