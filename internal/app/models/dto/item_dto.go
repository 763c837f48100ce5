package dto

import (
	"encoding/json"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
)

// CreateItemRequest is the body of POST /api/items.
type CreateItemRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Category    models.Category   `json:"category" binding:"required"`
	Location    string            `json:"location" binding:"required"`
	Date        string            `json:"date,omitempty"`
	Status      models.ItemStatus `json:"status" binding:"required"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	PosterID    string            `json:"posterId" binding:"required"`
	PosterName  string            `json:"posterName" binding:"required"`
}

// UpdateItemRequest is the body of PUT /api/items: a target id plus a
// free-form partial update. Identity fields in the payload are
// stripped server-side.
type UpdateItemRequest struct {
	ItemID string                 `json:"itemId" binding:"required"`
	Fields map[string]interface{} `json:"-"`
}

// UnmarshalJSON splits the target id from the remaining keys, which
// all become part of the partial update.
func (r *UpdateItemRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if id, ok := raw["itemId"].(string); ok {
		r.ItemID = id
	}
	delete(raw, "itemId")
	r.Fields = raw
	return nil
}

// VerifyItemRequest is the body of PATCH /api/items.
type VerifyItemRequest struct {
	ItemID     string `json:"itemId" binding:"required"`
	IsVerified bool   `json:"isVerified"`
}

// SendMessageRequest is the body of POST /api/messages.
type SendMessageRequest struct {
	SenderID   string `json:"senderId" binding:"required"`
	ReceiverID string `json:"receiverId" binding:"required"`
	ItemID     string `json:"itemId" binding:"required"`
	Content    string `json:"content"`
	ImageURL   string `json:"imageUrl,omitempty"`
}
