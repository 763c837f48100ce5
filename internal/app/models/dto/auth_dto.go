package dto

import "github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"

// AuthAction selects the operation carried by POST /api/auth.
type AuthAction string

const (
	ActionSignup AuthAction = "signup"
	ActionLogin  AuthAction = "login"
	ActionUpdate AuthAction = "update"
)

// AuthRequest is the single body shape of POST /api/auth; the action
// field selects signup, login or profile update.
type AuthRequest struct {
	Action AuthAction             `json:"action" binding:"required"`
	Email  string                 `json:"email"`
	Name   string                 `json:"name,omitempty"`
	UserID string                 `json:"userId,omitempty"`
	Updates map[string]interface{} `json:"updates,omitempty"`
}

// AuthResponse carries the authenticated user and their session token.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token,omitempty"`
}
