package models

import "time"

// User defines an account on the platform. Email is stored normalized
// (lower-case, trimmed) and is unique across accounts.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`

	// Optional profile fields, editable after signup.
	Department           string `json:"department,omitempty"`
	Faculty              string `json:"faculty,omitempty"`
	Level                string `json:"level,omitempty"`
	StudentID            string `json:"studentId,omitempty"`
	PhoneNumber          string `json:"phoneNumber,omitempty"`
	Bio                  string `json:"bio,omitempty"`
	AvatarURL            string `json:"avatarUrl,omitempty"`
	PreferredMeetingSpot string `json:"preferredMeetingSpot,omitempty"`
	SocialHandle         string `json:"socialHandle,omitempty"`
}

// IsAdmin reports whether this user is the admin desk account.
func (u *User) IsAdmin() bool {
	return u.ID == AdminID || u.Email == AdminEmail
}

// ProfileFieldKeys lists the user fields a partial update may touch.
// Identity fields (id, email, createdAt) are never updatable.
var ProfileFieldKeys = []string{
	"name",
	"department",
	"faculty",
	"level",
	"studentId",
	"phoneNumber",
	"bio",
	"avatarUrl",
	"preferredMeetingSpot",
	"socialHandle",
}
