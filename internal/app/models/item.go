package models

// Item is a lost/found report. PosterName is a denormalized snapshot
// of the poster's display name taken at creation time; later profile
// renames do not retroactively update it.
type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Location    string     `json:"location"`
	Date        string     `json:"date"`
	Status      ItemStatus `json:"status"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	PosterID    string     `json:"posterId"`
	PosterName  string     `json:"posterName"`
	// CreatedAt is epoch milliseconds, stamped by whichever tier
	// persisted the item.
	CreatedAt int64 `json:"createdAt"`
	// IsVerified gates visibility in the public feed. New items always
	// start unverified; only an admin flips it.
	IsVerified bool `json:"isVerified"`
}

// ItemFieldKeys lists the item fields a partial update may touch.
// Identity fields (id, createdAt) are never updatable.
var ItemFieldKeys = []string{
	"title",
	"description",
	"category",
	"location",
	"date",
	"status",
	"imageUrl",
	"posterId",
	"posterName",
	"isVerified",
}
