// Package conversation groups a user's flat message log into
// per-item, per-counterpart threads for an inbox view.
package conversation

import (
	"sort"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
)

// Thread is one conversation: all messages a user exchanged with one
// counterpart about one item.
type Thread struct {
	Key           string            `json:"key"`
	ItemID        string            `json:"itemId"`
	ItemTitle     string            `json:"itemTitle"`
	OtherUserID   string            `json:"otherUserId"`
	OtherUserName string            `json:"otherUserName"`
	LastMessage   string            `json:"lastMessage"`
	LastTimestamp int64             `json:"lastTimestamp"`
	Messages      []*models.Message `json:"messages"`
}

// Group buckets msgs into threads keyed by (item, counterpart) from
// the point of view of userID. Messages not involving userID are
// skipped. Thread history keeps the input order; threads come back
// sorted by most recent activity. items supplies titles and poster
// names; a missing item yields the placeholder title.
func Group(userID string, msgs []*models.Message, items []*models.Item) []*Thread {
	byID := make(map[string]*models.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	threads := make(map[string]*Thread)
	var order []string

	for _, msg := range msgs {
		if !msg.Involves(userID) {
			continue
		}
		other := msg.Counterpart(userID)
		key := msg.ItemID + "_" + other

		t, ok := threads[key]
		if !ok {
			t = &Thread{
				Key:           key,
				ItemID:        msg.ItemID,
				ItemTitle:     "Unknown Item",
				OtherUserID:   other,
				OtherUserName: "AAU User",
			}
			if item, found := byID[msg.ItemID]; found {
				t.ItemTitle = item.Title
				if other == item.PosterID {
					t.OtherUserName = item.PosterName
				}
			}
			if other == models.AdminID {
				t.OtherUserName = models.AdminName
			}
			threads[key] = t
			order = append(order, key)
		}

		t.Messages = append(t.Messages, msg)
		if len(t.Messages) == 1 || msg.Timestamp > t.LastTimestamp {
			t.LastMessage = msg.Content
			t.LastTimestamp = msg.Timestamp
		}
	}

	out := make([]*Thread, 0, len(order))
	for _, key := range order {
		out = append(out, threads[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastTimestamp > out[j].LastTimestamp
	})
	return out
}
