package models

// Message is a directed communication unit tied to an item. Messages
// are immutable once persisted: never edited, never deleted.
type Message struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	ItemID     string `json:"itemId"`
	// Content may be empty only when an image payload is attached.
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
	// Timestamp is epoch milliseconds, stamped at persistence time.
	Timestamp int64 `json:"timestamp"`
}

// Counterpart returns whichever side of the message is not the given
// user.
func (m *Message) Counterpart(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Involves reports whether the user is the sender or the receiver.
func (m *Message) Involves(userID string) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}
