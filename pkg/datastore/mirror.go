package datastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/normalize"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/seed"
)

// File names inside the mirror directory, one per collection plus the
// session and the one-time seed marker.
const (
	itemsFile       = "items.json"
	messagesFile    = "messages.json"
	usersFile       = "users.json"
	sessionFile     = "session.json"
	initializedFile = "initialized"
)

// Mirror is the local fallback tier: per-collection JSON files that
// stand in for the remote API when it is unreachable. It is a
// degraded-mode cache, not a source of truth; concurrent processes
// sharing a directory can race, which mirrors the original contract.
type Mirror struct {
	mu  sync.Mutex
	dir string
}

// NewMirror opens (and creates if needed) a mirror rooted at dir and
// seeds the items collection with the example reports on first use.
func NewMirror(dir string) (*Mirror, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating mirror directory: %w", err)
	}
	m := &Mirror{dir: dir}
	if err := m.seedOnce(); err != nil {
		return nil, err
	}
	return m, nil
}

// seedOnce plants the example reports exactly once per directory. The
// marker file, not the items file, gates seeding so that a user who
// deletes every item does not get the examples back.
func (m *Mirror) seedOnce() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	marker := filepath.Join(m.dir, initializedFile)
	if _, err := os.Stat(marker); err == nil {
		return nil
	}

	items := seed.ExampleItems()
	for _, item := range items {
		item.ID = uuid.New().String()
	}
	if err := m.writeJSON(itemsFile, items); err != nil {
		return err
	}
	if err := os.WriteFile(marker, []byte(time.Now().UTC().Format(time.RFC3339)), 0o644); err != nil {
		return fmt.Errorf("writing seed marker: %w", err)
	}
	return nil
}

func (m *Mirror) readJSON(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func (m *Mirror) writeJSON(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Items returns the mirrored reports, optionally filtered to verified
// ones. Order is newest first by insertion position.
func (m *Mirror) Items(includeUnverified bool) ([]*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []*models.Item
	if err := m.readJSON(itemsFile, &items); err != nil {
		return nil, err
	}
	if includeUnverified {
		return items, nil
	}
	visible := make([]*models.Item, 0, len(items))
	for _, it := range items {
		if it.IsVerified {
			visible = append(visible, it)
		}
	}
	return visible, nil
}

// SaveItem fabricates an id and timestamp, defaults the report to
// unverified and prepends it so the feed stays newest first.
func (m *Mirror) SaveItem(item *models.Item) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []*models.Item
	if err := m.readJSON(itemsFile, &items); err != nil {
		return nil, err
	}

	stored := *item
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UnixMilli()
	stored.IsVerified = false

	items = append([]*models.Item{&stored}, items...)
	if err := m.writeJSON(itemsFile, items); err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateItem applies a partial update. Identity fields and unknown
// keys are dropped, matching the server contract.
func (m *Mirror) UpdateItem(id string, fields map[string]interface{}) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []*models.Item
	if err := m.readJSON(itemsFile, &items); err != nil {
		return nil, err
	}

	for _, it := range items {
		if it.ID != id {
			continue
		}
		applyItemFields(it, fields)
		if err := m.writeJSON(itemsFile, items); err != nil {
			return nil, err
		}
		return it, nil
	}
	return nil, apperrors.ErrItemNotFound
}

// DeleteItem removes a report from the mirror. Deleting an id the
// mirror never held is not an error; the remote copy may simply never
// have been mirrored.
func (m *Mirror) DeleteItem(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []*models.Item
	if err := m.readJSON(itemsFile, &items); err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return m.writeJSON(itemsFile, kept)
}

// FindUserByEmail looks a mirrored account up by normalized email.
func (m *Mirror) FindUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var users []*models.User
	if err := m.readJSON(usersFile, &users); err != nil {
		return nil, err
	}
	email = normalize.Email(email)
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// SaveUser fabricates an id and creation time and appends the account.
// An existing account with the same email is returned as-is.
func (m *Mirror) SaveUser(user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var users []*models.User
	if err := m.readJSON(usersFile, &users); err != nil {
		return nil, err
	}

	email := normalize.Email(user.Email)
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}

	stored := *user
	stored.ID = uuid.New().String()
	stored.Email = email
	stored.Name = strings.TrimSpace(user.Name)
	stored.CreatedAt = time.Now().UTC()

	users = append(users, &stored)
	if err := m.writeJSON(usersFile, users); err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateUser applies a partial profile update to a mirrored account.
func (m *Mirror) UpdateUser(id string, fields map[string]interface{}) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var users []*models.User
	if err := m.readJSON(usersFile, &users); err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.ID != id {
			continue
		}
		applyUserFields(u, fields)
		if err := m.writeJSON(usersFile, users); err != nil {
			return nil, err
		}
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

// Messages returns the mirrored messages involving the user, sorted
// ascending by timestamp like the remote endpoint.
func (m *Mirror) Messages(userID string) ([]*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var msgs []*models.Message
	if err := m.readJSON(messagesFile, &msgs); err != nil {
		return nil, err
	}

	mine := make([]*models.Message, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Involves(userID) {
			mine = append(mine, msg)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Timestamp < mine[j].Timestamp
	})
	return mine, nil
}

// AppendMessage fabricates an id and timestamp and appends. Messages
// are immutable; there is no update path.
func (m *Mirror) AppendMessage(msg *models.Message) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var msgs []*models.Message
	if err := m.readJSON(messagesFile, &msgs); err != nil {
		return nil, err
	}

	stored := *msg
	stored.ID = uuid.New().String()
	stored.Timestamp = time.Now().UnixMilli()

	msgs = append(msgs, &stored)
	if err := m.writeJSON(messagesFile, msgs); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Session returns the persisted session user, or nil when logged out.
func (m *Mirror) Session() (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var user *models.User
	if err := m.readJSON(sessionFile, &user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetSession persists the current user; nil clears the session.
func (m *Mirror) SetSession(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user == nil {
		err := os.Remove(filepath.Join(m.dir, sessionFile))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clearing session: %w", err)
		}
		return nil
	}
	return m.writeJSON(sessionFile, user)
}

// applyItemFields copies the updatable keys of a partial update onto
// an item, ignoring identity fields and unknown keys.
func applyItemFields(it *models.Item, fields map[string]interface{}) {
	for key, raw := range fields {
		switch key {
		case "title":
			if v, ok := raw.(string); ok {
				it.Title = v
			}
		case "description":
			if v, ok := raw.(string); ok {
				it.Description = v
			}
		case "category":
			if v, ok := raw.(string); ok {
				it.Category = models.Category(v)
			}
		case "location":
			if v, ok := raw.(string); ok {
				it.Location = v
			}
		case "date":
			if v, ok := raw.(string); ok {
				it.Date = v
			}
		case "status":
			if v, ok := raw.(string); ok {
				it.Status = models.ItemStatus(v)
			}
		case "imageUrl":
			if v, ok := raw.(string); ok {
				it.ImageURL = v
			}
		case "posterId":
			if v, ok := raw.(string); ok {
				it.PosterID = v
			}
		case "posterName":
			if v, ok := raw.(string); ok {
				it.PosterName = v
			}
		case "isVerified":
			if v, ok := raw.(bool); ok {
				it.IsVerified = v
			}
		}
	}
}

// applyUserFields copies the updatable profile keys onto a user.
func applyUserFields(u *models.User, fields map[string]interface{}) {
	for key, raw := range fields {
		v, ok := raw.(string)
		if !ok {
			continue
		}
		switch key {
		case "name":
			u.Name = v
		case "department":
			u.Department = v
		case "faculty":
			u.Faculty = v
		case "level":
			u.Level = v
		case "studentId":
			u.StudentID = v
		case "phoneNumber":
			u.PhoneNumber = v
		case "bio":
			u.Bio = v
		case "avatarUrl":
			u.AvatarURL = v
		case "preferredMeetingSpot":
			u.PreferredMeetingSpot = v
		case "socialHandle":
			u.SocialHandle = v
		}
	}
}
