package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/auth"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/normalize"
)

// fakeUserStore is an in-memory userStore for unit tests.
type fakeUserStore struct {
	users       map[string]*models.User
	insertRaces int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	email = normalize.Email(email)
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	if f.insertRaces > 0 {
		// Simulate a concurrent signup winning between the existence
		// check and the insert.
		f.insertRaces--
		f.users["race-winner"] = &models.User{
			ID:        "race-winner",
			Name:      "Racer",
			Email:     normalize.Email(user.Email),
			CreatedAt: time.Now(),
		}
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if _, err := f.FindByEmail(ctx, user.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	stored := *user
	stored.ID = uuid.New().String()
	stored.Email = normalize.Email(user.Email)
	stored.CreatedAt = time.Now()
	f.users[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeUserStore) UpdateFields(_ context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["department"].(string); ok {
		u.Department = v
	}
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeItemStore is an in-memory itemStore for unit tests.
type fakeItemStore struct {
	items []*models.Item
}

func (f *fakeItemStore) List(_ context.Context, all bool) ([]*models.Item, error) {
	out := make([]*models.Item, 0, len(f.items))
	for _, it := range f.items {
		if !all && !it.IsVerified {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (f *fakeItemStore) FindByID(_ context.Context, id string) (*models.Item, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, apperrors.ErrItemNotFound
}

func (f *fakeItemStore) Insert(_ context.Context, item *models.Item) (*models.Item, error) {
	stored := *item
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UnixMilli()
	stored.IsVerified = false
	f.items = append(f.items, &stored)
	return &stored, nil
}

func (f *fakeItemStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Item, error) {
	it, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := fields["status"].(string); ok {
		it.Status = models.ItemStatus(v)
	}
	if v, ok := fields["isVerified"].(bool); ok {
		it.IsVerified = v
	}
	if v, ok := fields["title"].(string); ok {
		it.Title = v
	}
	return it, nil
}

func (f *fakeItemStore) Delete(_ context.Context, id string) error {
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrItemNotFound
}

// fakeMessageStore is an in-memory messageStore for unit tests.
type fakeMessageStore struct {
	messages []*models.Message
}

func (f *fakeMessageStore) ListForUser(_ context.Context, userID string) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range f.messages {
		if m.Involves(userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) ListAll(_ context.Context) ([]*models.Message, error) {
	return append([]*models.Message(nil), f.messages...), nil
}

func (f *fakeMessageStore) Insert(_ context.Context, msg *models.Message) (*models.Message, error) {
	stored := *msg
	stored.ID = uuid.New().String()
	stored.Timestamp = time.Now().UnixMilli()
	f.messages = append(f.messages, &stored)
	return &stored, nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "unit-test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "aau-found-it",
	})
}

func TestSignupCreatesAccount(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, testJWTService())

	user, token, err := svc.Signup(context.Background(), "Ada Obi", "  Ada.Obi@AAU.edu.ng ")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada.obi@aau.edu.ng", user.Email)
	assert.Equal(t, "Ada Obi", user.Name)
	assert.NotEmpty(t, token)
}

func TestSignupIsIdempotent(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, testJWTService())

	first, _, err := svc.Signup(context.Background(), "Ada Obi", "ada@aau.edu.ng")
	require.NoError(t, err)

	// Same email with a different name must return the existing
	// account untouched, never a duplicate.
	second, token, err := svc.Signup(context.Background(), "Somebody Else", "ADA@aau.edu.ng")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ada Obi", second.Name)
	assert.NotEmpty(t, token)
	assert.Len(t, store.users, 1)
}

func TestSignupResolvesInsertRace(t *testing.T) {
	store := newFakeUserStore()
	store.insertRaces = 1
	svc := NewAuthService(store, testJWTService())

	user, _, err := svc.Signup(context.Background(), "Ada Obi", "ada@aau.edu.ng")
	require.NoError(t, err)
	assert.Equal(t, "race-winner", user.ID)
}

func TestSignupValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), testJWTService())

	_, _, err := svc.Signup(context.Background(), "   ", "ada@aau.edu.ng")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, _, err = svc.Signup(context.Background(), "Ada Obi", "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), testJWTService())

	_, _, err := svc.Login(context.Background(), "ghost@aau.edu.ng")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLoginNormalizesEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, testJWTService())

	created, _, err := svc.Signup(context.Background(), "Ada Obi", "ada@aau.edu.ng")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "  ADA@AAU.EDU.NG ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)
}

func validTestItem() *models.Item {
	return &models.Item{
		Title:       "Black HP Laptop",
		Description: "Left at the ICT Centre reading room",
		Category:    models.CategoryElectronics,
		Location:    "ICT Centre",
		Date:        "2026-08-20",
		Status:      models.StatusLost,
		PosterID:    "user-1",
		PosterName:  "Ada Obi",
	}
}

func TestCreateItemStartsUnverified(t *testing.T) {
	store := &fakeItemStore{}
	svc := NewItemService(store)

	item := validTestItem()
	item.IsVerified = true // must be ignored

	created, err := svc.Create(context.Background(), item)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsVerified)
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewItemService(&fakeItemStore{})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.Item)
		want   error
	}{
		{"empty title", func(i *models.Item) { i.Title = "  " }, apperrors.ErrValidationFailed},
		{"empty description", func(i *models.Item) { i.Description = "" }, apperrors.ErrValidationFailed},
		{"missing poster", func(i *models.Item) { i.PosterID = "" }, apperrors.ErrValidationFailed},
		{"bad category", func(i *models.Item) { i.Category = "Gadgets" }, apperrors.ErrInvalidCategory},
		{"bad status", func(i *models.Item) { i.Status = "MISSING" }, apperrors.ErrInvalidStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := validTestItem()
			tc.mutate(item)
			_, err := svc.Create(ctx, item)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestListFiltersUnverified(t *testing.T) {
	store := &fakeItemStore{}
	svc := NewItemService(store)
	ctx := context.Background()

	pending, err := svc.Create(ctx, validTestItem())
	require.NoError(t, err)
	approved, err := svc.Create(ctx, validTestItem())
	require.NoError(t, err)
	_, err = svc.Verify(ctx, approved.ID, true)
	require.NoError(t, err)

	visible, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, approved.ID, visible[0].ID)

	everything, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, everything, 2)

	ids := make([]string, 0, len(everything))
	for _, it := range everything {
		ids = append(ids, it.ID)
	}
	assert.Contains(t, ids, pending.ID)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	store := &fakeItemStore{}
	svc := NewItemService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, validTestItem())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, map[string]interface{}{"status": "VANISHED"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	updated, err := svc.UpdateStatus(ctx, created.ID, models.StatusReclaimed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReclaimed, updated.Status)
}

func TestPosterReclaimsOwnReport(t *testing.T) {
	store := &fakeItemStore{}
	svc := NewItemService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, validTestItem())
	require.NoError(t, err)

	updated, err := svc.UpdateStatusAsOwner(ctx, created.PosterID, created.ID, models.StatusReclaimed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReclaimed, updated.Status)
}

func TestStatusChangeByStrangerIsDenied(t *testing.T) {
	store := &fakeItemStore{}
	svc := NewItemService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, validTestItem())
	require.NoError(t, err)

	_, err = svc.UpdateStatusAsOwner(ctx, "someone-else", created.ID, models.StatusReclaimed)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	fetched, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Status, fetched.Status)
}

func TestDeleteItem(t *testing.T) {
	store := &fakeItemStore{}
	svc := NewItemService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, validTestItem())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), apperrors.ErrItemNotFound)
}

func TestSendMessageValidation(t *testing.T) {
	svc := NewMessageService(&fakeMessageStore{})
	ctx := context.Background()

	_, err := svc.Send(ctx, &models.Message{SenderID: "a", ReceiverID: "b", Content: "   "})
	assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)

	_, err = svc.Send(ctx, &models.Message{SenderID: "a", ReceiverID: "a", Content: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Send(ctx, &models.Message{SenderID: "a", Content: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Image-only messages are fine.
	sent, err := svc.Send(ctx, &models.Message{SenderID: "a", ReceiverID: "b", ImageURL: "data:image/png;base64,xyz"})
	require.NoError(t, err)
	assert.NotEmpty(t, sent.ID)
}

func TestListForUserOnlyReturnsOwnThreads(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Send(ctx, &models.Message{
			SenderID:   "ada",
			ReceiverID: "bayo",
			ItemID:     "item-1",
			Content:    fmt.Sprintf("message %d", i),
		})
		require.NoError(t, err)
	}
	_, err := svc.Send(ctx, &models.Message{SenderID: "chidi", ReceiverID: "dara", Content: "unrelated"})
	require.NoError(t, err)

	msgs, err := svc.ListForUser(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for _, m := range msgs {
		assert.True(t, m.Involves("ada"))
		assert.False(t, strings.Contains(m.Content, "unrelated"))
	}

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
