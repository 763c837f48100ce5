package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/db"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
)

// integration tests; require MONGODB_URI set externally

func testClient(t *testing.T) *db.Client {
	t.Helper()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set; skipping integration test")
	}

	c, err := db.New(context.Background(), uri, "aau_lost_found_test")
	if err != nil {
		t.Fatalf("db.New failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func TestUserInsertAndFind(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()
	_ = c.Users().Drop(ctx)

	users := NewUserRepository(c.Users())

	created, err := users.Insert(ctx, &models.User{Name: "Ada Obi", Email: "ADA@aau.edu.NG"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.Email != "ada@aau.edu.ng" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}

	// lookup with mixed casing still matches
	found, err := users.FindByEmail(ctx, "  Ada@AAU.edu.ng ")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected id %q, got %q", created.ID, found.ID)
	}
}

func TestUserUpdateStripsIdentityFields(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()
	_ = c.Users().Drop(ctx)

	users := NewUserRepository(c.Users())
	created, err := users.Insert(ctx, &models.User{Name: "Ada Obi", Email: "ada@aau.edu.ng"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	updated, err := users.UpdateFields(ctx, created.ID, map[string]interface{}{
		"bio":   "Final year CS",
		"email": "hijack@example.com",
		"id":    "forged",
	})
	if err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}
	if updated.Bio != "Final year CS" {
		t.Fatalf("expected bio update, got %q", updated.Bio)
	}
	if updated.Email != "ada@aau.edu.ng" {
		t.Fatalf("email must be immutable, got %q", updated.Email)
	}
	if updated.ID != created.ID {
		t.Fatalf("id must be immutable, got %q", updated.ID)
	}
}

func TestItemLifecycle(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()
	_ = c.Items().Drop(ctx)

	items := NewItemRepository(c.Items())

	created, err := items.Insert(ctx, &models.Item{
		Title:       "Black HP Laptop",
		Description: "Left in LT1 after lectures",
		Category:    models.CategoryElectronics,
		Location:    "Faculty of Engineering",
		Status:      models.StatusLost,
		PosterID:    "u-1",
		PosterName:  "Ada Obi",
		IsVerified:  true, // must be ignored
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if created.IsVerified {
		t.Fatal("new items must start unverified")
	}
	if created.CreatedAt == 0 {
		t.Fatal("expected createdAt stamp")
	}

	// unverified items are hidden from the public list
	visible, err := items.List(ctx, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("expected no visible items, got %d", len(visible))
	}

	all, err := items.List(ctx, true)
	if err != nil {
		t.Fatalf("List(all) failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 item, got %d", len(all))
	}

	// verify, then reclaim
	if _, err := items.UpdateFields(ctx, created.ID, map[string]interface{}{"isVerified": true}); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	updated, err := items.UpdateFields(ctx, created.ID, map[string]interface{}{"status": models.StatusReclaimed})
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if updated.Status != models.StatusReclaimed {
		t.Fatalf("expected RECLAIMED, got %q", updated.Status)
	}
	if updated.Title != created.Title || updated.CreatedAt != created.CreatedAt {
		t.Fatal("status update must not alter other fields")
	}

	if err := items.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := items.Delete(ctx, created.ID); err != apperrors.ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound on second delete, got %v", err)
	}
}

func TestMessagesAreAppendOnly(t *testing.T) {
	c := testClient(t)
	ctx := context.Background()
	_ = c.Messages().Drop(ctx)

	msgs := NewMessageRepository(c.Messages())

	first, err := msgs.Insert(ctx, &models.Message{SenderID: "u-1", ReceiverID: "u-2", ItemID: "i-1", Content: "Is this still with you?"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	second, err := msgs.Insert(ctx, &models.Message{SenderID: "u-1", ReceiverID: "u-2", ItemID: "i-1", Content: "Is this still with you?"})
	if err != nil {
		t.Fatalf("Insert 2 failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("identical payloads must not collapse into one message")
	}

	list, err := msgs.ListForUser(ctx, "u-2")
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(list))
	}
	if list[0].Timestamp > list[1].Timestamp {
		t.Fatal("messages must come back ascending by timestamp")
	}

	// a bystander sees nothing
	none, err := msgs.ListForUser(ctx, "u-3")
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no messages for uninvolved user, got %d", len(none))
	}
}
