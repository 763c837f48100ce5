package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/pkg/conversation"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/pkg/datastore"
)

type app struct {
	store *datastore.Store
}

func (a *app) execute(input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	args := strings.Fields(input)
	cmd := strings.ToLower(args[0])
	rest := args[1:]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd {
	case "signup":
		a.signup(ctx, rest)
	case "login":
		a.login(ctx, rest)
	case "logout":
		a.store.Logout()
		fmt.Println("Logged out.")
	case "whoami":
		a.whoami()
	case "items":
		a.items(ctx, rest)
	case "post":
		a.post(ctx)
	case "reclaim":
		a.reclaim(ctx, rest)
	case "inbox":
		a.inbox(ctx)
	case "chat":
		a.chat(ctx, rest)
	case "profile":
		a.profile(ctx, rest)
	case "admin":
		a.admin(ctx, rest)
	case "help":
		printHelp()
	case "exit", "quit":
		fmt.Println("Bye.")
		os.Exit(0)
	default:
		fmt.Println("Unknown command. Type 'help' for a list of commands.")
	}
}

func (a *app) signup(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: signup <name...> <email>")
		return
	}
	email := args[len(args)-1]
	name := strings.Join(args[:len(args)-1], " ")

	user, tier, err := a.store.Signup(ctx, name, email)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Signed in as %s <%s>%s\n", user.Name, user.Email, offlineNote(tier))
}

func (a *app) login(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: login <email>")
		return
	}

	user, tier, err := a.store.Login(ctx, args[0])
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Welcome back, %s%s\n", user.Name, offlineNote(tier))
}

func (a *app) whoami() {
	user := a.store.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in.")
		return
	}
	fmt.Printf("%s <%s> id=%s\n", user.Name, user.Email, user.ID)
	if user.Department != "" {
		fmt.Printf("Department: %s\n", user.Department)
	}
}

func (a *app) items(ctx context.Context, args []string) {
	all := len(args) > 0 && args[0] == "all"

	items, tier, err := a.store.Items(ctx, all)
	if err != nil {
		printError(err)
		return
	}
	if len(items) == 0 {
		fmt.Println("No reports yet.")
		return
	}
	if tier == datastore.TierMirror {
		fmt.Println("(offline: showing locally mirrored reports)")
	}

	for _, it := range items {
		badge := " "
		if !it.IsVerified {
			badge = "?"
		}
		when := time.UnixMilli(it.CreatedAt).Format("Jan 02")
		fmt.Printf("[%s] %-6s %-30s %-14s %s  id=%s\n", badge, it.Status, truncate(it.Title, 30), it.Location, when, it.ID)
	}
}

func (a *app) post(ctx context.Context) {
	user := a.store.CurrentUser()
	if user == nil {
		fmt.Println("Log in first.")
		return
	}

	reader := bufio.NewReader(os.Stdin)
	title := promptLine(reader, "Title: ")
	description := promptLine(reader, "Description: ")

	fmt.Printf("Categories: %s\n", joinCategories())
	category := promptLine(reader, "Category: ")
	location := promptLine(reader, "Location: ")
	status := strings.ToUpper(promptLine(reader, "Status (LOST/FOUND): "))

	item := &models.Item{
		Title:       title,
		Description: description,
		Category:    models.Category(category),
		Location:    location,
		Date:        time.Now().Format("2006-01-02"),
		Status:      models.ItemStatus(status),
		PosterID:    user.ID,
		PosterName:  user.Name,
	}

	saved, tier, err := a.store.SaveItem(ctx, item)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Report submitted (id=%s). It will appear in the feed once the desk verifies it.%s\n", saved.ID, offlineNote(tier))
}

func (a *app) reclaim(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: reclaim <itemId>")
		return
	}
	if a.store.CurrentUser() == nil {
		fmt.Println("Log in first.")
		return
	}

	item, tier, err := a.store.UpdateItemStatus(ctx, args[0], models.StatusReclaimed)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("%q marked reclaimed.%s\n", item.Title, offlineNote(tier))
}

func (a *app) inbox(ctx context.Context) {
	user := a.store.CurrentUser()
	if user == nil {
		fmt.Println("Log in first.")
		return
	}

	msgs, _, err := a.store.Messages(ctx, user.ID)
	if err != nil {
		printError(err)
		return
	}
	items, _, err := a.store.Items(ctx, true)
	if err != nil {
		printError(err)
		return
	}

	threads := conversation.Group(user.ID, msgs, items)
	if len(threads) == 0 {
		fmt.Println("No conversations yet.")
		return
	}

	for _, th := range threads {
		when := time.UnixMilli(th.LastTimestamp).Format("Jan 02 15:04")
		fmt.Printf("%-25s with %-20s %s  %s\n", truncate(th.ItemTitle, 25), th.OtherUserName, when, truncate(th.LastMessage, 40))
		fmt.Printf("    open with: chat %s %s\n", th.ItemID, th.OtherUserID)
	}
}

func (a *app) chat(ctx context.Context, args []string) {
	user := a.store.CurrentUser()
	if user == nil {
		fmt.Println("Log in first.")
		return
	}
	if len(args) != 2 {
		fmt.Println("Usage: chat <itemId> <userId>")
		return
	}
	itemID, otherID := args[0], args[1]

	msgs, _, err := a.store.MessagesForItem(ctx, user.ID, itemID)
	if err != nil {
		printError(err)
		return
	}
	for _, msg := range msgs {
		if msg.Counterpart(user.ID) != otherID && msg.SenderID != user.ID {
			continue
		}
		who := "them"
		if msg.SenderID == user.ID {
			who = "you"
		}
		fmt.Printf("[%s] %s: %s\n", time.UnixMilli(msg.Timestamp).Format("15:04"), who, msg.Content)
	}

	reader := bufio.NewReader(os.Stdin)
	text := promptLine(reader, "Message (empty to cancel): ")
	if text == "" {
		return
	}

	_, tier, err := a.store.SendMessage(ctx, &models.Message{
		SenderID:   user.ID,
		ReceiverID: otherID,
		ItemID:     itemID,
		Content:    text,
	})
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Sent.%s\n", offlineNote(tier))
}

func (a *app) profile(ctx context.Context, args []string) {
	user := a.store.CurrentUser()
	if user == nil {
		fmt.Println("Log in first.")
		return
	}

	if len(args) == 0 {
		a.whoami()
		fmt.Println("Edit with: profile <field> <value...>  (fields: name, department, faculty, level, studentId, phoneNumber, bio, preferredMeetingSpot, socialHandle)")
		return
	}
	if len(args) < 2 {
		fmt.Println("Usage: profile <field> <value...>")
		return
	}

	field := args[0]
	value := strings.Join(args[1:], " ")

	updated, tier, err := a.store.UpdateUser(ctx, user.ID, map[string]interface{}{field: value})
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Profile updated for %s.%s\n", updated.Name, offlineNote(tier))
}

func (a *app) admin(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: admin pending | approve <itemId> | reject <itemId> | users")
		return
	}

	switch args[0] {
	case "pending":
		items, _, err := a.store.Items(ctx, true)
		if err != nil {
			printError(err)
			return
		}
		count := 0
		for _, it := range items {
			if it.IsVerified {
				continue
			}
			count++
			fmt.Printf("%-30s by %-20s id=%s\n", truncate(it.Title, 30), it.PosterName, it.ID)
		}
		if count == 0 {
			fmt.Println("No reports awaiting verification.")
		}
	case "approve":
		if len(args) != 2 {
			fmt.Println("Usage: admin approve <itemId>")
			return
		}
		item, _, err := a.store.VerifyItem(ctx, args[1], true)
		if err != nil {
			printError(err)
			return
		}
		fmt.Printf("%q is now live in the feed.\n", item.Title)
	case "reject":
		if len(args) != 2 {
			fmt.Println("Usage: admin reject <itemId>")
			return
		}
		if _, err := a.store.DeleteItem(ctx, args[1]); err != nil {
			printError(err)
			return
		}
		fmt.Println("Report removed.")
	case "users":
		users, _, err := a.store.Users(ctx)
		if err != nil {
			printError(err)
			return
		}
		for _, u := range users {
			fmt.Printf("%-25s %-30s id=%s\n", u.Name, u.Email, u.ID)
		}
	default:
		fmt.Println("Unknown admin subcommand. Try: pending, approve, reject, users")
	}
}

func printHelp() {
	fmt.Println("\n=== AAU Found It CLI ===")
	for _, s := range suggestions {
		fmt.Printf("%-10s : %s\n", s.Text, s.Description)
	}
	fmt.Println("\nWhen the server is unreachable, reads and writes fall back to a local mirror; commands note when that happens.")
}

func printError(err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		fmt.Println("No account found for that email.")
	case errors.Is(err, apperrors.ErrItemNotFound):
		fmt.Println("No report with that id.")
	case errors.Is(err, apperrors.ErrRequestTimedOut):
		fmt.Println("The request took too long. Try again.")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		fmt.Println("You are not allowed to do that.")
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidCategory),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrEmptyMessage):
		fmt.Println("Invalid input:", err)
	default:
		fmt.Println("Something went wrong:", err)
	}
}

func offlineNote(tier datastore.Tier) string {
	if tier == datastore.TierMirror {
		return " (saved offline; will not reach the server until it is back)"
	}
	return ""
}

func promptLine(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func joinCategories() string {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
