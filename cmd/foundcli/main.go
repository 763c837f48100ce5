// Command foundcli is a terminal front end for the lost & found
// board. It talks to the hosted API through the datastore facade, so
// it keeps working offline against the local mirror.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/joho/godotenv"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/config"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/pkg/datastore"
)

func defaultMirrorDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".foundit"
	}
	return filepath.Join(home, ".foundit")
}

var suggestions = []prompt.Suggest{
	{Text: "signup", Description: "Create an account: signup <name> <email>"},
	{Text: "login", Description: "Log in: login <email>"},
	{Text: "logout", Description: "Clear the current session"},
	{Text: "whoami", Description: "Show the logged-in account"},
	{Text: "items", Description: "Browse the verified feed"},
	{Text: "post", Description: "Report a lost or found item (interactive)"},
	{Text: "reclaim", Description: "Mark your report reclaimed: reclaim <itemId>"},
	{Text: "inbox", Description: "List conversation threads"},
	{Text: "chat", Description: "Open a thread: chat <itemId> <userId>"},
	{Text: "profile", Description: "View or edit profile: profile [field value]"},
	{Text: "admin", Description: "Moderation: admin pending|approve|reject|users"},
	{Text: "help", Description: "Show available commands"},
	{Text: "exit", Description: "Quit"},
}

func completer(d prompt.Document) []prompt.Suggest {
	if strings.Contains(d.TextBeforeCursor(), " ") {
		return nil
	}
	return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
}

func main() {
	_ = godotenv.Load()

	store, err := datastore.New(datastore.Options{
		BaseURL:   config.GetEnv("FOUNDIT_API_URL", "http://localhost:8080"),
		MirrorDir: config.GetEnv("FOUNDIT_MIRROR_DIR", defaultMirrorDir()),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open data store:", err)
		os.Exit(1)
	}

	app := &app{store: store}

	fmt.Println("AAU Found It: campus lost & found")
	fmt.Println("Type 'help' to see available commands")
	if user := store.CurrentUser(); user != nil {
		fmt.Printf("Welcome back, %s\n", user.Name)
	}

	p := prompt.New(
		app.execute,
		completer,
		prompt.OptionPrefix("foundit> "),
		prompt.OptionTitle("AAU Found It"),
	)
	p.Run()
}
