// Command seed-demo-data populates the database with a demo roster and a
// plausible morning of clock events so the dashboard has something to show.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/punchdeck/punchdeck/internal/model"
	"github.com/punchdeck/punchdeck/internal/repository"
)

type demoUser struct {
	cardUID string
	name    string
}

var roster = []demoUser{
	{"04A1B2C3D4", "Alice Andersson"},
	{"04E5F6A7B8", "Bob Berg"},
	{"049C8D7E6F", "Carol Chen"},
	{"öö122ö8333", "Örjan Öberg"},
	{"04123456AB", "Dmitri Volkov"},
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		withEvents  = flag.Bool("events", true, "also record a morning of clock events")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	users := make([]*model.User, 0, len(roster))
	for _, d := range roster {
		user := &model.User{CardUID: d.cardUID, Name: d.name}
		err := repo.CreateUser(ctx, user)
		switch {
		case err == nil:
			fmt.Printf("created user %d: %s (%s)\n", user.ID, user.Name, user.CardUID)
		case errors.Is(err, repository.ErrCardUIDExists):
			existing, getErr := repo.GetUserByCardUID(ctx, d.cardUID)
			if getErr != nil {
				fmt.Fprintln(os.Stderr, "lookup existing user:", getErr)
				os.Exit(1)
			}
			user = existing
			fmt.Printf("user %s already registered, skipping\n", user.CardUID)
		default:
			fmt.Fprintln(os.Stderr, "create user:", err)
			os.Exit(1)
		}
		users = append(users, user)
	}

	if !*withEvents {
		return
	}

	// Everyone clocks in; the first two also take a break and return,
	// the last one has already left for the day.
	for _, user := range users {
		if err := record(ctx, repo, user, model.EventIn); err != nil {
			fmt.Fprintln(os.Stderr, "record event:", err)
			os.Exit(1)
		}
	}
	for _, user := range users[:2] {
		if err := record(ctx, repo, user, model.EventOut); err != nil {
			fmt.Fprintln(os.Stderr, "record event:", err)
			os.Exit(1)
		}
		if err := record(ctx, repo, user, model.EventIn); err != nil {
			fmt.Fprintln(os.Stderr, "record event:", err)
			os.Exit(1)
		}
	}
	last := users[len(users)-1]
	if err := record(ctx, repo, last, model.EventOut); err != nil {
		fmt.Fprintln(os.Stderr, "record event:", err)
		os.Exit(1)
	}

	fmt.Println("demo data seeded")
}

func record(ctx context.Context, repo *repository.Repository, user *model.User, et model.EventType) error {
	event := &model.ClockEvent{UserID: user.ID, EventType: et}
	if err := repo.InsertEvent(ctx, event); err != nil {
		return err
	}
	fmt.Printf("  %s clocked %s at %s\n", user.Name, et, event.Timestamp.Format(time.Kitchen))
	return nil
}
