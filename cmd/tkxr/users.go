package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/tracker"
)

func (a *app) runUser(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tkxr user create <username> <displayName> [--email <email>]")
	}

	switch args[0] {
	case "create":
		return a.runUserCreate(args[1:])
	default:
		return fmt.Errorf("unknown user command %q", args[0])
	}
}

func (a *app) runUserCreate(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tkxr user create <username> <displayName> [--email <email>]")
	}
	username, displayName := args[0], args[1]

	fs := flag.NewFlagSet("user create", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}

	svc, err := a.service(true)
	if err != nil {
		return err
	}

	user, err := svc.CreateUser(context.Background(), tracker.CreateUserRequest{
		Username:    username,
		DisplayName: displayName,
		Email:       *email,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created user: %s\n", user.ID)
	fmt.Printf("  Username: %s\n", user.Username)
	fmt.Printf("  Display name: %s\n", user.DisplayName)
	return nil
}

func (a *app) runUsers(args []string) error {
	svc, err := a.service(false)
	if err != nil {
		return err
	}

	users, err := svc.GetUsers(context.Background())
	if err != nil {
		return err
	}
	printUserTable(users)
	return nil
}

func printUserTable(users []domain.User) {
	if len(users) == 0 {
		fmt.Println("No users found")
		return
	}

	fmt.Printf("\nUsers (%d)\n", len(users))
	fmt.Printf("%-13s%-18s%s\n", "ID", "USERNAME", "DISPLAY NAME")
	fmt.Println("--------------------------------------------------")
	for _, u := range users {
		fmt.Printf("%-13s%-18s%s\n", u.ID, u.Username, u.DisplayName)
	}
	fmt.Println()
}
