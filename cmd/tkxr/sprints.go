package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/tracker"
)

func (a *app) runSprint(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tkxr sprint <create|status> ...")
	}

	switch args[0] {
	case "create":
		return a.runSprintCreate(args[1:])
	case "status":
		return a.runSprintStatus(args[1:])
	default:
		return fmt.Errorf("unknown sprint command %q", args[0])
	}
}

func (a *app) runSprintCreate(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tkxr sprint create <name> [--description <text>] [--goal <text>]")
	}
	name := args[0]

	fs := flag.NewFlagSet("sprint create", flag.ExitOnError)
	description := fs.String("description", "", "sprint description")
	goal := fs.String("goal", "", "sprint goal")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	svc, err := a.service(true)
	if err != nil {
		return err
	}

	sprint, err := svc.CreateSprint(context.Background(), tracker.CreateSprintRequest{
		Name:        name,
		Description: *description,
		Goal:        *goal,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created sprint: %s\n", sprint.ID)
	fmt.Printf("  Name: %s\n", sprint.Name)
	if sprint.Goal != "" {
		fmt.Printf("  Goal: %s\n", sprint.Goal)
	}
	return nil
}

func (a *app) runSprintStatus(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tkxr sprint status <id> <planning|active|completed>")
	}
	id, status := args[0], args[1]

	svc, err := a.service(true)
	if err != nil {
		return err
	}

	sprint, err := svc.UpdateSprintStatus(context.Background(), id, domain.SprintStatus(status))
	if err != nil {
		return err
	}
	if sprint == nil {
		return fmt.Errorf("sprint %q not found", id)
	}

	fmt.Printf("Updated sprint %s: %s -> %s\n", sprint.ID, sprint.Name, sprint.Status)
	if sprint.Status == domain.SprintCompleted {
		fmt.Println("  Tickets and comments moved to the archive")
	}
	return nil
}

func (a *app) runSprints(args []string) error {
	fs := flag.NewFlagSet("sprints", flag.ExitOnError)
	status := fs.String("status", "", "filter by sprint status")
	archived := fs.Bool("archived", false, "list archived sprints instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, err := a.service(false)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if *archived {
		ids, err := svc.GetArchivedSprints(ctx)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No archived sprints")
			return nil
		}
		fmt.Printf("\nArchived sprints (%d)\n", len(ids))
		for _, id := range ids {
			line := id
			if archive, err := svc.GetArchive(ctx, id); err == nil && archive != nil {
				line = fmt.Sprintf("%-13s%-24s%d tickets, %d comments",
					id, archive.Sprint.Name, len(archive.Tickets), len(archive.Comments))
			}
			fmt.Println(line)
		}
		fmt.Println()
		return nil
	}

	sprints, err := svc.GetSprints(ctx)
	if err != nil {
		return err
	}
	printSprintTable(sprints, *status)
	return nil
}

func printSprintTable(sprints []domain.Sprint, status string) {
	if status != "" {
		filtered := sprints[:0:0]
		for _, sp := range sprints {
			if sp.Status == domain.SprintStatus(status) {
				filtered = append(filtered, sp)
			}
		}
		sprints = filtered
	}
	if len(sprints) == 0 {
		fmt.Println("No sprints found")
		return
	}

	fmt.Printf("\nSprints (%d)\n", len(sprints))
	fmt.Printf("%-13s%-12s%s\n", "ID", "STATUS", "NAME")
	fmt.Println(strings.Repeat("-", 50))
	for _, sp := range sprints {
		fmt.Printf("%-13s%-12s%s\n", sp.ID, sp.Status, sp.Name)
	}
	fmt.Println()
}
