package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/tracker"
)

func (a *app) runCreate(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tkxr create <task|bug> <title> [options]")
	}
	ticketType, title := args[0], args[1]

	fs := flag.NewFlagSet("create", flag.ExitOnError)
	description := fs.String("description", "", "ticket description")
	assignee := fs.String("assignee", "", "assignee user id or username")
	sprint := fs.String("sprint", "", "sprint id")
	priority := fs.String("priority", "", "low, medium, high or critical")
	estimate := fs.Float64("estimate", 0, "story points estimate")
	labels := fs.String("labels", "", "comma-separated labels")
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}

	svc, err := a.service(true)
	if err != nil {
		return err
	}

	ticket, err := svc.CreateTicket(context.Background(), tracker.CreateTicketRequest{
		Type:        domain.TicketType(ticketType),
		Title:       title,
		Description: *description,
		Assignee:    *assignee,
		Sprint:      *sprint,
		Estimate:    *estimate,
		Labels:      splitLabels(*labels),
		Priority:    domain.Priority(*priority),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created %s: %s\n", ticket.Type, ticket.ID)
	fmt.Printf("  Title: %s\n", ticket.Title)
	if ticket.Priority != "" {
		fmt.Printf("  Priority: %s\n", ticket.Priority)
	}
	if ticket.Sprint != "" {
		fmt.Printf("  Sprint: %s\n", ticket.Sprint)
	}
	return nil
}

func (a *app) runList(args []string) error {
	entity := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		entity, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("list", flag.ExitOnError)
	status := fs.String("status", "", "filter by status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, err := a.service(false)
	if err != nil {
		return err
	}
	ctx := context.Background()

	switch entity {
	case "sprints":
		sprints, err := svc.GetSprints(ctx)
		if err != nil {
			return err
		}
		printSprintTable(sprints, *status)
		return nil
	case "users":
		users, err := svc.GetUsers(ctx)
		if err != nil {
			return err
		}
		printUserTable(users)
		return nil
	case "tasks", "bugs":
		tickets, err := svc.GetTicketsByType(ctx, domain.TicketType(strings.TrimSuffix(entity, "s")))
		if err != nil {
			return err
		}
		heading := "Tasks"
		if entity == "bugs" {
			heading = "Bugs"
		}
		printTicketTable(heading, tickets, *status)
		return nil
	case "":
		tickets, err := svc.GetAllTickets(ctx)
		if err != nil {
			return err
		}
		printTicketTable("Tickets", tickets, *status)
		return nil
	default:
		return fmt.Errorf("unknown entity %q: expected tasks, bugs, sprints or users", entity)
	}
}

func (a *app) runStatus(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tkxr status <id> <todo|progress|done>")
	}
	id, status := args[0], args[1]

	svc, err := a.service(true)
	if err != nil {
		return err
	}

	ticket, err := svc.UpdateTicketStatus(context.Background(), id, domain.TicketStatus(status))
	if err != nil {
		return err
	}
	if ticket == nil {
		return fmt.Errorf("ticket %q not found", id)
	}

	fmt.Printf("Updated %s: %s -> %s\n", ticket.ID, ticket.Title, ticket.Status)
	return nil
}

func (a *app) runShow(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tkxr show <ticket-id>")
	}
	id := args[0]

	svc, err := a.service(false)
	if err != nil {
		return err
	}
	ctx := context.Background()

	ticket, err := svc.FindTicket(ctx, id)
	if err != nil {
		return err
	}
	if ticket == nil {
		return fmt.Errorf("ticket %q not found", id)
	}

	fmt.Println()
	fmt.Println(ticket.Title)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("ID:        %s\n", ticket.ID)
	fmt.Printf("Type:      %s\n", ticket.Type)
	fmt.Printf("Status:    %s\n", ticket.Status)
	if ticket.Priority != "" {
		fmt.Printf("Priority:  %s\n", ticket.Priority)
	}
	if ticket.Assignee != "" {
		name := ticket.Assignee
		if user, err := svc.ResolveUser(ctx, ticket.Assignee); err == nil && user != nil {
			name = user.DisplayName
		}
		fmt.Printf("Assignee:  %s\n", name)
	}
	if ticket.Sprint != "" {
		fmt.Printf("Sprint:    %s\n", ticket.Sprint)
	}
	if ticket.Estimate > 0 {
		fmt.Printf("Estimate:  %g points\n", ticket.Estimate)
	}
	if len(ticket.Labels) > 0 {
		fmt.Printf("Labels:    %s\n", strings.Join(ticket.Labels, ", "))
	}
	if ticket.Description != "" {
		fmt.Println()
		fmt.Println("Description:")
		fmt.Println(ticket.Description)
	}
	fmt.Println()
	fmt.Printf("Created: %s\n", ticket.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Updated: %s\n", ticket.UpdatedAt.Format("2006-01-02 15:04"))
	return nil
}

func (a *app) runDelete(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tkxr delete <id> [--force]")
	}
	id := args[0]

	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	force := fs.Bool("force", false, "confirm deletion")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	svc, err := a.service(true)
	if err != nil {
		return err
	}
	ctx := context.Background()

	match, err := svc.FindEntity(ctx, id)
	if err != nil {
		return err
	}
	if match == nil {
		return fmt.Errorf("no entity found with ID %q", id)
	}

	switch {
	case match.Ticket != nil:
		fmt.Printf("About to delete %s: %s\n  Title: %s\n", match.Ticket.Type, id, match.Ticket.Title)
	case match.Sprint != nil:
		fmt.Printf("About to delete sprint: %s\n  Name: %s\n", id, match.Sprint.Name)
	case match.User != nil:
		fmt.Printf("About to delete user: %s\n  Username: %s\n", id, match.User.Username)
	}
	if !*force {
		return fmt.Errorf("use --force to confirm deletion")
	}

	if match.Ticket != nil {
		deleted, comments, err := svc.DeleteTicketCascade(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("failed to delete %s", id)
		}
		if comments > 0 {
			fmt.Printf("  Deleted %d associated comment(s)\n", comments)
		}
	} else {
		deleted, err := svc.DeleteEntity(ctx, string(match.Kind), id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("failed to delete %s", id)
		}
	}

	fmt.Printf("Deleted: %s\n", id)
	return nil
}

func (a *app) runComments(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tkxr comments <ticket-id> [--add --author <user> --content <text>]")
	}
	ticketID := args[0]

	fs := flag.NewFlagSet("comments", flag.ExitOnError)
	add := fs.Bool("add", false, "add a comment")
	author := fs.String("author", "", "comment author (user id or username)")
	content := fs.String("content", "", "comment content")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	svc, err := a.service(false)
	if err != nil {
		return err
	}
	ctx := context.Background()

	ticket, err := svc.FindTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return fmt.Errorf("ticket %q not found", ticketID)
	}

	if *add {
		comment, err := svc.CreateComment(ctx, ticketID, *author, *content)
		if err != nil {
			return err
		}
		fmt.Printf("Added comment %s to %s\n", comment.ID, ticketID)
		return nil
	}

	comments, err := svc.GetComments(ctx, ticketID)
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		fmt.Printf("No comments on %s\n", ticketID)
		return nil
	}

	fmt.Printf("\nComments on %s (%d)\n\n", ticketID, len(comments))
	for _, c := range comments {
		name := c.Author
		if user, err := svc.ResolveUser(ctx, c.Author); err == nil && user != nil {
			name = user.DisplayName
		}
		fmt.Printf("%s  %s  %s\n", c.ID, name, c.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("  %s\n\n", c.Content)
	}
	return nil
}

func printTicketTable(heading string, tickets []domain.Ticket, status string) {
	if status != "" {
		filtered := tickets[:0:0]
		for _, t := range tickets {
			if t.Status == domain.TicketStatus(status) {
				filtered = append(filtered, t)
			}
		}
		tickets = filtered
	}
	if len(tickets) == 0 {
		fmt.Printf("No %s found\n", strings.ToLower(heading))
		return
	}

	fmt.Printf("\n%s (%d)\n", heading, len(tickets))
	fmt.Printf("%-13s%-10s%-4s%s\n", "ID", "STATUS", "PRI", "TITLE")
	fmt.Println(strings.Repeat("-", 60))
	for _, t := range tickets {
		pri := "-"
		if t.Priority != "" {
			pri = strings.ToUpper(string(t.Priority[0]))
		}
		fmt.Printf("%-13s%-10s%-4s%s\n", t.ID, t.Status, pri, t.Title)
	}
	fmt.Println()
}

func splitLabels(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	labels := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}
