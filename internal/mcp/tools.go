package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/tracker"
)

type listTicketsParams struct {
	Type   string `json:"type,omitempty" jsonschema:"Filter by ticket type: task or bug (optional)"`
	Status string `json:"status,omitempty" jsonschema:"Filter by status: todo, progress or done (optional)"`
}

type createTicketParams struct {
	Type        string  `json:"type" jsonschema:"Type of ticket to create: task or bug"`
	Title       string  `json:"title" jsonschema:"Title of the ticket"`
	Description string  `json:"description,omitempty" jsonschema:"Description of the ticket (optional)"`
	Assignee    string  `json:"assignee,omitempty" jsonschema:"User ID or username to assign the ticket to (optional)"`
	Sprint      string  `json:"sprint,omitempty" jsonschema:"Sprint ID to add the ticket to (optional)"`
	Priority    string  `json:"priority,omitempty" jsonschema:"Priority level: low, medium, high or critical (optional)"`
	Estimate    float64 `json:"estimate,omitempty" jsonschema:"Story points estimate (optional)"`
}

type updateTicketStatusParams struct {
	ID     string `json:"id" jsonschema:"Ticket ID"`
	Status string `json:"status" jsonschema:"New status: todo, progress or done"`
}

type deleteTicketParams struct {
	ID string `json:"id" jsonschema:"Ticket ID to delete"`
}

type listUsersParams struct{}

type createUserParams struct {
	Username    string `json:"username" jsonschema:"Username"`
	DisplayName string `json:"displayName" jsonschema:"Display name"`
	Email       string `json:"email,omitempty" jsonschema:"Email address (optional)"`
}

type listSprintsParams struct {
	Status string `json:"status,omitempty" jsonschema:"Filter by sprint status: planning, active or completed (optional)"`
}

type createSprintParams struct {
	Name        string `json:"name" jsonschema:"Sprint name"`
	Description string `json:"description,omitempty" jsonschema:"Sprint description (optional)"`
	Goal        string `json:"goal,omitempty" jsonschema:"Sprint goal (optional)"`
}

type updateSprintStatusParams struct {
	ID     string `json:"id" jsonschema:"Sprint ID"`
	Status string `json:"status" jsonschema:"New status: planning, active or completed"`
}

type listCommentsParams struct {
	TicketID string `json:"ticketId" jsonschema:"Ticket ID (e.g. tas-a1b2c3d4)"`
}

type addCommentParams struct {
	TicketID string `json:"ticketId" jsonschema:"Ticket ID (e.g. tas-a1b2c3d4)"`
	Author   string `json:"author" jsonschema:"Author user ID or username"`
	Content  string `json:"content" jsonschema:"Comment content"`
}

type listArchivedSprintsParams struct {
	ID string `json:"id,omitempty" jsonschema:"Sprint ID to fetch the full archive for (omit to list archived sprint IDs)"`
}

func registerTools(server *sdkmcp.Server, svc *tracker.Service) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_tickets",
		Description: "List all tickets in the repository",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params listTicketsParams) (*sdkmcp.CallToolResult, any, error) {
		var (
			tickets []domain.Ticket
			err     error
		)
		if params.Type != "" {
			tickets, err = svc.GetTicketsByType(ctx, domain.TicketType(params.Type))
		} else {
			tickets, err = svc.GetAllTickets(ctx)
		}
		if err != nil {
			return nil, nil, err
		}
		if params.Status != "" {
			filtered := tickets[:0:0]
			for _, t := range tickets {
				if t.Status == domain.TicketStatus(params.Status) {
					filtered = append(filtered, t)
				}
			}
			tickets = filtered
		}
		return nil, tickets, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_ticket",
		Description: "Create a new ticket (task or bug)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params createTicketParams) (*sdkmcp.CallToolResult, any, error) {
		ticket, err := svc.CreateTicket(ctx, tracker.CreateTicketRequest{
			Type:        domain.TicketType(params.Type),
			Title:       params.Title,
			Description: params.Description,
			Assignee:    params.Assignee,
			Sprint:      params.Sprint,
			Estimate:    params.Estimate,
			Priority:    domain.Priority(params.Priority),
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, ticket, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_ticket_status",
		Description: "Update the status of a ticket",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params updateTicketStatusParams) (*sdkmcp.CallToolResult, any, error) {
		ticket, err := svc.UpdateTicketStatus(ctx, params.ID, domain.TicketStatus(params.Status))
		if err != nil {
			return nil, nil, err
		}
		if ticket == nil {
			return nil, nil, fmt.Errorf("ticket %s not found", params.ID)
		}
		return nil, ticket, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_ticket",
		Description: "Delete a ticket and its comments from the repository",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params deleteTicketParams) (*sdkmcp.CallToolResult, any, error) {
		deleted, comments, err := svc.DeleteTicketCascade(ctx, params.ID)
		if err != nil {
			return nil, nil, err
		}
		if !deleted {
			return nil, nil, fmt.Errorf("ticket %s not found", params.ID)
		}
		return textResult(fmt.Sprintf("Deleted ticket %s (%d comments removed)", params.ID, comments)), nil, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_users",
		Description: "List all users in the repository",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params listUsersParams) (*sdkmcp.CallToolResult, any, error) {
		users, err := svc.GetUsers(ctx)
		if err != nil {
			return nil, nil, err
		}
		return nil, users, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_user",
		Description: "Create a new user",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params createUserParams) (*sdkmcp.CallToolResult, any, error) {
		user, err := svc.CreateUser(ctx, tracker.CreateUserRequest{
			Username:    params.Username,
			DisplayName: params.DisplayName,
			Email:       params.Email,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, user, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_sprints",
		Description: "List all sprints in the repository",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params listSprintsParams) (*sdkmcp.CallToolResult, any, error) {
		sprints, err := svc.GetSprints(ctx)
		if err != nil {
			return nil, nil, err
		}
		if params.Status != "" {
			filtered := sprints[:0:0]
			for _, sp := range sprints {
				if sp.Status == domain.SprintStatus(params.Status) {
					filtered = append(filtered, sp)
				}
			}
			sprints = filtered
		}
		return nil, sprints, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_sprint",
		Description: "Create a new sprint",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params createSprintParams) (*sdkmcp.CallToolResult, any, error) {
		sprint, err := svc.CreateSprint(ctx, tracker.CreateSprintRequest{
			Name:        params.Name,
			Description: params.Description,
			Goal:        params.Goal,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, sprint, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_sprint_status",
		Description: "Update the status of a sprint. Completing a sprint archives its tickets and comments.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params updateSprintStatusParams) (*sdkmcp.CallToolResult, any, error) {
		sprint, err := svc.UpdateSprintStatus(ctx, params.ID, domain.SprintStatus(params.Status))
		if err != nil {
			return nil, nil, err
		}
		if sprint == nil {
			return nil, nil, fmt.Errorf("sprint %s not found", params.ID)
		}
		return nil, sprint, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_comments",
		Description: "List all comments for a specific ticket",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params listCommentsParams) (*sdkmcp.CallToolResult, any, error) {
		comments, err := svc.GetComments(ctx, params.TicketID)
		if err != nil {
			return nil, nil, err
		}
		return nil, comments, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_comment",
		Description: "Add a comment to a ticket",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params addCommentParams) (*sdkmcp.CallToolResult, any, error) {
		comment, err := svc.CreateComment(ctx, params.TicketID, params.Author, params.Content)
		if err != nil {
			return nil, nil, err
		}
		return nil, comment, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_archived_sprints",
		Description: "List archived sprint IDs, or fetch one sprint's archive with its tickets and comments",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params listArchivedSprintsParams) (*sdkmcp.CallToolResult, any, error) {
		if params.ID != "" {
			archive, err := svc.GetArchive(ctx, params.ID)
			if err != nil {
				return nil, nil, err
			}
			if archive == nil {
				return nil, nil, fmt.Errorf("no archive for sprint %s", params.ID)
			}
			return nil, archive, nil
		}
		ids, err := svc.GetArchivedSprints(ctx)
		if err != nil {
			return nil, nil, err
		}
		return nil, ids, nil
	})
}

func textResult(text string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}
