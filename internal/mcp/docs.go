package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `tkxr is a flat-file issue tracker: tickets (tasks and bugs), sprints,
users and comments stored in the working directory.

Conventions:
- Entity IDs are prefixed by kind: tas-, bug-, spr-, use-, com-.
- Tickets move through todo → progress → done.
- Sprints move through planning → active → completed. Completing a sprint
  ARCHIVES its tickets and their comments: they disappear from list_tickets
  and are only reachable through list_archived_sprints.
- An assignee or comment author may be given as a user ID or a username;
  usernames are resolved to IDs when they match a known user.

Typical flow:
1) list_users / create_user to establish people.
2) create_sprint, then create_ticket with the sprint ID.
3) update_ticket_status as work progresses; add_comment for discussion.
4) update_sprint_status to completed when the sprint ends.
5) list_archived_sprints to review past sprints.

See tkxr://docs/usage for the full tool reference.
`

const usageDoc = `# tkxr tool reference

## Tickets
- ` + "`list_tickets`" + ` — all active tickets; filter with ` + "`type`" + ` (task|bug) and ` + "`status`" + ` (todo|progress|done).
- ` + "`create_ticket`" + ` — requires ` + "`type`" + ` and ` + "`title`" + `; optional description, assignee, sprint, priority, estimate.
- ` + "`update_ticket_status`" + ` — set todo, progress or done.
- ` + "`delete_ticket`" + ` — removes the ticket and its comments.

## Users
- ` + "`list_users`" + `
- ` + "`create_user`" + ` — requires ` + "`username`" + ` and ` + "`displayName`" + `; optional email.

## Sprints
- ` + "`list_sprints`" + ` — filter with ` + "`status`" + ` (planning|active|completed).
- ` + "`create_sprint`" + ` — requires ` + "`name`" + `; optional description and goal.
- ` + "`update_sprint_status`" + ` — completing a sprint archives its tickets and comments.
- ` + "`list_archived_sprints`" + ` — archived sprint IDs, or one full archive when ` + "`id`" + ` is given.

## Comments
- ` + "`list_comments`" + ` — comments on one ticket.
- ` + "`add_comment`" + ` — requires ticketId, author and content.

## Archival semantics

Completed sprints keep their ticket and comment history in an archive
document, not in active storage. Re-completing an already-completed sprint
does not archive again. A sprint with no tickets completes without creating
an archive.
`

func registerDocResources(server *sdkmcp.Server) {
	server.AddResource(&sdkmcp.Resource{
		URI:         "tkxr://docs/usage",
		Name:        "usage",
		Title:       "tkxr usage guide",
		Description: "Tool reference and archival semantics for the tkxr tracker.",
		MIMEType:    "text/markdown",
		Size:        int64(len(usageDoc)),
	}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		uri := "tkxr://docs/usage"
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      uri,
				MIMEType: "text/markdown",
				Text:     usageDoc,
			}},
		}, nil
	})
}
