package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/tkxr/tkxr/internal/chunklog"
	"github.com/tkxr/tkxr/internal/domain"
	"github.com/tkxr/tkxr/internal/mcp"
	"github.com/tkxr/tkxr/internal/tracker"
)

func newSession(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	store, err := chunklog.New(t.TempDir())
	require.NoError(t, err)

	svc := tracker.NewService(
		chunklog.NewTicketRepository(store),
		chunklog.NewSprintRepository(store),
		chunklog.NewUserRepository(store),
		chunklog.NewCommentRepository(store),
		chunklog.NewArchiveRepository(store),
		nil,
		nil,
	)

	server := mcp.NewServer(mcp.Config{Service: svc})

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { clientSession.Close() })

	return clientSession
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return res
}

func toolText(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestListTools(t *testing.T) {
	session := newSession(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"list_tickets", "create_ticket", "update_ticket_status", "delete_ticket",
		"list_users", "create_user",
		"list_sprints", "create_sprint", "update_sprint_status",
		"list_comments", "add_comment",
		"list_archived_sprints",
	} {
		require.True(t, names[want], "missing tool %s", want)
	}
}

func TestCreateAndListTickets(t *testing.T) {
	session := newSession(t)

	res := callTool(t, session, "create_ticket", map[string]any{
		"type":     "bug",
		"title":    "Crash on startup",
		"priority": "high",
	})
	require.False(t, res.IsError)

	var created domain.Ticket
	require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &created))
	require.Regexp(t, `^bug-`, created.ID)
	require.Equal(t, domain.StatusTodo, created.Status)

	res = callTool(t, session, "list_tickets", map[string]any{"type": "bug"})
	require.False(t, res.IsError)

	var tickets []domain.Ticket
	require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &tickets))
	require.Len(t, tickets, 1)
}

func TestUpdateTicketStatus_MissingTicketIsError(t *testing.T) {
	session := newSession(t)

	res := callTool(t, session, "update_ticket_status", map[string]any{
		"id":     "tas-missing1",
		"status": "done",
	})
	require.True(t, res.IsError)
}

func TestSprintArchivalTools(t *testing.T) {
	session := newSession(t)

	res := callTool(t, session, "create_sprint", map[string]any{"name": "Sprint 1"})
	var sprint domain.Sprint
	require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &sprint))

	callTool(t, session, "create_ticket", map[string]any{
		"type": "task", "title": "sprint work", "sprint": sprint.ID,
	})

	res = callTool(t, session, "update_sprint_status", map[string]any{
		"id": sprint.ID, "status": "completed",
	})
	require.False(t, res.IsError)

	res = callTool(t, session, "list_tickets", map[string]any{})
	var remaining []domain.Ticket
	require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &remaining))
	require.Empty(t, remaining)

	res = callTool(t, session, "list_archived_sprints", map[string]any{})
	var ids []string
	require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &ids))
	require.Equal(t, []string{sprint.ID}, ids)

	res = callTool(t, session, "list_archived_sprints", map[string]any{"id": sprint.ID})
	var archive domain.ArchivedSprint
	require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &archive))
	require.Len(t, archive.Tickets, 1)
}

func TestUsageResource(t *testing.T) {
	session := newSession(t)

	res, err := session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{
		URI: "tkxr://docs/usage",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Contents)
	require.Contains(t, res.Contents[0].Text, "list_archived_sprints")
}
