// Package domain defines the tracker's entity model: users, sprints,
// tickets, and comments, plus the aggregate shapes persisted on disk.
package domain

import "time"

// TicketType distinguishes the two ticket flavors. Immutable after creation.
type TicketType string

const (
	TypeTask TicketType = "task"
	TypeBug  TicketType = "bug"
)

// TicketStatus is the workflow state of a ticket.
type TicketStatus string

const (
	StatusTodo     TicketStatus = "todo"
	StatusProgress TicketStatus = "progress"
	StatusDone     TicketStatus = "done"
)

// SprintStatus is the lifecycle state of a sprint.
type SprintStatus string

const (
	SprintPlanning  SprintStatus = "planning"
	SprintActive    SprintStatus = "active"
	SprintCompleted SprintStatus = "completed"
)

// Priority ranks a ticket's urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Kind names an entity collection. The plural forms match the on-disk
// layout; tickets answer to "tasks", "bugs", and "tickets" alike.
type Kind string

const (
	KindTasks    Kind = "tasks"
	KindBugs     Kind = "bugs"
	KindTickets  Kind = "tickets"
	KindSprints  Kind = "sprints"
	KindUsers    Kind = "users"
	KindComments Kind = "comments"
)

// User is a human-chosen handle referenced by assignees and comment authors.
type User struct {
	ID          string    `json:"id" yaml:"id"`
	Username    string    `json:"username" yaml:"username"`
	DisplayName string    `json:"displayName" yaml:"displayName"`
	Email       string    `json:"email,omitempty" yaml:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Sprint is a time-boxed grouping of tickets.
type Sprint struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Goal        string       `json:"goal,omitempty" yaml:"goal,omitempty"`
	Status      SprintStatus `json:"status" yaml:"status"`
	StartDate   *time.Time   `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate     *time.Time   `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" yaml:"updatedAt"`
}

// Ticket is a task or bug tracked through todo → progress → done.
type Ticket struct {
	ID          string       `json:"id" yaml:"id"`
	Type        TicketType   `json:"type" yaml:"type"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Status      TicketStatus `json:"status" yaml:"status"`
	Assignee    string       `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Sprint      string       `json:"sprint,omitempty" yaml:"sprint,omitempty"`
	Estimate    float64      `json:"estimate,omitempty" yaml:"estimate,omitempty"`
	Labels      []string     `json:"labels,omitempty" yaml:"labels,omitempty"`
	Priority    Priority     `json:"priority,omitempty" yaml:"priority,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" yaml:"updatedAt"`
}

// Comment is attached to a ticket. The author reference may dangle after a
// user is deleted; callers fall back to rendering the raw id.
type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	TicketID  string    `json:"ticketId" yaml:"ticketId"`
	Author    string    `json:"author" yaml:"author"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// ArchiveVersion tags archive documents so future readers can coerce
// older shapes on load.
const ArchiveVersion = "1.0"

// ArchivedSprint is the immutable archive document written when a sprint
// completes: the sprint snapshot plus its tickets and comments at that
// instant.
type ArchivedSprint struct {
	Version    string    `json:"version" yaml:"version"`
	Sprint     Sprint    `json:"sprint" yaml:"sprint"`
	Tickets    []Ticket  `json:"tickets" yaml:"tickets"`
	Comments   []Comment `json:"comments" yaml:"comments"`
	ArchivedAt time.Time `json:"archivedAt" yaml:"archivedAt"`
}
