package domain

import (
	"fmt"
	"strings"
)

var validTicketTypes = map[TicketType]bool{
	TypeTask: true,
	TypeBug:  true,
}

var validTicketStatuses = map[TicketStatus]bool{
	StatusTodo:     true,
	StatusProgress: true,
	StatusDone:     true,
}

var validSprintStatuses = map[SprintStatus]bool{
	SprintPlanning:  true,
	SprintActive:    true,
	SprintCompleted: true,
}

var validPriorities = map[Priority]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// ValidateTicketType returns an error if the type is not task or bug.
func ValidateTicketType(t TicketType) error {
	if !validTicketTypes[t] {
		return fmt.Errorf("%w: ticket type %q must be one of: task, bug", ErrInvalidInput, t)
	}
	return nil
}

// ValidateTicketStatus returns an error if the status is not recognized.
func ValidateTicketStatus(s TicketStatus) error {
	if !validTicketStatuses[s] {
		return fmt.Errorf("%w: ticket status %q must be one of: todo, progress, done", ErrInvalidInput, s)
	}
	return nil
}

// ValidateSprintStatus returns an error if the status is not recognized.
func ValidateSprintStatus(s SprintStatus) error {
	if !validSprintStatuses[s] {
		return fmt.Errorf("%w: sprint status %q must be one of: planning, active, completed", ErrInvalidInput, s)
	}
	return nil
}

// ValidatePriority returns an error if the priority is set and not recognized.
// An empty priority is allowed (the field is optional).
func ValidatePriority(p Priority) error {
	if p == "" {
		return nil
	}
	if !validPriorities[p] {
		return fmt.Errorf("%w: priority %q must be one of: low, medium, high, critical", ErrInvalidInput, p)
	}
	return nil
}

// RequireNonEmpty returns an error when a required string field is blank.
func RequireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	return nil
}

// CollectionKind normalizes a caller-supplied kind name to the collection it
// addresses. Tickets answer to tasks, bugs, and tickets. Returns false for
// unknown kinds.
func CollectionKind(kind string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindTasks, KindBugs, KindTickets:
		return KindTickets, true
	case KindSprints:
		return KindSprints, true
	case KindUsers:
		return KindUsers, true
	case KindComments:
		return KindComments, true
	default:
		return "", false
	}
}
