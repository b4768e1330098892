package ticket

import (
	"strings"
	"time"
)

const (
	StatusOpen     = "open"
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusClosed   = "closed"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Categories support tickets are filed under.
var Categories = []string{"payments", "account", "bonus", "technical", "other"}

// Ticket is a player support request handled by the admin team.
type Ticket struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	PlayerID  int64     `json:"player_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Draft is the create/edit payload for a ticket.
type Draft struct {
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	PlayerID int64  `json:"player_id,omitempty"`
}

func Defaults() Draft {
	return Draft{Category: "other", Priority: PriorityNormal, Status: StatusOpen}
}

func DraftOf(t Ticket) Draft {
	return Draft{
		Subject:  t.Subject,
		Message:  t.Message,
		Category: t.Category,
		Priority: t.Priority,
		Status:   t.Status,
		PlayerID: t.PlayerID,
	}
}

// Validate checks the draft and returns per-field messages.
func Validate(d Draft) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(d.Subject) == "" {
		errs["subject"] = "subject is required"
	}
	if strings.TrimSpace(d.Message) == "" {
		errs["message"] = "message is required"
	}
	if !validCategory(d.Category) {
		errs["category"] = "unknown category"
	}
	switch d.Priority {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
	default:
		errs["priority"] = "invalid priority"
	}
	switch d.Status {
	case StatusOpen, StatusPending, StatusResolved, StatusClosed:
	default:
		errs["status"] = "invalid status"
	}
	return errs
}

func validCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
