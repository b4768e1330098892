package notification

import (
	"strings"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusSent      = "sent"
)

const (
	KindInfo    = "info"
	KindWarning = "warning"
	KindPromo   = "promo"
)

// Audiences a notification can target.
var Audiences = []string{"all", "vip", "new", "inactive"}

// Notification is an in-platform message pushed to players.
type Notification struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Kind      string     `json:"kind"`
	Audience  string     `json:"audience"`
	Status    string     `json:"status"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Draft is the create/edit payload for a notification.
type Draft struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Kind     string `json:"kind"`
	Audience string `json:"audience"`
	Status   string `json:"status"`
}

func Defaults() Draft {
	return Draft{Kind: KindInfo, Audience: "all", Status: StatusDraft}
}

func DraftOf(n Notification) Draft {
	return Draft{
		Title:    n.Title,
		Body:     n.Body,
		Kind:     n.Kind,
		Audience: n.Audience,
		Status:   n.Status,
	}
}

// Validate checks the draft and returns per-field messages.
func Validate(d Draft) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(d.Body) == "" {
		errs["body"] = "body is required"
	}
	switch d.Kind {
	case KindInfo, KindWarning, KindPromo:
	default:
		errs["kind"] = "invalid kind"
	}
	if !validAudience(d.Audience) {
		errs["audience"] = "unknown audience"
	}
	switch d.Status {
	case StatusDraft, StatusScheduled, StatusSent:
	default:
		errs["status"] = "invalid status"
	}
	return errs
}

func validAudience(a string) bool {
	for _, v := range Audiences {
		if v == a {
			return true
		}
	}
	return false
}
