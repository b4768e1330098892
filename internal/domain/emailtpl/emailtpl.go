package emailtpl

import (
	"strings"
	"time"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/util"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Template is a transactional email template (welcome, deposit
// confirmation, password reset and the like).
type Template struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Subject   string    `json:"subject"`
	HTMLBody  string    `json:"html_body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Draft is the create/edit payload for a template.
type Draft struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	Status   string `json:"status"`
}

func Defaults() Draft {
	return Draft{Status: StatusInactive}
}

func DraftOf(t Template) Draft {
	return Draft{
		Name:     t.Name,
		Slug:     t.Slug,
		Subject:  t.Subject,
		HTMLBody: t.HTMLBody,
		Status:   t.Status,
	}
}

// Normalize derives the slug from the name when left empty.
func Normalize(d Draft) Draft {
	if strings.TrimSpace(d.Slug) == "" {
		d.Slug = util.Slugify(d.Name)
	}
	return d
}

// Validate checks the draft and returns per-field messages.
func Validate(d Draft) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "name is required"
	}
	if d.Slug != "" && !util.IsValidSlug(d.Slug) {
		errs["slug"] = "slug may contain lowercase letters, digits and hyphens only"
	}
	if strings.TrimSpace(d.Subject) == "" {
		errs["subject"] = "subject is required"
	}
	if strings.TrimSpace(d.HTMLBody) == "" {
		errs["html_body"] = "body is required"
	}
	switch d.Status {
	case StatusActive, StatusInactive:
	default:
		errs["status"] = "invalid status"
	}
	return errs
}
