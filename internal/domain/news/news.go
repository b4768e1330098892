package news

import (
	"strings"
	"time"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/util"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Categories the editorial team files articles under.
var Categories = []string{"promotions", "sports", "casino", "announcements"}

// Article is a news/blog entry on the player-facing site.
type Article struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary,omitempty"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Draft is the create/edit payload for an article.
type Draft struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Summary  string `json:"summary,omitempty"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

func Defaults() Draft {
	return Draft{Category: "announcements", Status: StatusDraft}
}

func DraftOf(a Article) Draft {
	return Draft{
		Title:    a.Title,
		Slug:     a.Slug,
		Summary:  a.Summary,
		Content:  a.Content,
		Category: a.Category,
		Status:   a.Status,
	}
}

// Normalize derives the slug from the title when left empty.
func Normalize(d Draft) Draft {
	if strings.TrimSpace(d.Slug) == "" {
		d.Slug = util.Slugify(d.Title)
	}
	return d
}

// Validate checks the draft and returns per-field messages.
func Validate(d Draft) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "title is required"
	}
	if d.Slug != "" && !util.IsValidSlug(d.Slug) {
		errs["slug"] = "slug may contain lowercase letters, digits and hyphens only"
	}
	if strings.TrimSpace(d.Content) == "" {
		errs["content"] = "content is required"
	}
	if !validCategory(d.Category) {
		errs["category"] = "unknown category"
	}
	switch d.Status {
	case StatusDraft, StatusPublished, StatusArchived:
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
