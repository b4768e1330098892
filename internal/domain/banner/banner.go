package banner

import (
	"net/url"
	"strings"
	"time"
)

// Status values a banner moves through.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusScheduled = "scheduled"
)

// Languages the platform serves banners in.
var Languages = []string{"en", "tr", "de", "ka"}

// Banner is a promotional banner slot on the player-facing site.
type Banner struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"image_url"`
	LinkURL     string    `json:"link_url,omitempty"`
	Language    string    `json:"language"`
	Status      string    `json:"status"`
	Position    int       `json:"position"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CTR returns the click-through rate as a percentage.
func (b Banner) CTR() float64 {
	if b.Impressions == 0 {
		return 0
	}
	return float64(b.Clicks) / float64(b.Impressions) * 100
}

// Draft is the create/edit payload for a banner.
type Draft struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url,omitempty"`
	Language string `json:"language"`
	Status   string `json:"status"`
	Position int    `json:"position"`
}

// Defaults returns the draft backing a fresh create form.
func Defaults() Draft {
	return Draft{Language: "en", Status: StatusInactive}
}

// DraftOf populates a draft from an existing banner for editing.
func DraftOf(b Banner) Draft {
	return Draft{
		Title:    b.Title,
		ImageURL: b.ImageURL,
		LinkURL:  b.LinkURL,
		Language: b.Language,
		Status:   b.Status,
		Position: b.Position,
	}
}

// Validate checks the draft and returns per-field messages.
func Validate(d Draft) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(d.ImageURL) == "" {
		errs["image_url"] = "image URL is required"
	} else if !isHTTPURL(d.ImageURL) {
		errs["image_url"] = "image URL must be a valid http(s) URL"
	}
	if d.LinkURL != "" && !isHTTPURL(d.LinkURL) {
		errs["link_url"] = "link URL must be a valid http(s) URL"
	}
	if !validLanguage(d.Language) {
		errs["language"] = "unsupported language"
	}
	switch d.Status {
	case StatusActive, StatusInactive, StatusScheduled:
	default:
		errs["status"] = "invalid status"
	}
	if d.Position < 0 {
		errs["position"] = "position must not be negative"
	}
	return errs
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func validLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}
