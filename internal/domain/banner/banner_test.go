package banner

import "testing"

func validDraft() Draft {
	return Draft{
		Title:    "Welcome Bonus",
		ImageURL: "https://cdn.example.com/welcome.png",
		Language: "en",
		Status:   StatusActive,
	}
}

func TestValidateOK(t *testing.T) {
	if errs := Validate(validDraft()); len(errs) != 0 {
		t.Fatalf("valid draft rejected: %v", errs)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"empty title", func(d *Draft) { d.Title = "  " }, "title"},
		{"missing image", func(d *Draft) { d.ImageURL = "" }, "image_url"},
		{"non-http image", func(d *Draft) { d.ImageURL = "ftp://x/y.png" }, "image_url"},
		{"relative image", func(d *Draft) { d.ImageURL = "/banners/y.png" }, "image_url"},
		{"bad link", func(d *Draft) { d.LinkURL = "not a url" }, "link_url"},
		{"unknown language", func(d *Draft) { d.Language = "fr" }, "language"},
		{"bad status", func(d *Draft) { d.Status = "paused" }, "status"},
		{"negative position", func(d *Draft) { d.Position = -1 }, "position"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			if errs := Validate(d); errs[tc.field] == "" {
				t.Fatalf("expected error on %s, got %v", tc.field, errs)
			}
		})
	}
}

func TestValidateLinkOptional(t *testing.T) {
	d := validDraft()
	d.LinkURL = ""
	if errs := Validate(d); len(errs) != 0 {
		t.Fatalf("empty link should be allowed: %v", errs)
	}
}

func TestCTR(t *testing.T) {
	b := Banner{Impressions: 200, Clicks: 5}
	if got := b.CTR(); got != 2.5 {
		t.Fatalf("ctr = %v, want 2.5", got)
	}
	if got := (Banner{}).CTR(); got != 0 {
		t.Fatalf("ctr without impressions = %v, want 0", got)
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.Language != "en" || d.Status != StatusInactive {
		t.Fatalf("defaults = %+v, want en/inactive", d)
	}
}
