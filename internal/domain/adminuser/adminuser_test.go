package adminuser

import "testing"

func validDraft() Draft {
	return Draft{
		Username: "operator1",
		Email:    "op@example.com",
		Role:     RoleSupport,
		Status:   StatusActive,
	}
}

func TestValidate(t *testing.T) {
	if errs := Validate(validDraft()); len(errs) != 0 {
		t.Fatalf("valid draft rejected: %v", errs)
	}

	cases := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"empty username", func(d *Draft) { d.Username = "" }, "username"},
		{"empty email", func(d *Draft) { d.Email = "" }, "email"},
		{"malformed email", func(d *Draft) { d.Email = "not-an-email" }, "email"},
		{"email without tld", func(d *Draft) { d.Email = "a@b" }, "email"},
		{"bad role", func(d *Draft) { d.Role = "superuser" }, "role"},
		{"bad status", func(d *Draft) { d.Status = "banned" }, "status"},
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
