package adminuser

import (
	"regexp"
	"strings"
	"time"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleSupport   = "support"
	RoleFinance   = "finance"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User is a back-office operator account.
type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Draft is the create/edit payload for an operator account.
type Draft struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func Defaults() Draft {
	return Draft{Role: RoleSupport, Status: StatusActive}
}

func DraftOf(u User) Draft {
	return Draft{
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Status:   u.Status,
	}
}

// Validate checks the draft and returns per-field messages.
func Validate(d Draft) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(d.Username) == "" {
		errs["username"] = "username is required"
	}
	if strings.TrimSpace(d.Email) == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(d.Email) {
		errs["email"] = "email is not well-formed"
	}
	switch d.Role {
	case RoleAdmin, RoleModerator, RoleSupport, RoleFinance:
	default:
		errs["role"] = "invalid role"
	}
	switch d.Status {
	case StatusActive, StatusSuspended:
	default:
		errs["status"] = "invalid status"
	}
	return errs
}
