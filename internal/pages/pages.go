// Package pages instantiates the generic list controller once per admin
// entity, binding it to the entity's endpoint, defaults and validation.
// This is the single place the per-page wiring lives instead of being
// repeated on every screen.
package pages

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mehmetresatdemir/cryptonbets-admin/internal/api"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/domain/adminuser"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/domain/banner"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/domain/emailtpl"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/domain/news"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/domain/notification"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/domain/ticket"
	"github.com/mehmetresatdemir/cryptonbets-admin/internal/listctl"
)

// Deps carries what every page controller needs. Redis is optional:
// when set, list results are cached there and shared across operator
// sessions; otherwise each controller keeps an in-process cache.
type Deps struct {
	Client   *api.Client
	Notifier listctl.Notifier
	PageSize int
	Redis    *redis.Client
	CacheTTL time.Duration
}

func cacheFor[T any](d Deps, entity string) listctl.Cache[T] {
	if d.Redis != nil {
		return listctl.NewRedisCache[T](d.Redis, entity, d.CacheTTL)
	}
	return listctl.NewMemoryCache[T]()
}

// Banners builds the banner management page controller.
func Banners(d Deps) (*listctl.Controller[banner.Banner, banner.Draft], error) {
	return listctl.New(listctl.Config[banner.Banner, banner.Draft]{
		Client:   d.Client,
		Entity:   "banners",
		Label:    "banner",
		Cache:    cacheFor[banner.Banner](d, "banners"),
		Notifier: d.Notifier,
		PageSize: d.PageSize,
		ID:       func(b banner.Banner) int64 { return b.ID },
		Defaults: banner.Defaults,
		DraftOf:  banner.DraftOf,
		Validate: func(dr banner.Draft) listctl.FieldErrors { return banner.Validate(dr) },
	})
}

// News builds the news article page controller.
func News(d Deps) (*listctl.Controller[news.Article, news.Draft], error) {
	return listctl.New(listctl.Config[news.Article, news.Draft]{
		Client:    d.Client,
		Entity:    "news",
		Label:     "article",
		Cache:     cacheFor[news.Article](d, "news"),
		Notifier:  d.Notifier,
		PageSize:  d.PageSize,
		ID:        func(a news.Article) int64 { return a.ID },
		Defaults:  news.Defaults,
		DraftOf:   news.DraftOf,
		Normalize: news.Normalize,
		Validate:  func(dr news.Draft) listctl.FieldErrors { return news.Validate(dr) },
	})
}

// Notifications builds the notification page controller.
func Notifications(d Deps) (*listctl.Controller[notification.Notification, notification.Draft], error) {
	return listctl.New(listctl.Config[notification.Notification, notification.Draft]{
		Client:   d.Client,
		Entity:   "notifications",
		Label:    "notification",
		Cache:    cacheFor[notification.Notification](d, "notifications"),
		Notifier: d.Notifier,
		PageSize: d.PageSize,
		ID:       func(n notification.Notification) int64 { return n.ID },
		Defaults: notification.Defaults,
		DraftOf:  notification.DraftOf,
		Validate: func(dr notification.Draft) listctl.FieldErrors { return notification.Validate(dr) },
	})
}

// Tickets builds the support ticket page controller.
func Tickets(d Deps) (*listctl.Controller[ticket.Ticket, ticket.Draft], error) {
	return listctl.New(listctl.Config[ticket.Ticket, ticket.Draft]{
		Client:   d.Client,
		Entity:   "tickets",
		Label:    "ticket",
		Cache:    cacheFor[ticket.Ticket](d, "tickets"),
		Notifier: d.Notifier,
		PageSize: d.PageSize,
		ID:       func(t ticket.Ticket) int64 { return t.ID },
		Defaults: ticket.Defaults,
		DraftOf:  ticket.DraftOf,
		Validate: func(dr ticket.Draft) listctl.FieldErrors { return ticket.Validate(dr) },
	})
}

// EmailTemplates builds the email template page controller.
func EmailTemplates(d Deps) (*listctl.Controller[emailtpl.Template, emailtpl.Draft], error) {
	return listctl.New(listctl.Config[emailtpl.Template, emailtpl.Draft]{
		Client:    d.Client,
		Entity:    "email-templates",
		Label:     "template",
		Cache:     cacheFor[emailtpl.Template](d, "email-templates"),
		Notifier:  d.Notifier,
		PageSize:  d.PageSize,
		ID:        func(t emailtpl.Template) int64 { return t.ID },
		Defaults:  emailtpl.Defaults,
		DraftOf:   emailtpl.DraftOf,
		Normalize: emailtpl.Normalize,
		Validate:  func(dr emailtpl.Draft) listctl.FieldErrors { return emailtpl.Validate(dr) },
	})
}

// AdminUsers builds the operator account page controller.
func AdminUsers(d Deps) (*listctl.Controller[adminuser.User, adminuser.Draft], error) {
	return listctl.New(listctl.Config[adminuser.User, adminuser.Draft]{
		Client:   d.Client,
		Entity:   "users",
		Label:    "user",
		Cache:    cacheFor[adminuser.User](d, "users"),
		Notifier: d.Notifier,
		PageSize: d.PageSize,
		ID:       func(u adminuser.User) int64 { return u.ID },
		Defaults: adminuser.Defaults,
		DraftOf:  adminuser.DraftOf,
		Validate: func(dr adminuser.Draft) listctl.FieldErrors { return adminuser.Validate(dr) },
	})
}
