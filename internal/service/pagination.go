package service

import "github.com/Nivlac17/jwt-pizza-service/internal/store"

// Listing bounds applied to client supplied pages.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// NormalizePage clamps a client page to sane bounds. Page numbers start at 1.
func NormalizePage(p store.Page) store.Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}
