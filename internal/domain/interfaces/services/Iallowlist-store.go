package Iservices

import "chat-gateway/internal/domain/entities"

// IAllowlistStore answers membership queries against the loaded allowlist.
type IAllowlistStore interface {
	Lookup(channel string, userID string) (entities.Account, bool)
	IsAuthorized(channel string, userID string) bool
}
