package Iservices

import (
	"context"

	"chat-gateway/internal/domain/entities"
)

// IRouterService handles one inbound message end to end and returns the text
// the originating channel must deliver back to the user. It always returns
// something: a completion, a rejection, or a user-visible error message.
type IRouterService interface {
	HandleMessage(ctx context.Context, msg entities.InboundMessage) string
}
