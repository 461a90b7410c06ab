package Iservices

import "context"

// IChannelAdapter is one messaging surface. Start runs the inbound listening
// loop until the context is cancelled; Send delivers a reply to a user on
// this surface.
type IChannelAdapter interface {
	Name() string
	Start(ctx context.Context) error
	Send(userID string, text string) error
}
