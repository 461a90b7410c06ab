package Iservices

import "chat-gateway/internal/domain/entities"

// IChatlogStore persists conversation turns and replays them.
type IChatlogStore interface {
	Append(username string, turn entities.ConversationTurn) error
	History(username string) ([]entities.ConversationTurn, error)
}
