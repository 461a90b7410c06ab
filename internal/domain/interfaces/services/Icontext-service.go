package Iservices

import "chat-gateway/internal/domain/entities"

// IContextService assembles the message array for one completion call.
type IContextService interface {
	BuildContext(account entities.Account, prompt string) []entities.PromptMessage
}
