package services

import (
	"fmt"

	"chat-gateway/internal/domain/entities"
	Iservices "chat-gateway/internal/domain/interfaces/services"
	"chat-gateway/internal/infra/logger"
)

// ContextService builds the message array for one completion call: the
// global system prompt, the user's own system message, as much recorded
// history as the user's token limit allows, and finally the new prompt.
type ContextService struct {
	SystemPrompt string
	Chatlog      Iservices.IChatlogStore
	Counter      Iservices.ITokenCounter
	Logger       *logger.Logger
}

// NewContextService creates a new instance of the service.
func NewContextService(systemPrompt string, chatlog Iservices.IChatlogStore, counter Iservices.ITokenCounter, log *logger.Logger) *ContextService {
	return &ContextService{
		SystemPrompt: systemPrompt,
		Chatlog:      chatlog,
		Counter:      counter,
		Logger:       log,
	}
}

// BuildContext assembles the messages for the given account and prompt.
// History is replayed newest-first against the remaining token budget, so
// when the log outgrows the limit it is the oldest exchanges that drop off.
func (cs *ContextService) BuildContext(account entities.Account, prompt string) []entities.PromptMessage {
	messages := []entities.PromptMessage{
		{Role: entities.RoleSystem, Content: cs.SystemPrompt},
	}
	freeTokens := account.TokenLimit - cs.Counter.Count(cs.SystemPrompt) - cs.Counter.Count(prompt)

	if account.SystemMessage != "" {
		messages = append(messages, entities.PromptMessage{Role: entities.RoleSystem, Content: account.SystemMessage})
		freeTokens -= cs.Counter.Count(account.SystemMessage)
	}

	history, err := cs.Chatlog.History(account.Username)
	if err != nil {
		cs.Logger.Warn(fmt.Sprintf("Could not replay chat history for %s: %v", account.Username, err))
		history = nil
	}

	var replay []entities.PromptMessage
	for i := len(history) - 1; i >= 0 && freeTokens > 0; i-- {
		turn := history[i]
		replay = append(replay, entities.PromptMessage{Role: turn.Role, Content: turn.Content})
		freeTokens -= cs.Counter.Count(turn.Content)
	}
	for i := len(replay) - 1; i >= 0; i-- {
		messages = append(messages, replay[i])
	}

	return append(messages, entities.PromptMessage{Role: entities.RoleUser, Content: prompt})
}
