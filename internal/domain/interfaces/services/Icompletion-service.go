package Iservices

import (
	"context"

	"chat-gateway/internal/domain/entities"
)

type ICompletionService interface {
	Complete(ctx context.Context, messages []entities.PromptMessage) (string, error)
}
