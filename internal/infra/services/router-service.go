package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"chat-gateway/internal/domain/entities"
	Iservices "chat-gateway/internal/domain/interfaces/services"
	"chat-gateway/internal/infra/logger"
)

// User-facing replies for the failure paths. Every inbound message gets an
// answer on its own channel, never a silent drop.
const (
	RejectionReply = "Sorry, you are not on the guest list for this assistant."
	RateLimitReply = "The assistant is handling too many requests right now. Please try again in a moment."
	FailureReply   = "Something went wrong while reaching the assistant. Please try again."
)

// RouterService mediates between the channel adapters, the allowlist, the
// completion backend and the chat logs. Each inbound message is a single
// authorize -> build context -> complete -> record cycle; adapters may run
// many of these concurrently.
type RouterService struct {
	Logger     *logger.Logger
	Allowlist  Iservices.IAllowlistStore
	Chatlog    Iservices.IChatlogStore
	Context    Iservices.IContextService
	Completion Iservices.ICompletionService
	Timeout    time.Duration
}

// NewRouterService creates a new instance of the service.
func NewRouterService(log *logger.Logger, allowlist Iservices.IAllowlistStore, chatlog Iservices.IChatlogStore, contextSvc Iservices.IContextService, completion Iservices.ICompletionService, timeout time.Duration) *RouterService {
	return &RouterService{
		Logger:     log,
		Allowlist:  allowlist,
		Chatlog:    chatlog,
		Context:    contextSvc,
		Completion: completion,
		Timeout:    timeout,
	}
}

// HandleMessage runs one inbound message through the pipeline and returns
// the reply text for the originating adapter to deliver.
func (rs *RouterService) HandleMessage(ctx context.Context, msg entities.InboundMessage) (reply string) {
	fields := logrus.Fields{
		"request_id": uuid.NewString(),
		"channel":    msg.Channel,
		"user_id":    msg.UserID,
	}

	defer func() {
		if r := recover(); r != nil {
			rs.Logger.Error(fmt.Sprintf("Recovered from panic while handling a message: %v", r), fields)
			reply = FailureReply
		}
	}()

	account, ok := rs.Allowlist.Lookup(msg.Channel, msg.UserID)
	if !ok {
		rs.Logger.Warn("Message authentication failed", fields)
		return RejectionReply
	}
	fields["username"] = account.Username

	// Build the context before recording the prompt; the replayed history
	// must not already contain the message being answered.
	messages := rs.Context.BuildContext(account, msg.Text)

	if err := rs.Chatlog.Append(account.Username, entities.ConversationTurn{
		Timestamp: time.Now(),
		Role:      entities.RoleUser,
		Content:   msg.Text,
	}); err != nil {
		// Persistence must not block the conversation.
		rs.Logger.Error(fmt.Sprintf("Failed to record prompt: %v", err), fields)
	}

	completionCtx := ctx
	if rs.Timeout > 0 {
		var cancel context.CancelFunc
		completionCtx, cancel = context.WithTimeout(ctx, rs.Timeout)
		defer cancel()
	}

	text, err := rs.Completion.Complete(completionCtx, messages)
	if err != nil {
		rs.Logger.Error(fmt.Sprintf("Completion failed: %v", err), fields)
		if errors.Is(err, ErrCompletionRateLimited) {
			return RateLimitReply
		}
		return FailureReply
	}

	if err := rs.Chatlog.Append(account.Username, entities.ConversationTurn{
		Timestamp: time.Now(),
		Role:      entities.RoleAssistant,
		Content:   text,
	}); err != nil {
		rs.Logger.Error(fmt.Sprintf("Failed to record response: %v", err), fields)
	}

	rs.Logger.Info("Completed a conversation turn", fields)
	return text
}
