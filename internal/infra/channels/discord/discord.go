package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"chat-gateway/internal/domain/entities"
	Iservices "chat-gateway/internal/domain/interfaces/services"
	"chat-gateway/internal/infra/logger"
)

// Adapter is the Discord surface. It listens for direct messages and answers
// each one on the sender's DM channel. Guild chatter and the bot's own
// messages are ignored.
type Adapter struct {
	Logger  *logger.Logger
	Router  Iservices.IRouterService
	session *discordgo.Session
}

// NewAdapter creates a new instance of the adapter.
func NewAdapter(token string, router Iservices.IRouterService, log *logger.Logger) (*Adapter, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsDirectMessages

	adapter := &Adapter{Logger: log, Router: router, session: session}
	session.AddHandler(adapter.onMessage)
	return adapter, nil
}

func (a *Adapter) Name() string {
	return "discord"
}

// Start opens the gateway connection and holds it until the context is
// cancelled.
func (a *Adapter) Start(ctx context.Context) error {
	if err := a.session.Open(); err != nil {
		return fmt.Errorf("connecting to discord: %w", err)
	}
	a.Logger.Info(fmt.Sprintf("Connected to Discord as %s", a.session.State.User.Username))

	<-ctx.Done()
	a.Logger.Info("Disconnecting from Discord")
	return a.session.Close()
}

func (a *Adapter) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer func() {
		if r := recover(); r != nil {
			a.Logger.Error(fmt.Sprintf("Recovered from panic in the discord handler: %v", r))
		}
	}()

	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	if m.GuildID != "" {
		// DMs only.
		return
	}

	reply := a.Router.HandleMessage(context.Background(), entities.InboundMessage{
		Channel: a.Name(),
		UserID:  m.Author.ID,
		Text:    m.Content,
	})

	if err := a.Send(m.Author.ID, reply); err != nil {
		a.Logger.Error(fmt.Sprintf("Failed to send discord reply to %s: %v", m.Author.ID, err))
	}
}

// Send delivers text to the user's DM channel.
func (a *Adapter) Send(userID string, text string) error {
	channel, err := a.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("opening DM channel with %s: %w", userID, err)
	}
	if _, err := a.session.ChannelMessageSend(channel.ID, text); err != nil {
		return fmt.Errorf("sending DM to %s: %w", userID, err)
	}
	return nil
}
