package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"chat-gateway/internal/domain/entities"
	Iservices "chat-gateway/internal/domain/interfaces/services"
	"chat-gateway/internal/infra/logger"
)

// LocalUserID is the identity a shell session runs under. It must appear in
// the allowlist's cmd column for the shell to be usable.
const LocalUserID = "local"

// Adapter is the interactive command-line surface: one line in, one reply
// out, until "exit" or EOF.
type Adapter struct {
	Logger *logger.Logger
	Router Iservices.IRouterService
	In     io.Reader
	Out    io.Writer
}

// NewAdapter creates a new instance of the adapter.
func NewAdapter(in io.Reader, out io.Writer, router Iservices.IRouterService, log *logger.Logger) *Adapter {
	return &Adapter{Logger: log, Router: router, In: in, Out: out}
}

func (a *Adapter) Name() string {
	return "cmd"
}

// Start reads prompts line by line. A blocked stdin read cannot be
// interrupted, so cancellation takes effect on the next line.
func (a *Adapter) Start(ctx context.Context) error {
	a.Logger.Info("Starting the command line listener")
	scanner := bufio.NewScanner(a.In)

	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := scanner.Text()
		if line == "exit" {
			break
		}
		if line == "" {
			continue
		}

		reply := a.Router.HandleMessage(ctx, entities.InboundMessage{
			Channel: a.Name(),
			UserID:  LocalUserID,
			Text:    line,
		})
		if err := a.Send(LocalUserID, reply); err != nil {
			a.Logger.Error(fmt.Sprintf("Failed to print reply: %v", err))
		}
	}

	a.Logger.Info("Closing the command line listener")
	return scanner.Err()
}

func (a *Adapter) Send(userID string, text string) error {
	_, err := fmt.Fprintln(a.Out, text)
	return err
}
