package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"chat-gateway/internal/config"
	Iservices "chat-gateway/internal/domain/interfaces/services"
	"chat-gateway/internal/infra/allowlist"
	"chat-gateway/internal/infra/channels/discord"
	"chat-gateway/internal/infra/channels/shell"
	"chat-gateway/internal/infra/channels/webhook"
	"chat-gateway/internal/infra/chatlog"
	"chat-gateway/internal/infra/logger"
	"chat-gateway/internal/infra/services"
	"chat-gateway/internal/infra/tokenizer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel, true)

	allowlistStore, err := allowlist.Load(cfg.WhitelistPath, log)
	if err != nil {
		log.Fatal(fmt.Sprintf("Could not load the allowlist: %v", err))
	}

	chatlogStore, err := chatlog.NewStore(cfg.ChatlogsDir, log)
	if err != nil {
		log.Fatal(fmt.Sprintf("Could not open the chat-log directory: %v", err))
	}

	counter, err := tokenizer.New()
	if err != nil {
		log.Fatal(fmt.Sprintf("Could not initialize the tokenizer: %v", err))
	}

	contextSvc := services.NewContextService(cfg.SystemPrompt, chatlogStore, counter, log)
	completionSvc := services.NewCompletionService(cfg, log)
	router := services.NewRouterService(log, allowlistStore, chatlogStore, contextSvc, completionSvc, cfg.CompletionTimeout)

	adapters := []Iservices.IChannelAdapter{
		webhook.NewAdapter(cfg.HTTPPort, router, log),
	}

	if cfg.DiscordEnabled {
		discordAdapter, err := discord.NewAdapter(cfg.DiscordAPIKey, router, log)
		if err != nil {
			log.Fatal(fmt.Sprintf("Could not create the discord adapter: %v", err))
		}
		adapters = append(adapters, discordAdapter)
	}

	if cfg.ShellEnabled {
		adapters = append(adapters, shell.NewAdapter(os.Stdin, os.Stdout, router, log))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	for _, adapter := range adapters {
		adapter := adapter
		group.Go(func() error {
			log.Info(fmt.Sprintf("Starting the %s channel", adapter.Name()))
			if err := adapter.Start(groupCtx); err != nil {
				return fmt.Errorf("%s channel: %w", adapter.Name(), err)
			}
			log.Info(fmt.Sprintf("The %s channel stopped", adapter.Name()))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		log.Fatal(fmt.Sprintf("Shutting down after a channel failure: %v", err))
	}
	log.Info("All channels stopped. Goodbye.")
}
