package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"chat-gateway/internal/domain/dto"
	"chat-gateway/internal/domain/entities"
	Iservices "chat-gateway/internal/domain/interfaces/services"
	"chat-gateway/internal/infra/logger"
	"chat-gateway/internal/middleware"
)

// Adapter is the web surface: a small HTTP listener accepting one message
// per POST and replying in the response body. Unlike the push channels it
// has no out-of-band delivery path, so Send is only a contract stub.
type Adapter struct {
	Logger *logger.Logger
	Router Iservices.IRouterService
	server *http.Server
}

// NewAdapter creates a new instance of the adapter.
func NewAdapter(port string, router Iservices.IRouterService, log *logger.Logger) *Adapter {
	adapter := &Adapter{Logger: log, Router: router}

	muxRouter := mux.NewRouter()
	muxRouter.Use(middleware.LoggingMiddleware(log))
	muxRouter.HandleFunc("/webhook", adapter.HandleWebhook).Methods(http.MethodPost)
	muxRouter.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)

	adapter.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: muxRouter,
	}
	return adapter
}

func (a *Adapter) Name() string {
	return "webhook"
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (a *Adapter) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info(fmt.Sprintf("Webhook listener is running on %s", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error(fmt.Sprintf("Webhook listener forced to shutdown: %v", err))
		return err
	}
	a.Logger.Info("Webhook listener stopped gracefully")
	return nil
}

// HandleWebhook answers one message synchronously in the HTTP response.
func (a *Adapter) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var request dto.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Error to process JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(request.User) == "" || strings.TrimSpace(request.Text) == "" {
		http.Error(w, "user and text are required", http.StatusBadRequest)
		return
	}

	reply := a.Router.HandleMessage(r.Context(), entities.InboundMessage{
		Channel: a.Name(),
		UserID:  request.User,
		Text:    request.Text,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.WebhookResponse{Reply: reply})
}

// Send is unused on this surface; webhook replies travel in the HTTP
// response of the originating request.
func (a *Adapter) Send(userID string, text string) error {
	return fmt.Errorf("webhook channel cannot push to %s: replies are delivered in the HTTP response", userID)
}
