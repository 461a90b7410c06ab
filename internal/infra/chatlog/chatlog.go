package chatlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chat-gateway/internal/domain/entities"
	"chat-gateway/internal/infra/logger"
)

// Store appends conversation turns to per-user csv files inside the
// configured chat-log directory. One file per username, rows of
// timestamp,role,content. Appends are serialized so concurrent
// conversations never interleave inside a record.
type Store struct {
	dir    string
	logger *logger.Logger
	mu     sync.Mutex
}

func NewStore(dir string, log *logger.Logger) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("chat-log directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("chat-log path %s is not a directory", dir)
	}
	return &Store{dir: dir, logger: log}, nil
}

func (s *Store) path(username string) string {
	return filepath.Join(s.dir, username+".csv")
}

// Append writes one turn to the user's chat log, creating the file on first
// use.
func (s *Store) Append(username string, turn entities.ConversationTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path(username), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening chat log for %s: %w", username, err)
	}

	writer := csv.NewWriter(f)
	writeErr := writer.Write([]string{
		turn.Timestamp.Format(time.RFC3339),
		turn.Role,
		turn.Content,
	})
	writer.Flush()
	if writeErr == nil {
		writeErr = writer.Error()
	}

	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("appending chat log for %s: %w", username, writeErr)
	}
	return nil
}

// History returns the user's recorded turns, oldest first. A user without a
// chat log yet has an empty history.
func (s *Store) History(username string) ([]entities.ConversationTurn, error) {
	f, err := os.Open(s.path(username))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening chat log for %s: %w", username, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 3

	var turns []entities.ConversationTurn
	line := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			// Keep serving the readable part of a damaged log.
			s.logger.Warn(fmt.Sprintf("Skipping malformed chat-log row %d for %s: %v", line, username, err))
			continue
		}
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			s.logger.Warn(fmt.Sprintf("Skipping chat-log row %d for %s: bad timestamp %q", line, username, row[0]))
			continue
		}
		turns = append(turns, entities.ConversationTurn{
			Timestamp: ts,
			Role:      row[1],
			Content:   row[2],
		})
	}
	return turns, nil
}
