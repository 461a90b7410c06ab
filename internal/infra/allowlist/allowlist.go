package allowlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"chat-gateway/internal/domain/entities"
	"chat-gateway/internal/infra/logger"
)

// The whitelist csv starts with a header row:
//
//	username,limit,system,<channel1>,<channel2>,...
//
// Each data row maps the user's channel-specific IDs (one column per
// supported surface, cells may be empty) to an account carrying the token
// limit and the per-user system message.
var fixedColumns = []string{"username", "limit", "system"}

type channelKey struct {
	channel string
	userID  string
}

// Store is the in-memory allowlist. It is loaded once at startup and
// read-only afterwards, so it is safe for concurrent lookups.
type Store struct {
	accounts map[channelKey]entities.Account
}

// Load reads and validates the whitelist csv. Any malformed row is a load
// error; startup should treat a failure here as fatal.
func Load(path string, log *logger.Logger) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening whitelist %s: %w", path, err)
	}
	defer f.Close()

	store := &Store{accounts: map[channelKey]entities.Account{}}

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		// An empty whitelist is valid: nobody is authorized.
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading whitelist header: %w", err)
	}

	channels, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading whitelist row %d: %w", line, err)
		}
		if err := store.addRow(channels, row, line); err != nil {
			return nil, err
		}
	}

	log.Info(fmt.Sprintf("Loaded %d allowlist identities across %d channels from %s", len(store.accounts), len(channels), path))
	return store, nil
}

func parseHeader(header []string) ([]string, error) {
	if len(header) < len(fixedColumns)+1 {
		return nil, fmt.Errorf("whitelist header needs %s plus at least one channel column, got %d columns", strings.Join(fixedColumns, ","), len(header))
	}
	for i, want := range fixedColumns {
		if strings.TrimSpace(header[i]) != want {
			return nil, fmt.Errorf("whitelist header column %d must be %q, got %q", i+1, want, header[i])
		}
	}
	channels := make([]string, 0, len(header)-len(fixedColumns))
	for _, raw := range header[len(fixedColumns):] {
		channel := strings.TrimSpace(raw)
		if channel == "" {
			return nil, errors.New("whitelist header has an empty channel column")
		}
		channels = append(channels, channel)
	}
	return channels, nil
}

func (s *Store) addRow(channels []string, row []string, line int) error {
	username := strings.TrimSpace(row[0])
	if username == "" {
		return fmt.Errorf("whitelist row %d: username is empty", line)
	}
	if strings.ContainsAny(username, `/\`) {
		// Usernames name chat-log files; path separators are not allowed.
		return fmt.Errorf("whitelist row %d: username %q contains a path separator", line, username)
	}

	limit, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil || limit < 0 {
		return fmt.Errorf("whitelist row %d: limit %q is not a non-negative integer", line, row[1])
	}

	account := entities.Account{
		Username:      username,
		TokenLimit:    limit,
		SystemMessage: strings.TrimSpace(row[2]),
	}

	for i, channel := range channels {
		id := strings.TrimSpace(row[len(fixedColumns)+i])
		if id == "" {
			continue
		}
		key := channelKey{channel: channel, userID: id}
		if existing, ok := s.accounts[key]; ok {
			return fmt.Errorf("whitelist row %d: %s id %q already belongs to %s", line, channel, id, existing.Username)
		}
		s.accounts[key] = account
	}
	return nil
}

// Lookup returns the account behind a channel-specific user ID.
func (s *Store) Lookup(channel string, userID string) (entities.Account, bool) {
	account, ok := s.accounts[channelKey{channel: channel, userID: userID}]
	return account, ok
}

// IsAuthorized reports whether the identity appears in the allowlist.
func (s *Store) IsAuthorized(channel string, userID string) bool {
	_, ok := s.Lookup(channel, userID)
	return ok
}
