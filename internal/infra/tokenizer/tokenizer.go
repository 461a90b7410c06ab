package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Counter counts completion tokens with the cl100k_base encoding, the one
// used by the chat models this gateway targets.
type Counter struct {
	encoding *tiktoken.Tiktoken
}

func New() (*Counter, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("loading cl100k_base encoding: %w", err)
	}
	return &Counter{encoding: encoding}, nil
}

func (c *Counter) Count(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}
