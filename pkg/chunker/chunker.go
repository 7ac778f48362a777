package chunker

import (
	"strings"

	"pdf-qa-be/internal/pkg/apperror"

	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultSize    = 400
	DefaultOverlap = 80
)

// Config controls the word window. Overlap must be smaller than Size.
type Config struct {
	Size    int
	Overlap int
}

func DefaultConfig() Config {
	return Config{Size: DefaultSize, Overlap: DefaultOverlap}
}

func (c Config) Validate() error {
	if c.Size <= 0 {
		return goerr.Wrap(apperror.ErrConfiguration, "chunk size must be positive", goerr.V("size", c.Size))
	}
	if c.Overlap < 0 {
		return goerr.Wrap(apperror.ErrConfiguration, "chunk overlap must not be negative", goerr.V("overlap", c.Overlap))
	}
	if c.Overlap >= c.Size {
		return goerr.Wrap(apperror.ErrConfiguration, "chunk overlap must be smaller than chunk size",
			goerr.V("size", c.Size),
			goerr.V("overlap", c.Overlap),
		)
	}
	return nil
}

// Chunker splits text into overlapping fixed-size word windows.
type Chunker struct {
	cfg Config
}

// New returns an error when the config would make the window stall.
func New(cfg Config) (*Chunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{cfg: cfg}, nil
}

func (c *Chunker) Config() Config {
	return c.cfg
}

// Split returns chunks in document order. The last window may be shorter
// than Size. Empty text yields no chunks.
func (c *Chunker) Split(text string) []string {
	words := strings.Fields(text)
	step := c.cfg.Size - c.cfg.Overlap

	chunks := make([]string, 0, Count(len(words), c.cfg))
	for start := 0; start < len(words); start += step {
		end := start + c.cfg.Size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

// Count is the number of windows Split produces for wordCount words.
func Count(wordCount int, cfg Config) int {
	if wordCount <= 0 {
		return 0
	}
	step := cfg.Size - cfg.Overlap
	if step <= 0 {
		return 0
	}
	return (wordCount + step - 1) / step
}
