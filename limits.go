package shastina

import (
	"fmt"

	"github.com/jacoelho/shastina/pkg/snstream"
)

const (
	// Default buffer caps. One byte of each cap is reserved for the
	// terminated view, leaving 1023 usable token bytes and 32766 usable
	// string bytes.
	defaultMaxTokenSize  = 1024
	defaultMaxStringSize = 32767

	initBufferSize = 32
)

type config struct {
	maxTokenSize  int
	maxStringSize int
	mode          snstream.Mode
}

// Option configures a Reader.
type Option func(*config)

// MaxTokenSize caps the token buffer at n bytes of capacity. Zero selects
// the default.
func MaxTokenSize(n int) Option {
	return func(c *config) { c.maxTokenSize = n }
}

// MaxStringSize caps the string-body buffer at n bytes of capacity. Zero
// selects the default.
func MaxStringSize(n int) Option {
	return func(c *config) { c.maxStringSize = n }
}

// StrictTokens selects the string-mode token grammar: every token byte must
// be visible printing ASCII, comments open with & instead of #, and
// apostrophe string prefixes are recognized.
func StrictTokens() Option {
	return func(c *config) { c.mode = snstream.BlockMode }
}

func resolveConfig(opts []Option) (config, error) {
	cfg := config{
		maxTokenSize:  defaultMaxTokenSize,
		maxStringSize: defaultMaxStringSize,
		mode:          snstream.TokenizerMode,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxTokenSize == 0 {
		cfg.maxTokenSize = defaultMaxTokenSize
	}
	if cfg.maxStringSize == 0 {
		cfg.maxStringSize = defaultMaxStringSize
	}
	if cfg.maxTokenSize < 2 {
		return config{}, fmt.Errorf("max token size must be >= 2")
	}
	if cfg.maxStringSize < 2 {
		return config{}, fmt.Errorf("max string size must be >= 2")
	}
	return cfg, nil
}
