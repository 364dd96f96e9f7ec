package cli

import "fmt"

// ColorMode controls when colored output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

// ParseColorMode converts a --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Config holds all configuration for a fastdir run.
type Config struct {
	Paths           []string
	Recursive       bool
	Hidden          bool
	NoIgnore        bool
	CaseInsensitive bool // fold case when sorting
	Pattern         string
	PCRE            bool
	IgnoreCase      bool // fold case when matching Pattern
	JSONOutput      bool
	Classify        bool // append / to dirs and @ to symlinks
	Color           ColorMode
	Workers         int
}

// Validate checks that the config is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.PCRE && c.Pattern == "" {
		return fmt.Errorf("-P requires a pattern (-p)")
	}
	if c.IgnoreCase && c.Pattern == "" {
		return fmt.Errorf("--ignore-case requires a pattern (-p)")
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	return nil
}
