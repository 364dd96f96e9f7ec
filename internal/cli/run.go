package cli

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/dl/fastdir/internal/filter"
	"github.com/dl/fastdir/internal/output"
	"github.com/dl/fastdir/internal/walker"
)

// Run executes the listing with the given config.
// Returns exit code: 0 = at least one entry listed, 1 = nothing listed,
// 2 = error.
func Run(cfg Config) int {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level: log.WarnLevel,
	})

	f, err := filter.New(cfg.Pattern, cfg.PCRE, cfg.IgnoreCase)
	if err != nil {
		logger.Error("invalid pattern", "err", err)
		return 2
	}

	// Determine color mode.
	useColor := false
	switch cfg.Color {
	case ColorAlways:
		useColor = true
	case ColorNever:
		useColor = false
	case ColorAuto:
		useColor = output.StdoutIsTerminal()
	}

	w := output.NewWriter()
	var formatter output.Formatter
	if cfg.JSONOutput {
		formatter = output.NewJSONFormatter()
	} else {
		styles := output.NoStyles()
		if useColor {
			styles = output.NewStyles()
		}
		formatter = output.NewTextFormatter(styles, useColor, cfg.Classify)
	}

	paths := cfg.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	results := walker.Walk(paths, walker.Options{
		Recursive:       cfg.Recursive,
		Hidden:          cfg.Hidden,
		NoIgnore:        cfg.NoIgnore,
		CaseInsensitive: cfg.CaseInsensitive,
		Workers:         cfg.Workers,
		Filter:          f,
	})

	// Headers are printed whenever more than one listing can appear.
	multiDir := cfg.Recursive || len(paths) > 1

	listed := false
	failed := false
	ow := output.NewOrderedWriter(w, formatter, multiDir)
	ow.WriteOrdered(results,
		func() { listed = true },
		func(res walker.DirResult) {
			failed = true
			logger.Warn("cannot list", "path", res.Path, "err", res.Err)
		})

	switch {
	case failed && !listed:
		return 2
	case listed:
		return 0
	}
	return 1
}
