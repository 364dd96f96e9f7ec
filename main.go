// Command fastdir lists directories fast. It reads raw kernel directory
// records straight into reusable arena memory, sorts them with a
// fixed-prefix word comparison, and scales across a tree with parallel
// workers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dl/fastdir/internal/cli"
)

func main() {
	var (
		cfg       cli.Config
		colorFlag string
	)

	root := &cobra.Command{
		Use:   "fastdir [flags] [path ...]",
		Short: "fast directory listing",
		Long: `fastdir lists the children of one or more directories, sorted,
using the fastest enumeration mechanism the platform offers. With -r it
walks whole trees in parallel, honoring .gitignore files.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			color, err := cli.ParseColorMode(colorFlag)
			if err != nil {
				return err
			}
			cfg.Color = color
			cfg.Paths = args
			if err := cfg.Validate(); err != nil {
				return err
			}
			os.Exit(cli.Run(cfg))
			return nil
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&cfg.Recursive, "recursive", "r", false, "recurse into subdirectories")
	flags.BoolVarP(&cfg.Hidden, "hidden", "H", false, "include hidden entries")
	flags.BoolVar(&cfg.NoIgnore, "no-ignore", false, "do not honor .gitignore files")
	flags.BoolVarP(&cfg.CaseInsensitive, "fold", "f", false, "sort case-insensitively")
	flags.StringVarP(&cfg.Pattern, "pattern", "p", "", "only list names matching this pattern")
	flags.BoolVarP(&cfg.PCRE, "pcre", "P", false, "treat the pattern as a PCRE2 regex")
	flags.BoolVarP(&cfg.IgnoreCase, "ignore-case", "i", false, "match the pattern case-insensitively")
	flags.BoolVar(&cfg.JSONOutput, "json", false, "emit JSON lines")
	flags.BoolVarP(&cfg.Classify, "classify", "F", false, "append / to directories and @ to symlinks")
	flags.StringVar(&colorFlag, "color", "auto", "colorize output: auto, always or never")
	flags.IntVarP(&cfg.Workers, "workers", "j", 0, "parallel workers for -r (0 = NumCPU)")

	// Arguments from the config file come first so the command line wins.
	args := append(cli.LoadConfigArgs(), os.Args[1:]...)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fastdir:", err)
		os.Exit(2)
	}
}
