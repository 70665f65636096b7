// Command solomonoff is the CLI front end: an interactive REPL plus
// one-shot eval/compile/serialize subcommands over the solomonoff library
// package. Grounded on teacher cmd/cli/main.go's prompt-loop shape,
// restructured into github.com/spf13/cobra's subcommand tree since the
// teacher's single hand-rolled command switch doesn't generalize cleanly
// to a REPL plus standalone eval/compile/serialize CLI verbs, of which only
// eval is also a REPL command (/eval).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solomonoff-lang/solomonoff/internal/config"
	"github.com/solomonoff-lang/solomonoff/internal/obs"
)

var (
	configPath  string
	verboseFlag bool
	cfg         config.Config
	log         obs.Logger
)

func main() {
	root := &cobra.Command{
		Use:   "solomonoff",
		Short: "Compiler and runtime for weighted finite-state transducer expressions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded := config.Default()
			if configPath != "" {
				var err error
				loaded, err = config.Load(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
			}
			if verboseFlag {
				loaded.Verbose = true
			}
			cfg = loaded
			log = obs.New(os.Stderr, cfg.Level())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML configuration file")
	root.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "emit debug-level log output")

	root.AddCommand(newReplCmd())
	root.AddCommand(newEvalCmd())
	root.AddCommand(newCompileCmd())
	root.AddCommand(newSerializeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
