package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solomonoff-lang/solomonoff"
)

func newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile FILE",
		Short: "Parse and bind a source file without evaluating anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			engine := solomonoff.New()
			engine.SetLogger(log)
			if err := runSourceFile(engine, path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d binding(s)\n", path, len(engine.ListBindings()))
			return nil
		},
	}
}
