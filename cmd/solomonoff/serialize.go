package main

import (
	"github.com/spf13/cobra"

	"github.com/solomonoff-lang/solomonoff"
)

func newSerializeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serialize FILE NAME",
		Short: "Load a source file and print the named transducer's AT&T text form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, name := args[0], args[1]

			engine := solomonoff.New()
			engine.SetLogger(log)
			if err := runSourceFile(engine, path); err != nil {
				return err
			}

			return engine.WriteTransducer(cmd.OutOrStdout(), name)
		},
	}
}
