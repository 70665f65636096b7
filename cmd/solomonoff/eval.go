package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solomonoff-lang/solomonoff"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval FILE NAME INPUT",
		Short: "Load a source file and evaluate INPUT through the named transducer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, name, input := args[0], args[1], args[2]

			engine := solomonoff.New()
			engine.SetLogger(log)
			if err := runSourceFile(engine, path); err != nil {
				return err
			}

			out, ok, err := engine.Eval(name, []symbol.Symbol(input))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "(rejected)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}
}
