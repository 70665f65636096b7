package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/solomonoff-lang/solomonoff/internal/replcmd"
	"github.com/solomonoff-lang/solomonoff/internal/session"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.OutOrStdout())
		},
	}
}

func runRepl(out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "solomonoff> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	sess := session.New()
	sess.Log = log
	dispatcher := replcmd.New(sess, out)

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := dispatcher.Dispatch(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
