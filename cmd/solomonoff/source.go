package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/solomonoff-lang/solomonoff"
)

// runSourceFile feeds every non-blank line of path through engine's
// parser, in order, stopping at the first error.
func runSourceFile(engine *solomonoff.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := engine.Exec(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
