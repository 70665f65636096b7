package registry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/obs"
	"github.com/solomonoff-lang/solomonoff/internal/ostia"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// DatasetLine is one decoded line of a dataset file (spec §6): a query
// (input only) or a positive sample (input and output).
type DatasetLine struct {
	Input   symbol.IntSeq
	Output  symbol.IntSeq
	IsQuery bool
}

// LineSource abstracts over where dataset lines come from — a plain text
// file or a spawned interpreter's stdout — keeping subprocess management
// out of the OSTIA-facing code (spec §9 "isolate subprocess spawning
// behind an abstract line stream trait").
type LineSource interface {
	Next() (DatasetLine, bool, error)
	Close() error
}

// openLineSource picks a LineSource by file extension (spec §6 "Dataset
// file interface"): `.py` and `.sh` spawn an external interpreter child
// process and consume its stdout line by line; anything else is read as
// plain text directly.
func openLineSource(path string) (LineSource, error) {
	switch filepath.Ext(path) {
	case ".py":
		return newProcessLineSource("python3", path)
	case ".sh":
		return newProcessLineSource("sh", path)
	default:
		return newFileLineSource(path)
	}
}

func parseDatasetLine(raw string) (DatasetLine, bool, error) {
	line := strings.TrimRight(raw, "\r\n")
	if line == "" {
		return DatasetLine{}, false, nil
	}
	parts := strings.SplitN(line, "\t", 2)
	input, err := symbol.FromString(parts[0])
	if err != nil {
		return DatasetLine{}, false, err
	}
	if len(parts) == 1 {
		return DatasetLine{Input: input, IsQuery: true}, true, nil
	}
	output, err := symbol.FromString(parts[1])
	if err != nil {
		return DatasetLine{}, false, err
	}
	return DatasetLine{Input: input, Output: output}, true, nil
}

type fileLineSource struct {
	f       *os.File
	scanner *bufio.Scanner
}

func newFileLineSource(path string) (*fileLineSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &fileLineSource{f: f, scanner: bufio.NewScanner(f)}, nil
}

func (s *fileLineSource) Next() (DatasetLine, bool, error) {
	for s.scanner.Scan() {
		line, ok, err := parseDatasetLine(s.scanner.Text())
		if err != nil {
			return DatasetLine{}, false, err
		}
		if ok {
			return line, true, nil
		}
	}
	return DatasetLine{}, false, s.scanner.Err()
}

func (s *fileLineSource) Close() error { return s.f.Close() }

// processLineSource spawns interpreter on path as a child process and
// reads dataset lines off its stdout, one per line, exactly like a plain
// text file once the process is running (spec §6, §9).
type processLineSource struct {
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	scanner *bufio.Scanner
}

func newProcessLineSource(interpreter, path string) (*processLineSource, error) {
	cmd := exec.Command(interpreter, path)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("registry: spawning %s %s: %w", interpreter, path, err)
	}
	return &processLineSource{cmd: cmd, stdout: stdout, scanner: bufio.NewScanner(stdout)}, nil
}

func (s *processLineSource) Next() (DatasetLine, bool, error) {
	for s.scanner.Scan() {
		line, ok, err := parseDatasetLine(s.scanner.Text())
		if err != nil {
			return DatasetLine{}, false, err
		}
		if ok {
			return line, true, nil
		}
	}
	return DatasetLine{}, false, s.scanner.Err()
}

func (s *processLineSource) Close() error {
	s.stdout.Close()
	return s.cmd.Wait()
}

// ActiveLearningFromDataset implements spec §4.5's
// `activeLearningFromDataset(path)`: a first pass over the dataset counts
// sample and query lines and logs the counts through log (spec §5); a
// second pass collects the positive pairs and runs OSTIA on them (spec
// §4.5). The first pass does not build the alphabet: ostia.Infer derives it
// from the second pass's samples. Query lines (no output) are counted but
// not fed to OSTIA, which only learns from positive pairs.
func ActiveLearningFromDataset(path string, pos ig.V, log obs.Logger) (*ig.G, error) {
	alphabetPass, err := openLineSource(path)
	if err != nil {
		return nil, err
	}
	var sampleCount, queryCount int
	for {
		line, ok, err := alphabetPass.Next()
		if err != nil {
			alphabetPass.Close()
			return nil, err
		}
		if !ok {
			break
		}
		if line.IsQuery {
			queryCount++
		} else {
			sampleCount++
		}
	}
	if err := alphabetPass.Close(); err != nil {
		return nil, err
	}
	log.Info("dataset first pass complete", map[string]any{
		"path": path, "samples": sampleCount, "queries": queryCount,
	})

	learnPass, err := openLineSource(path)
	if err != nil {
		return nil, err
	}
	defer learnPass.Close()

	samples := make([]ostia.Sample, 0, sampleCount)
	for {
		line, ok, err := learnPass.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if line.IsQuery {
			continue
		}
		samples = append(samples, ostia.Sample{Input: line.Input, Output: line.Output})
	}

	return ostia.Infer(samples, pos, log)
}
