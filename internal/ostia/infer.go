package ostia

import (
	"time"

	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/obs"
)

// progressInterval is how often Infer reports ingestion progress to log
// while scanning a large informant (spec §5: "a long-running OSTIA
// compression reports progress roughly every 8 seconds").
const progressInterval = 8 * time.Second

// Infer runs the full OSTIA pipeline over an informant: alphabet discovery,
// PTT construction, red/blue compression, and compilation back to an
// intermediate graph (spec §4.5's ostiaCompress external function,
// grounded on State::infer).
func Infer(samples []Sample, pos ig.V, log obs.Logger) (*ig.G, error) {
	alphabet := BuildAlphabet(samples)
	log.Debug("ostia alphabet built", map[string]any{"symbols": alphabet.Len(), "samples": len(samples)})

	root, err := buildPTTWithProgress(samples, alphabet, log)
	if err != nil {
		return nil, err
	}

	compress(root)
	log.Debug("ostia compression complete", map[string]any{})

	return compile(root, alphabet, pos)
}

// buildPTTWithProgress is buildPTT with a periodic info-level log emitted while
// inserting a long informant, so a slow ingestion from a large dataset file
// isn't silent.
func buildPTTWithProgress(samples []Sample, alphabet *Alphabet, log obs.Logger) (*state, error) {
	root := newState(alphabet.Len())
	start := time.Now()
	lastReport := start
	for i, s := range samples {
		if err := root.insertPositive(s.Input, s.Output, alphabet); err != nil {
			return nil, err
		}
		if time.Since(lastReport) >= progressInterval {
			log.Info("ostia ingestion progress", map[string]any{
				"processed": i + 1,
				"total":     len(samples),
			})
			lastReport = time.Now()
		}
	}
	return root, nil
}
