package pipeline

import (
	"fmt"

	"github.com/solomonoff-lang/solomonoff/internal/eval"
	"github.com/solomonoff-lang/solomonoff/internal/obs"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// Run executes every stage in order (spec §4.4's evaluate_with_buffer):
// each stage consumes the running buffer and produces the next one; a
// rejection at any stage short-circuits the whole pipeline.
func (p *Pipeline) Run(input []symbol.Symbol) ([]symbol.Symbol, bool, error) {
	buf := input
	for i := range p.Stages {
		stage := &p.Stages[i]
		next, ok, err := stage.run(buf, p.Log)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		buf = next
	}
	return buf, true, nil
}

func (s *Stage) run(in []symbol.Symbol, log obs.Logger) ([]symbol.Symbol, bool, error) {
	switch {
	case s.RG != nil:
		return s.runRG(in)
	case s.IsAlternative():
		return s.runAlternative(in)
	case s.Ext != nil:
		return s.runExternal(in, log)
	default:
		return nil, false, fmt.Errorf("pipeline: stage has no RG, Alternative, or External configured")
	}
}

func (s *Stage) runRG(in []symbol.Symbol) ([]symbol.Symbol, bool, error) {
	if len(s.StateScratch) < s.RG.Len() {
		s.StateScratch = make([]int, s.RG.Len())
	}
	out, ok, err := eval.Evaluate(s.RG, in, s.StateScratch)
	if err != nil || !ok {
		return nil, false, err
	}
	return out.Runes(), true, nil
}

// runAlternative implements Alternative(L, R) (spec §4.4): snapshot the
// input buffer, try L; on rejection restore the snapshot and try R.
// Grounded on the teacher's ConditionalQuery apply-then-restore-on-reject
// shape, without its goroutine-based concurrent fan-out (spec §5).
func (s *Stage) runAlternative(in []symbol.Symbol) ([]symbol.Symbol, bool, error) {
	snapshot := append([]symbol.Symbol(nil), in...)

	if s.AltLeft != nil {
		out, ok, err := s.AltLeft.Run(snapshot)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return out, true, nil
		}
	}
	if s.AltRight == nil {
		return nil, false, nil
	}
	return s.AltRight.Run(append([]symbol.Symbol(nil), snapshot...))
}

func (s *Stage) runExternal(in []symbol.Symbol, log obs.Logger) ([]symbol.Symbol, bool, error) {
	out, accepted, err := s.Ext.Run(in)
	if err != nil {
		log.Error("pipeline external stage failed", err, nil)
		return nil, false, nil
	}
	if !accepted {
		return nil, false, nil
	}
	return out, true, nil
}
