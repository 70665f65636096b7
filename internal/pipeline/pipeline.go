// Package pipeline composes evaluator stages: a bare ranged graph, an
// Alternative fallback between two sub-pipelines, or a delegate to an
// externally-registered function (spec §4.4). Grounded on the teacher's
// internal/query.ConditionalQuery for the snapshot/run/restore-on-reject
// shape of Alternative, deliberately without the teacher's goroutine-based
// executeConcurrent fan-out: spec §5 mandates the core run single-threaded
// and cooperative, so every stage here executes in-process, in order.
package pipeline

import (
	"github.com/solomonoff-lang/solomonoff/internal/obs"
	"github.com/solomonoff-lang/solomonoff/internal/ranged"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// External is the signature a registered external pipeline stage must
// implement: consume the current buffer, produce the next one, report
// acceptance.
type External interface {
	Run(in []symbol.Symbol) (out []symbol.Symbol, accepted bool, err error)
}

// Stage is one element of a Pipeline: exactly one of RG, Alternative's two
// branches, or Ext is set.
type Stage struct {
	RG           *ranged.RG
	AltLeft      *Pipeline
	AltRight     *Pipeline
	Ext          External
	StateScratch []int // reused across Run calls for the RG case
}

// IsAlternative reports whether this stage is an Alternative(L, R).
func (s Stage) IsAlternative() bool { return s.AltLeft != nil || s.AltRight != nil }

// Pipeline is an ordered sequence of stages (spec §4.4's
// evaluate_with_buffer loop). It carries no pipeline-wide state count: each
// RG stage sizes its own state_to_index scratchpad (StateScratch) when it
// runs.
type Pipeline struct {
	Stages []Stage
	Log    obs.Logger
}

// NewPipeline builds a pipeline with a discarding logger; callers that want
// observability assign Log afterward.
func NewPipeline(stages []Stage) *Pipeline {
	return &Pipeline{Stages: stages, Log: obs.Nop()}
}
