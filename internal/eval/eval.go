// Package eval implements the tabular evaluator: a columnar best-weight
// backtracking search over a ranged graph for a single input sequence
// (spec §4.3). Grounded on the teacher's container/heap-based
// max_probability_path.go for the "keep exactly one best candidate per
// destination, replace on strict improvement" shape, adapted from a
// probability-maximizing heap search to a column-indexed weight search
// since the ranged graph dispatches per input symbol rather than per
// generic edge traversal.
package eval

import (
	"fmt"

	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/ranged"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// columnEntry is one active search candidate: the node it occupies, the
// predecessor slot in the previous column, and the edge consumed to reach
// it (nil for the seed entry in column 0).
type columnEntry struct {
	prevIndex int
	state     int
	edge      *ig.P
	consumed  symbol.Symbol
	weight    int32
}

// Evaluate runs the best-weight search described in spec §4.3 and
// reconstructs the winning path's output. stateToIndex is a caller-owned
// scratchpad that must have length >= rg.Len(); its contents need not be
// cleared between calls, since every read is guarded by a check that the
// addressed column slot actually belongs to the state being queried (spec
// §5). Evaluate reports (output, false, nil) when no accepting path
// exists — that is a rejection, not an error.
func Evaluate(rg *ranged.RG, input []symbol.Symbol, stateToIndex []int) (symbol.IntSeq, bool, error) {
	if len(stateToIndex) < rg.Len() {
		return symbol.Empty, false, fmt.Errorf(
			"eval: state_to_index scratchpad too small: have %d, need %d", len(stateToIndex), rg.Len())
	}
	for _, s := range input {
		if err := symbol.ValidateInputSymbol(s); err != nil {
			return symbol.Empty, false, err
		}
	}

	columns := make([][]columnEntry, len(input)+1)
	columns[0] = []columnEntry{{prevIndex: 0, state: rg.Initial}}

	for step, sym := range input {
		cur := columns[step]
		var next []columnEntry
		for srcIdx, entry := range cur {
			transitions := ranged.BinarySearch(rg.Transitions(entry.state), sym)
			for _, t := range transitions {
				if t.Target == ranged.NoTarget {
					continue
				}
				newWeight := entry.weight + t.Edge.Weight
				if slot := stateToIndex[t.Target]; slot < len(next) && next[slot].state == t.Target {
					if newWeight > next[slot].weight {
						edge := t.Edge
						next[slot] = columnEntry{
							prevIndex: srcIdx, state: t.Target, edge: &edge, consumed: sym, weight: newWeight,
						}
					}
					continue
				}
				edge := t.Edge
				stateToIndex[t.Target] = len(next)
				next = append(next, columnEntry{
					prevIndex: srcIdx, state: t.Target, edge: &edge, consumed: sym, weight: newWeight,
				})
			}
		}
		columns[step+1] = next
	}

	bestIdx, bestWeight, found := -1, int32(0), false
	final := columns[len(input)]
	for i, entry := range final {
		accept := rg.Accept(entry.state)
		if accept == nil {
			continue
		}
		total := entry.weight + accept.Weight
		if !found || total > bestWeight {
			bestIdx, bestWeight, found = i, total, true
		}
	}
	if !found {
		return symbol.Empty, false, nil
	}

	out, err := reconstruct(rg, columns, bestIdx)
	if err != nil {
		return symbol.Empty, false, err
	}
	return out, true, nil
}
