// Package att implements the AT&T-style text serialization of a ranged
// graph named in spec §6: `src dst from-to weight output` per transition
// sub-range, `src weight output` per accepting state. Grounded on teacher
// internal/serialization/serialization.go's marshal/unmarshal split and
// round-trip test style, retargeted from JSON graph documents to this
// tab/space line format, with the exact column layout taken from
// original_source/.../ranged_serializers.rs.
package att

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/ranged"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// Error reports a malformed AT&T document.
type Error struct {
	Kind    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("att error (%v): %v", e.Kind, e.Message)
}

// Write serializes rg as AT&T text (spec §6). Every state's Range list is
// walked in order, tracking the exclusive lower bound implied by the
// previous Range's ToInclusive; one transition line is emitted per
// (Range, Transition) pair — deliberately not merged across adjacent
// ranges sharing an identical edge, matching spec §6's "one line per edge
// and per sub-range". Accepting-state lines follow all transition lines.
func Write(w io.Writer, rg *ranged.RG) error {
	bw := bufio.NewWriter(w)
	for state := 0; state < rg.Len(); state++ {
		prevTo := symbol.REFLECT
		for _, rng := range rg.Transitions(state) {
			for _, t := range rng.Edges {
				if t.Target == ranged.NoTarget {
					continue
				}
				if _, err := fmt.Fprintf(bw, "%d\t%d\t%d-%d\t%d\t%s\n",
					state, t.Target, prevTo+1, rng.ToInclusive, t.Edge.Weight, symbol.Escape(t.Edge.Output)); err != nil {
					return err
				}
			}
			prevTo = rng.ToInclusive
		}
	}
	for state := 0; state < rg.Len(); state++ {
		if p := rg.Accept(state); p != nil {
			if _, err := fmt.Fprintf(bw, "%d\t%d\t%s\n", state, p.Weight, symbol.Escape(p.Output)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteString is Write into a string, for diagnostics and tests.
func WriteString(rg *ranged.RG) (string, error) {
	var b strings.Builder
	if err := Write(&b, rg); err != nil {
		return "", err
	}
	return b.String(), nil
}

type rawTransition struct {
	from, to symbol.Symbol
	target   int
	partial  ig.P
}

// Read parses an AT&T document back into a ranged graph. Positions are not
// carried by the format, so every state's provenance is ig.Unknown; the
// state count is inferred as one greater than the largest state number
// named by any line, and any state with no transition lines at all is
// still given a sigma-covering, all-reject Range list so the binary-search
// invariant (spec §4.2, §8) holds for every state index.
func Read(r io.Reader) (*ranged.RG, error) {
	scanner := bufio.NewScanner(r)
	byState := make(map[int][]rawTransition)
	accepting := make(map[int]*ig.P)
	maxState := -1

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		switch len(fields) {
		case 3:
			src, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, Error{Kind: "Parse", Message: fmt.Sprintf("bad accepting-state src %q", fields[0])}
			}
			weight, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, Error{Kind: "Parse", Message: fmt.Sprintf("bad accepting-state weight %q", fields[1])}
			}
			out, err := symbol.Unescape(fields[2])
			if err != nil {
				return nil, err
			}
			p := ig.P{Weight: int32(weight), Output: out}
			accepting[src] = &p
			if src > maxState {
				maxState = src
			}
		case 5:
			src, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, Error{Kind: "Parse", Message: fmt.Sprintf("bad transition src %q", fields[0])}
			}
			dst, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, Error{Kind: "Parse", Message: fmt.Sprintf("bad transition dst %q", fields[1])}
			}
			bounds := strings.SplitN(fields[2], "-", 2)
			if len(bounds) != 2 {
				return nil, Error{Kind: "Parse", Message: fmt.Sprintf("bad interval %q", fields[2])}
			}
			from, err := strconv.Atoi(bounds[0])
			if err != nil {
				return nil, Error{Kind: "Parse", Message: fmt.Sprintf("bad interval lower bound %q", bounds[0])}
			}
			to, err := strconv.Atoi(bounds[1])
			if err != nil {
				return nil, Error{Kind: "Parse", Message: fmt.Sprintf("bad interval upper bound %q", bounds[1])}
			}
			weight, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, Error{Kind: "Parse", Message: fmt.Sprintf("bad transition weight %q", fields[3])}
			}
			out, err := symbol.Unescape(fields[4])
			if err != nil {
				return nil, err
			}
			byState[src] = append(byState[src], rawTransition{
				from: symbol.Symbol(from - 1), to: symbol.Symbol(to), target: dst,
				partial: ig.P{Weight: int32(weight), Output: out},
			})
			if src > maxState {
				maxState = src
			}
			if dst > maxState {
				maxState = dst
			}
		default:
			return nil, Error{Kind: "Parse", Message: fmt.Sprintf("line has %d fields, want 3 or 5: %q", len(fields), line)}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	n := maxState + 1
	states := make([][]ranged.Range, n)
	acceptSlice := make([]*ig.P, n)
	positions := make([]ig.V, n)
	for i := 0; i < n; i++ {
		states[i] = sweepRaw(byState[i])
		acceptSlice[i] = accepting[i]
	}

	return &ranged.RG{States: states, Accepting: acceptSlice, Positions: positions, Initial: 0}, nil
}

// sweepRaw rebuilds a sigma-covering Range list for one state's parsed
// transitions, the same interval-splitting sweep as ranged/build.go's
// unexported sweep, duplicated here since AT&T round-tripping reconstructs
// an RG from plain (from, to, target, partial) tuples rather than from an
// ig.G's node graph.
func sweepRaw(edges []rawTransition) []ranged.Range {
	if len(edges) == 0 {
		return []ranged.Range{{ToInclusive: symbol.MaxSymbol}}
	}

	type event struct {
		pos    symbol.Symbol
		isOpen bool
		idx    int
	}
	events := make([]event, 0, len(edges)*2)
	for i, e := range edges {
		events = append(events, event{pos: e.from, isOpen: true, idx: i})
		events = append(events, event{pos: e.to, isOpen: false, idx: i})
	}
	sort.SliceStable(events, func(a, b int) bool { return events[a].pos < events[b].pos })

	var ranges []ranged.Range
	var active []int

	i := 0
	for i < len(events) {
		pos := events[i].pos
		if pos > symbol.REFLECT {
			ranges = append(ranges, ranged.Range{ToInclusive: pos, Edges: snapshotRaw(edges, active)})
		}
		for i < len(events) && events[i].pos == pos {
			ev := events[i]
			if ev.isOpen {
				active = append(active, ev.idx)
			} else {
				for j, v := range active {
					if v == ev.idx {
						active = append(active[:j], active[j+1:]...)
						break
					}
				}
			}
			i++
		}
	}
	if len(ranges) == 0 || ranges[len(ranges)-1].ToInclusive != symbol.MaxSymbol {
		ranges = append(ranges, ranged.Range{ToInclusive: symbol.MaxSymbol, Edges: snapshotRaw(edges, active)})
	}
	return ranges
}

func snapshotRaw(edges []rawTransition, active []int) []ranged.Transition {
	if len(active) == 0 {
		return nil
	}
	out := make([]ranged.Transition, len(active))
	for i, idx := range active {
		out[i] = ranged.Transition{Edge: edges[idx].partial, Target: edges[idx].target}
	}
	return out
}
