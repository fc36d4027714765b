// Package greedy implements the Greedy latency assigner (component C6,
// §4.6): start with every vertex registered, then repeatedly de-register
// whichever safe candidate currently has the most to lose by staying
// registered, merging its neighbors' combinational-delay bookkeeping as
// it goes.
//
// This is the mirror image of asap's forward sweep: ASAP starts from
// nothing and adds registers under pressure; Greedy starts fully
// registered and removes them as long as removal stays safe. The two
// strategies are run side by side by callers wanting the better of two
// heuristics, never composed.
package greedy

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/ni/delaygraph/core"
	"github.com/ni/delaygraph/period"
)

// Option configures optional behavior of Assigner. Use with New(opts...).
type Option func(*Assigner)

// WithLogger routes the final sanity check's warnings through logger
// instead of the default no-op discard logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Assigner) {
		a.logger = logger
	}
}

// Assigner implements assign.Assigner. Construct with New; the zero value
// also works, logging nowhere.
type Assigner struct {
	logger *log.Logger
}

// New returns an Assigner configured by opts. With no options, warnings
// from the final sanity check are discarded — the library has no
// observable side effect unless a caller asks for diagnostics.
func New(opts ...Option) Assigner {
	a := Assigner{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&a)
	}

	return a
}

type pairKey struct {
	From, To core.VertexID
}

// state holds the five derived structures §4.6 maintains across the
// de-registration loop, plus the working registered set itself.
type state struct {
	g           *core.Graph
	registered  map[core.VertexID]bool
	inputDelay  map[core.VertexID]int64
	outputDelay map[core.VertexID]int64
	faninRegs   map[core.VertexID]map[core.VertexID]bool
	fanoutRegs  map[core.VertexID]map[core.VertexID]bool
	regRegDelay map[pairKey]int64
}

// Assign runs the register-all-then-de-register loop over g and returns
// the resulting candidate Solution.
//
// Complexity: each pass over the candidate set is O(V log V) for the
// sort plus O(V * avg-fanin * avg-fanout) for merges; the loop runs until
// a pass de-registers nothing, which is bounded by the initial candidate
// count since the set only ever shrinks (property 7).
func (a Assigner) Assign(g *core.Graph, targetPeriodPS int64) *core.Solution {
	st := newState(g)

	for {
		changed := false
		for _, v := range candidateOrder(g, st) {
			if st.deregister(v, targetPeriodPS) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	a.sanityCheck(g, st, targetPeriodPS)

	sol := core.NewSolution(g)
	for _, v := range g.Vertices() {
		if !v.IsRegistered && st.registered[v.ID] {
			sol.Register(v.ID)
		}
	}

	return sol
}

func newState(g *core.Graph) *state {
	st := &state{
		g:           g,
		registered:  make(map[core.VertexID]bool, len(g.Vertices())),
		inputDelay:  make(map[core.VertexID]int64, len(g.Vertices())),
		outputDelay: make(map[core.VertexID]int64, len(g.Vertices())),
		faninRegs:   make(map[core.VertexID]map[core.VertexID]bool, len(g.Vertices())),
		fanoutRegs:  make(map[core.VertexID]map[core.VertexID]bool, len(g.Vertices())),
		regRegDelay: make(map[pairKey]int64, len(g.Edges())),
	}

	for _, v := range g.Vertices() {
		st.registered[v.ID] = true
		st.faninRegs[v.ID] = make(map[core.VertexID]bool)
		st.fanoutRegs[v.ID] = make(map[core.VertexID]bool)

		var maxIn, maxOut int64
		for _, e := range g.InEdges(v.ID) {
			if e.Delay > maxIn {
				maxIn = e.Delay
			}
			st.faninRegs[v.ID][e.Source] = true
		}
		for _, e := range g.OutEdges(v.ID) {
			if e.Delay > maxOut {
				maxOut = e.Delay
			}
			st.fanoutRegs[v.ID][e.Target] = true
		}
		st.inputDelay[v.ID] = maxIn
		st.outputDelay[v.ID] = maxOut
	}

	for _, e := range g.Edges() {
		key := pairKey{e.Source, e.Target}
		if cur, ok := st.regRegDelay[key]; !ok || e.Delay > cur {
			st.regRegDelay[key] = e.Delay
		}
	}

	return st
}

// candidateOrder returns, in the §4.6 sort order, every vertex that is
// not statically registered and still in the working set.
func candidateOrder(g *core.Graph, st *state) []core.VertexID {
	var candidates []*core.Vertex
	for _, v := range g.Vertices() {
		if !v.IsRegistered && st.registered[v.ID] {
			candidates = append(candidates, v)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ThroughputCostIfRegistered != b.ThroughputCostIfRegistered {
			return a.ThroughputCostIfRegistered > b.ThroughputCostIfRegistered
		}
		if a.LatencyCostIfRegistered != b.LatencyCostIfRegistered {
			return a.LatencyCostIfRegistered > b.LatencyCostIfRegistered
		}

		return a.RegisterCostIfRegistered > b.RegisterCostIfRegistered
	})

	out := make([]core.VertexID, len(candidates))
	for i, v := range candidates {
		out[i] = v.ID
	}

	return out
}

// deregister attempts to remove v from the working set, returning whether
// it succeeded.
func (st *state) deregister(v core.VertexID, targetPeriodPS int64) bool {
	if !st.registered[v] {
		return false // already removed earlier in this pass via a splice
	}
	if !st.isSafeToDeregister(v, targetPeriodPS) {
		return false
	}

	st.merge(v)

	return true
}

func (st *state) isSafeToDeregister(v core.VertexID, targetPeriodPS int64) bool {
	if st.inputDelay[v]+st.outputDelay[v] > targetPeriodPS {
		return false
	}
	if st.faninRegs[v][v] || st.fanoutRegs[v][v] {
		return false
	}

	return true
}

// merge folds v out of the four derived structures, per §4.6's merge
// step. A missing reg_reg_delay entry for a recorded fanin/fanout
// neighbor is an internal invariant violation, not a data condition —
// it panics rather than silently producing a wrong delay.
func (st *state) merge(v core.VertexID) {
	for fi := range st.faninRegs[v] {
		for fo := range st.fanoutRegs[v] {
			candidate := st.mustDelay(fi, v) + st.mustDelay(v, fo)
			key := pairKey{fi, fo}
			if cur, ok := st.regRegDelay[key]; !ok || candidate > cur {
				st.regRegDelay[key] = candidate
			}
		}
	}

	for fi := range st.faninRegs[v] {
		delayFiV := st.mustDelay(fi, v)
		if d := delayFiV + st.outputDelay[v]; d > st.outputDelay[fi] {
			st.outputDelay[fi] = d
		}
	}
	for fo := range st.fanoutRegs[v] {
		delayVFo := st.mustDelay(v, fo)
		if d := st.inputDelay[v] + delayVFo; d > st.inputDelay[fo] {
			st.inputDelay[fo] = d
		}
	}

	for fi := range st.faninRegs[v] {
		delete(st.fanoutRegs[fi], v)
		for fo := range st.fanoutRegs[v] {
			st.fanoutRegs[fi][fo] = true
		}
	}
	for fo := range st.fanoutRegs[v] {
		delete(st.faninRegs[fo], v)
		for fi := range st.faninRegs[v] {
			st.faninRegs[fo][fi] = true
		}
	}

	delete(st.faninRegs, v)
	delete(st.fanoutRegs, v)
	delete(st.inputDelay, v)
	delete(st.outputDelay, v)
	st.registered[v] = false
}

func (st *state) mustDelay(from, to core.VertexID) int64 {
	d, ok := st.regRegDelay[pairKey{from, to}]
	if !ok {
		panic(fmt.Sprintf("delaygraph: greedy: missing reg_reg_delay entry for (%d,%d)", from, to))
	}

	return d
}

func (a Assigner) sanityCheck(g *core.Graph, st *state, targetPeriodPS int64) {
	logger := a.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sol := core.NewSolution(g)
	for _, v := range g.Vertices() {
		if !v.IsRegistered && st.registered[v.ID] {
			sol.Register(v.ID)
		}
	}

	p, cycle := period.Estimate(g, sol)
	if cycle {
		logger.Warn("greedy: residual combinational cycle after de-registration")
	}
	if p > targetPeriodPS {
		logger.Warn("greedy: timing violation after de-registration", "period_ps", p, "target_ps", targetPeriodPS)
	}
}
