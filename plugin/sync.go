package plugin

import (
	"math"
	"strings"
	"sync/atomic"
)

// Changes is a set of parameters that changed during one block.
type Changes uint32

// Has reports whether id is in the set.
func (c Changes) Has(id ParamID) bool {
	return c&(1<<uint(id)) != 0
}

// Any reports whether the set is non-empty.
func (c Changes) Any() bool {
	return c != 0
}

// With returns the set with id added.
func (c Changes) With(id ParamID) Changes {
	return c | 1<<uint(id)
}

// AllChanges contains every parameter.
const AllChanges Changes = 1<<uint(NumParams) - 1

// String lists the changed parameter keys.
func (c Changes) String() string {
	var keys []string
	for id := ParamID(0); id < NumParams; id++ {
		if c.Has(id) {
			keys = append(keys, id.String())
		}
	}
	return "{" + strings.Join(keys, ",") + "}"
}

// ParamSink receives parameter values in natural units.
type ParamSink interface {
	SetFormant(semitones float64)
	SetFormantEnvelope(depth, rate float64, linear bool)
	SetADSR(attack, decay, sustainPercent, release float64)
	SetPortamento(percent float64)
	SetWetDry(wetPercent, dryPercent float64)
}

// Tracker remembers the last values pushed into a ParamSink. Sync runs once
// per audio block; Invalidate may be called from any goroutine.
type Tracker struct {
	last    Values
	invalid atomic.Bool
}

// NewTracker returns a tracker that pushes everything on the first Sync.
func NewTracker() *Tracker {
	t := &Tracker{}
	t.Invalidate()
	return t
}

// Invalidate forgets the cached values so the next Sync pushes every
// parameter group.
func (t *Tracker) Invalidate() {
	t.invalid.Store(true)
}

// Sync compares the current parameters against the cache, pushes changed
// groups into sink and reports which parameters changed.
func (t *Tracker) Sync(params *Parameters, sink ParamSink) Changes {
	if t.invalid.Swap(false) {
		for i := range t.last {
			t.last[i] = math.NaN()
		}
	}

	cur := params.Values()
	var changed Changes
	for id := ParamID(0); id < NumParams; id++ {
		// NaN in the cache never compares equal, so invalidated entries
		// always count as changed.
		if cur[id] != t.last[id] {
			changed = changed.With(id)
			t.last[id] = cur[id]
		}
	}
	if !changed.Any() {
		return 0
	}

	if changed.Has(ParamFormant) {
		sink.SetFormant(cur[ParamFormant])
	}
	if changed.Has(ParamFormantDecay) || changed.Has(ParamFormantDecayRate) || changed.Has(ParamFormantDecayLinear) {
		sink.SetFormantEnvelope(cur[ParamFormantDecay], cur[ParamFormantDecayRate], cur[ParamFormantDecayLinear] >= 0.5)
	}
	if changed.Has(ParamAttack) || changed.Has(ParamDecay) || changed.Has(ParamSustain) || changed.Has(ParamRelease) {
		sink.SetADSR(cur[ParamAttack], cur[ParamDecay], cur[ParamSustain], cur[ParamRelease])
	}
	if changed.Has(ParamPortamento) {
		sink.SetPortamento(cur[ParamPortamento])
	}
	if changed.Has(ParamWet) || changed.Has(ParamDry) {
		sink.SetWetDry(cur[ParamWet], cur[ParamDry])
	}
	return changed
}
