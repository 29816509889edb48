package blackball

import (
	"sort"

	"github.com/mezonai/blackball/types"
)

// State is the whole incremental analysis state. It is loaded at the start of
// a run, owned by one Analyzer, and stored at the end.
type State struct {
	// RelativeRings holds the latest (possibly tightened) ring per key image, in canonical relative form.
	RelativeRings map[types.KeyImage]types.Ring
	// Outputs maps an output to the rings referencing it. Only the primary source populates it.
	Outputs map[types.OutputRef]map[types.RingMember]struct{}
	// RingInstances counts uses of each canonical ring across all sources.
	RingInstances map[types.RingKey]uint64
	// Spent only grows.
	Spent map[types.OutputRef]struct{}
	// NewlySpent is the propagation worklist; the value marks entries already processed in the current round.
	NewlySpent map[types.OutputRef]bool
	// ProcessedHeights is the next sequence number to scan per source.
	ProcessedHeights map[string]uint64
}

func NewState() *State {
	return &State{
		RelativeRings:    make(map[types.KeyImage]types.Ring),
		Outputs:          make(map[types.OutputRef]map[types.RingMember]struct{}),
		RingInstances:    make(map[types.RingKey]uint64),
		Spent:            make(map[types.OutputRef]struct{}),
		NewlySpent:       make(map[types.OutputRef]bool),
		ProcessedHeights: make(map[string]uint64),
	}
}

// IsSpent reports whether the output is known to be spent.
func (s *State) IsSpent(ref types.OutputRef) bool {
	_, ok := s.Spent[ref]
	return ok
}

// markSpent adds ref to Spent and queues it for propagation. It returns true
// if the output was not known to be spent before.
func (s *State) markSpent(ref types.OutputRef) bool {
	_, known := s.Spent[ref]
	s.Spent[ref] = struct{}{}
	s.NewlySpent[ref] = false
	return !known
}

// requeueSpent puts the members of a ring that are already known spent back on
// the worklist, unless they are queued already.
func (s *State) requeueSpent(amount uint64, absolute []uint64) {
	for _, idx := range absolute {
		ref := types.OutputRef{Amount: amount, Index: idx}
		if _, queued := s.NewlySpent[ref]; !queued && s.IsSpent(ref) {
			s.NewlySpent[ref] = false
		}
	}
}

func (s *State) addReference(ref types.OutputRef, member types.RingMember) {
	members, ok := s.Outputs[ref]
	if !ok {
		members = make(map[types.RingMember]struct{})
		s.Outputs[ref] = members
	}
	members[member] = struct{}{}
}

// SpentOutputs returns the spent set sorted by amount and index.
func (s *State) SpentOutputs() []types.OutputRef {
	refs := make([]types.OutputRef, 0, len(s.Spent))
	for ref := range s.Spent {
		refs = append(refs, ref)
	}
	sortOutputRefs(refs)
	return refs
}

func sortOutputRefs(refs []types.OutputRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Amount != refs[j].Amount {
			return refs[i].Amount < refs[j].Amount
		}
		return refs[i].Index < refs[j].Index
	})
}
