package blackball

import (
	"fmt"

	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/monitoring"
	"github.com/mezonai/blackball/transaction"
	"github.com/mezonai/blackball/types"
)

// processInput registers one ring input and applies the primary rules in
// order, stopping at the first one that applies.
//
// When a key image shows up again with a different ring, its stored ring is
// narrowed to the intersection of both. If a single output remains it is
// flagged, and the stored ring becomes that one output instead of the ring
// just observed: the key image is then known to have spent it, so the other
// members of the observed ring must not count it as spent by someone else.
// Pigeonhole deductions through the dropped members therefore never happen.
func (a *Analyzer) processInput(n int, in *transaction.Input, txid types.Hash) error {
	absolute := types.RelativeToAbsolute(in.KeyOffsets)

	if n == 0 {
		member := types.RingMember{TxID: txid, KeyImage: in.KeyImage}
		for _, idx := range absolute {
			a.state.addReference(types.OutputRef{Amount: in.Amount, Index: idx}, member)
		}
		// outputs settled in earlier runs must be propagated again against this new ring
		a.state.requeueSpent(in.Amount, absolute)
	}

	canonical := types.Canonicalize(in.KeyOffsets)
	key := canonical.Key()
	a.state.RingInstances[key]++
	instances := a.state.RingInstances[key]

	newRing := canonical
	prev, seen := a.state.RelativeRings[in.KeyImage]

	switch {
	case len(in.KeyOffsets) == 1:
		ref := types.OutputRef{Amount: in.Amount, Index: absolute[0]}
		if err := a.blackball(n, ref, txid, in.KeyImage, monitoring.ReasonSingleMemberRing, "due to being used in a 1-ring"); err != nil {
			return err
		}

	case instances == uint64(len(canonical)):
		why := fmt.Sprintf("due to being used in %d identical %d-rings", len(canonical), len(canonical))
		for _, idx := range types.RelativeToAbsolute(canonical) {
			ref := types.OutputRef{Amount: in.Amount, Index: idx}
			if err := a.blackball(n, ref, txid, in.KeyImage, monitoring.ReasonSaturatedRing, why); err != nil {
				return err
			}
		}

	case seen:
		logx.Info("RULES", fmt.Sprintf("Key image %s already seen: rings %s, %s", in.KeyImage, prev, in.KeyOffsets))
		if prev.Equal(canonical) {
			break
		}

		logx.Info("RULES", "Rings are different")
		common := intersect(types.RelativeToAbsolute(prev), absolute)
		switch len(common) {
		case 0:
			logx.Warn("RULES", fmt.Sprintf("Rings for the same key image %s are disjoint", in.KeyImage))
			monitoring.IncreaseRingAnomalies()
			newRing = prev
		case 1:
			ref := types.OutputRef{Amount: in.Amount, Index: common[0]}
			if err := a.blackball(n, ref, txid, in.KeyImage, monitoring.ReasonRingIntersection, "due to being used in rings with a single common element"); err != nil {
				return err
			}
			// the key image spent this output, its other members must not feed propagation
			newRing = types.AbsoluteToRelative(common)
		default:
			logx.Info("RULES", "The intersection has more than one element, it's still ok")
			newRing = types.AbsoluteToRelative(common)
		}
	}

	if seen && !prev.Equal(newRing) {
		// a narrower ring may now have all but one member spent
		a.state.requeueSpent(in.Amount, types.RelativeToAbsolute(newRing))
	}
	a.state.RelativeRings[in.KeyImage] = newRing
	return nil
}

// intersect returns the distinct members of r0 that are also in r1, in r0 order.
func intersect(r0, r1 []uint64) []uint64 {
	in1 := make(map[uint64]struct{}, len(r1))
	for _, out := range r1 {
		in1[out] = struct{}{}
	}

	common := make([]uint64, 0, len(r0))
	added := make(map[uint64]struct{}, len(r0))
	for _, out := range r0 {
		if _, ok := in1[out]; !ok {
			continue
		}
		if _, dup := added[out]; dup {
			continue
		}
		added[out] = struct{}{}
		common = append(common, out)
	}
	return common
}
