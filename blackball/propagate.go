package blackball

import (
	"context"
	"fmt"

	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/monitoring"
	"github.com/mezonai/blackball/types"
)

// Propagate drains the NewlySpent worklist until no ring yields another spend.
// A ring of k members with k-1 known spent members spends the remaining one.
// Cancelling ctx stops between batch entries; entries of the current batch that
// were not processed go back to the worklist.
func (a *Analyzer) Propagate(ctx context.Context) error {
	for len(a.state.NewlySpent) > 0 {
		logx.Info("PROPAGATE", fmt.Sprintf("Secondary pass due to %d newly found spent outputs", len(a.state.NewlySpent)))
		monitoring.IncreasePropagationRounds()

		work := a.state.NewlySpent
		a.state.NewlySpent = make(map[types.OutputRef]bool)

		batch := make([]types.OutputRef, 0, len(work))
		for ref := range work {
			a.state.Spent[ref] = struct{}{}
			batch = append(batch, ref)
		}
		sortOutputRefs(batch)

		stopped := false
		for _, ref := range batch {
			if err := a.propagateOutput(ref); err != nil {
				// keep the unprocessed part of the round queued
				a.requeue(work)
				return err
			}
			work[ref] = true

			if ctx.Err() != nil {
				logx.Info("PROPAGATE", "Stopping secondary passes...")
				stopped = true
				break
			}
		}

		if stopped {
			a.requeue(work)
			a.report.PropagationInterrupted = true
			break
		}
	}

	monitoring.SetSpentOutputs(len(a.state.Spent))
	return nil
}

// propagateOutput checks every ring referencing the newly spent output.
func (a *Analyzer) propagateOutput(spent types.OutputRef) error {
	for member := range a.state.Outputs[spent] {
		ring, ok := a.state.RelativeRings[member.KeyImage]
		if !ok || len(ring) == 0 {
			continue
		}

		absolute := types.RelativeToAbsolute(ring)
		known := 0
		var lastUnknown uint64
		for _, out := range absolute {
			if a.state.IsSpent(types.OutputRef{Amount: spent.Amount, Index: out}) {
				known++
			} else {
				lastUnknown = out
			}
		}

		if known == len(absolute)-1 {
			ref := types.OutputRef{Amount: spent.Amount, Index: lastUnknown}
			why := fmt.Sprintf("due to being used in a %d-ring where all other outputs are known to be spent", len(absolute))
			if err := a.blackball(0, ref, member.TxID, member.KeyImage, monitoring.ReasonPigeonhole, why); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Analyzer) requeue(work map[types.OutputRef]bool) {
	for ref, processed := range work {
		if !processed {
			a.state.NewlySpent[ref] = false
		}
	}
}
