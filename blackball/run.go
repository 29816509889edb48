package blackball

import (
	"context"
)

// Run scans all sources and then propagates to a fixpoint. The two contexts
// are separate so that a first interruption only ends the scan and a second
// one also ends propagation.
func (a *Analyzer) Run(scanCtx, propagateCtx context.Context) (Report, error) {
	if err := a.Scan(scanCtx); err != nil {
		return a.Report(), err
	}
	if err := a.Propagate(propagateCtx); err != nil {
		return a.Report(), err
	}
	return a.Report(), nil
}
