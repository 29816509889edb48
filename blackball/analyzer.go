package blackball

import (
	"fmt"

	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/monitoring"
	"github.com/mezonai/blackball/transaction"
	"github.com/mezonai/blackball/types"
)

// LedgerReader is the read side of a ledger source.
type LedgerReader interface {
	// ForEachTransaction visits transactions from start in ascending order. A
	// transaction for which visit returned false counts as visited. completed
	// reports whether no transaction follows next.
	ForEachTransaction(start uint64, visit func(seq uint64, tx *transaction.Transaction, txid types.Hash, height uint64) bool) (next uint64, completed bool, err error)
	// OutputKey resolves an output to its one-time public key.
	OutputKey(amount, index uint64) (types.PublicKey, error)
}

// FlagStore receives every spend decision.
type FlagStore interface {
	MarkBlackballed(key types.PublicKey) error
}

// Source is one ledger to scan. ID must be stable across runs, it keys the checkpoint.
type Source struct {
	ID     string
	Reader LedgerReader
}

type Options struct {
	// RCTOnly skips ring inputs with a non-zero amount.
	RCTOnly bool
	// FlushEvery stores the state every FlushEvery scanned transactions. Zero disables it.
	FlushEvery uint64
	// StatePath is where periodic flushes go.
	StatePath string
}

// Report summarizes a run.
type Report struct {
	StartSpent             int
	TotalSpent             int
	Scanned                map[string]uint64
	ScanInterrupted        bool
	PropagationInterrupted bool
}

// NewlyBlackballed is the number of outputs that became known spent in this run.
func (r *Report) NewlyBlackballed() int {
	return r.TotalSpent - r.StartSpent
}

// Analyzer runs the scan and propagation passes over a State. The first source
// is the primary one: only it populates the output index, and propagation
// resolves output keys through it.
type Analyzer struct {
	state   *State
	sources []Source
	flags   FlagStore
	opts    Options
	report  Report
}

func NewAnalyzer(state *State, sources []Source, flags FlagStore, opts Options) (*Analyzer, error) {
	if state == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no inputs given")
	}
	if flags == nil {
		return nil, fmt.Errorf("flag store cannot be nil")
	}

	return &Analyzer{
		state:   state,
		sources: sources,
		flags:   flags,
		opts:    opts,
		report: Report{
			StartSpent: len(state.Spent),
			Scanned:    make(map[string]uint64, len(sources)),
		},
	}, nil
}

// State returns the state the analyzer works on.
func (a *Analyzer) State() *State {
	return a.state
}

// Report returns the summary so far.
func (a *Analyzer) Report() Report {
	r := a.report
	r.TotalSpent = len(a.state.Spent)
	return r
}

// blackball resolves the output key through source n, reports it to the flag
// store and records the output as spent.
func (a *Analyzer) blackball(n int, ref types.OutputRef, txid types.Hash, ki types.KeyImage, reason monitoring.BlackballReason, why string) error {
	logx.Info("BLACKBALL", fmt.Sprintf("Blackballing output: %s, txid=%s, ki=%s, %s", ref, txid, ki, why))

	pk, err := a.sources[n].Reader.OutputKey(ref.Amount, ref.Index)
	if err != nil {
		return fmt.Errorf("resolve output key (%s): %w", ref, err)
	}
	logx.Info("BLACKBALL", "Blackballed pkey: ", pk)

	if err := a.flags.MarkBlackballed(pk); err != nil {
		return err
	}
	if a.state.markSpent(ref) {
		monitoring.RecordBlackballed(reason)
	}
	return nil
}
