package blackball

import (
	"context"
	"fmt"

	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/monitoring"
	"github.com/mezonai/blackball/transaction"
	"github.com/mezonai/blackball/types"
)

// Scan streams every source from its checkpoint through the primary rules.
// Cancelling ctx stops after the transaction being processed; the checkpoint
// then points right behind it and the remaining sources are skipped.
// Cancellation is only polled after a transaction.
// Errors are fatal: the state must not be stored after a failed scan.
func (a *Analyzer) Scan(ctx context.Context) error {
	for n, src := range a.sources {
		start := a.state.ProcessedHeights[src.ID]
		logx.Info("SCAN", fmt.Sprintf("Reading blockchain from %s from %d", src.ID, start))

		var visitErr error
		var scanned uint64
		next, completed, err := src.Reader.ForEachTransaction(start, func(seq uint64, tx *transaction.Transaction, txid types.Hash, height uint64) bool {
			if err := a.processTransaction(n, tx, txid); err != nil {
				visitErr = fmt.Errorf("transaction %s (sequence %d, height %d): %w", txid, seq, height, err)
				return false
			}

			a.state.ProcessedHeights[src.ID] = seq + 1
			scanned++
			monitoring.IncreaseScannedTxCount(src.ID)

			if a.opts.FlushEvery > 0 && scanned%a.opts.FlushEvery == 0 {
				a.flush()
			}

			if ctx.Err() != nil {
				logx.Info("SCAN", "Stopping scan, secondary passes will still happen...")
				return false
			}
			return true
		})
		a.report.Scanned[src.ID] += scanned
		if visitErr != nil {
			return visitErr
		}
		if err != nil {
			return fmt.Errorf("scan %s: %w", src.ID, err)
		}

		a.state.ProcessedHeights[src.ID] = next
		monitoring.SetSourceCheckpoint(src.ID, next)
		logx.Info("SCAN", fmt.Sprintf("blockchain from %s processed till sequence %d", src.ID, next))

		if !completed || (ctx.Err() != nil && n < len(a.sources)-1) {
			a.report.ScanInterrupted = true
			break
		}
	}

	monitoring.SetSpentOutputs(len(a.state.Spent))
	return nil
}

func (a *Analyzer) processTransaction(n int, tx *transaction.Transaction, txid types.Hash) error {
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		if !in.IsRingInput() {
			continue
		}
		if a.opts.RCTOnly && in.Amount != 0 {
			continue
		}
		if err := a.processInput(n, in, txid); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) flush() {
	if a.opts.StatePath == "" {
		return
	}
	if err := StoreState(a.opts.StatePath, a.state); err != nil {
		logx.Error("STATE", "Periodic flush failed: ", err)
	}
}
