package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mezonai/blackball/jsonx"
	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/stringutil"
	"github.com/mezonai/blackball/transaction"
	"github.com/mezonai/blackball/types"
)

const maxImportLineSize = 16 << 20

// ImportRecord is one line of a JSON lines ledger export. A record carries
// either a genesis hash or a transaction.
type ImportRecord struct {
	Genesis *types.Hash              `json:"genesis,omitempty"`
	Height  uint64                   `json:"height"`
	Tx      *transaction.Transaction `json:"tx,omitempty"`
}

// ImportJSONLines appends every transaction record read from r and returns
// the number of imported transactions.
func (l *Ledger) ImportJSONLines(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxImportLineSize)

	imported := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var rec ImportRecord
		if err := jsonx.Unmarshal([]byte(line), &rec); err != nil {
			return imported, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if rec.Genesis != nil {
			if err := l.SetGenesisHash(*rec.Genesis); err != nil {
				return imported, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
		if rec.Tx == nil {
			continue
		}
		txid, seq, err := l.Append(rec.Tx, rec.Height)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", lineNo, err)
		}
		logx.Debug("LEDGER", fmt.Sprintf("Imported tx %s at sequence %d (height %d)", stringutil.ShortenHash(txid.String()), seq, rec.Height))
		imported++
	}
	if err := scanner.Err(); err != nil {
		return imported, fmt.Errorf("read import file: %w", err)
	}

	logx.Info("LEDGER", fmt.Sprintf("Imported %d transactions", imported))
	return imported, nil
}
