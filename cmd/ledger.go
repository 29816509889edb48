package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mezonai/blackball/db"
	"github.com/mezonai/blackball/ledger"
)

var (
	ledgerDir      string
	ledgerDBEngine string
	ledgerFile     string
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Create and inspect ledger databases",
}

var ledgerImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Append transactions from a JSON lines file to a ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ledgerDir == "" {
			return fmt.Errorf("--ledger is required")
		}
		if ledgerFile == "" {
			return fmt.Errorf("--file is required")
		}

		vendor, err := parseOptionalVendor(ledgerDBEngine)
		if err != nil {
			return err
		}
		l, err := ledger.Open(ledgerDir, vendor, false)
		if err != nil {
			return err
		}
		defer l.MustClose()

		f, err := os.Open(ledgerFile)
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := l.ImportJSONLines(f)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %s transactions\n", humanize.Comma(int64(n)))
		return nil
	},
}

var ledgerInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the genesis hash and size of a ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ledgerDir == "" {
			return fmt.Errorf("--ledger is required")
		}

		vendor, err := parseOptionalVendor(ledgerDBEngine)
		if err != nil {
			return err
		}
		l, err := ledger.Open(ledgerDir, vendor, true)
		if err != nil {
			return err
		}
		defer l.MustClose()

		next, err := l.NextSequence()
		if err != nil {
			return err
		}
		fmt.Printf("Path:         %s\n", l.Path())
		if genesis, err := l.GenesisHash(); err == nil {
			fmt.Printf("Genesis:      %s\n", genesis)
		} else {
			fmt.Printf("Genesis:      (none)\n")
		}
		fmt.Printf("Transactions: %s\n", humanize.Comma(int64(next)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerImportCmd)
	ledgerCmd.AddCommand(ledgerInfoCmd)
	ledgerCmd.PersistentFlags().StringVar(&ledgerDir, "ledger", "", "ledger database directory")
	ledgerCmd.PersistentFlags().StringVar(&ledgerDBEngine, "db-engine", "", "database engine (leveldb, bbolt), detected when empty")
	ledgerImportCmd.Flags().StringVar(&ledgerFile, "file", "", "JSON lines file with one {\"height\":h,\"tx\":{...}} record per line")
}

// parseOptionalVendor returns an empty vendor for an empty name, which lets the
// ledger detect the engine of an existing database.
func parseOptionalVendor(name string) (db.DBVendor, error) {
	if name == "" {
		return "", nil
	}
	return db.ParseDBVendor(name)
}
