package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mezonai/blackball/blackball"
	"github.com/mezonai/blackball/config"
	"github.com/mezonai/blackball/db"
	"github.com/mezonai/blackball/exception"
	"github.com/mezonai/blackball/ledger"
	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/monitoring"
)

var (
	scanConfigPath string
	scanCfg        config.ScanConfig
)

var scanCmd = &cobra.Command{
	Use:   "scan [ledger dirs...]",
	Short: "Scan ledgers and blackball outputs known to be spent",
	Long: "Scans the given ledgers from their last checkpoint, applies the spent output deductions " +
		"and stores every spent output in the blackball database. The first ledger is the primary one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveScanConfig(cmd, args)
		if err != nil {
			return err
		}
		return runScan(cfg)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanConfigPath, "config", "", "scan config file (.yml or .ini)")
	scanCmd.Flags().StringVar(&scanCfg.BlackballDir, "blackball-dir", "", "blackball database directory (default ~/"+config.DefaultBlackballDirName+")")
	scanCmd.Flags().StringVar(&scanCfg.Network, "network", config.NetworkMainnet, "network (mainnet, testnet, stagenet)")
	scanCmd.Flags().StringVar(&scanCfg.DBEngine, "db-engine", "", "ledger database engine (leveldb, bbolt), detected when empty")
	scanCmd.Flags().BoolVar(&scanCfg.RCTOnly, "rct-only", false, "only work on confidential (zero amount) outputs")
	scanCmd.Flags().Uint64Var(&scanCfg.FlushEvery, "flush-every", 0, "store the state every N scanned transactions (0 disables)")
	scanCmd.Flags().StringVar(&scanCfg.MetricsTextfile, "metrics-textfile", "", "write prometheus metrics to this file at the end of the run")
	addFlagStoreFlags(scanCmd, &scanCfg.FlagStore)
}

// resolveScanConfig merges the config file with the flags; flags given on the
// command line win.
func resolveScanConfig(cmd *cobra.Command, args []string) (config.ScanConfig, error) {
	cfg := scanCfg
	if scanConfigPath != "" {
		fileCfg, err := config.LoadScanConfig(scanConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *fileCfg
		flags := cmd.Flags()
		if flags.Changed("blackball-dir") {
			cfg.BlackballDir = scanCfg.BlackballDir
		}
		if flags.Changed("network") || cfg.Network == "" {
			cfg.Network = scanCfg.Network
		}
		if flags.Changed("db-engine") {
			cfg.DBEngine = scanCfg.DBEngine
		}
		if flags.Changed("rct-only") {
			cfg.RCTOnly = scanCfg.RCTOnly
		}
		if flags.Changed("flush-every") {
			cfg.FlushEvery = scanCfg.FlushEvery
		}
		if flags.Changed("metrics-textfile") {
			cfg.MetricsTextfile = scanCfg.MetricsTextfile
		}
		if flags.Changed("flags-backend") {
			cfg.FlagStore.Backend = scanCfg.FlagStore.Backend
		}
		if flags.Changed("redis-addr") || cfg.FlagStore.RedisAddr == "" {
			cfg.FlagStore.RedisAddr = scanCfg.FlagStore.RedisAddr
		}
		if flags.Changed("redis-db") {
			cfg.FlagStore.RedisDB = scanCfg.FlagStore.RedisDB
		}
		if cfg.LogLevel != "" && !cmd.Flags().Changed("log-level") {
			level, err := logx.ParseLevel(cfg.LogLevel)
			if err != nil {
				return cfg, err
			}
			logx.SetLevel(level)
		}
		if cfg.LogFile != "" && !cmd.Flags().Changed("log-file") {
			logx.Configure(cfg.LogFile, logStderr)
		}
	}
	if len(args) > 0 {
		cfg.Inputs = args
	}
	if len(cfg.Inputs) == 0 {
		return cfg, fmt.Errorf("at least one ledger directory is required")
	}
	return cfg, nil
}

func runScan(cfg config.ScanConfig) error {
	monitoring.MarkRunStart()

	vendor := db.DBVendor("")
	if cfg.DBEngine != "" {
		v, err := db.ParseDBVendor(cfg.DBEngine)
		if err != nil {
			return err
		}
		vendor = v
	}

	dir, err := config.BlackballDir(cfg.BlackballDir, cfg.Network)
	if err != nil {
		return err
	}

	sources := make([]blackball.Source, 0, len(cfg.Inputs))
	seen := make(map[string]bool, len(cfg.Inputs))
	for _, input := range cfg.Inputs {
		l, err := ledger.Open(input, vendor, true)
		if err != nil {
			return err
		}
		defer l.MustClose()

		if seen[l.Path()] {
			return fmt.Errorf("ledger %s given more than once", l.Path())
		}
		seen[l.Path()] = true
		sources = append(sources, blackball.Source{ID: l.Path(), Reader: l})
	}

	primary := sources[0].Reader.(*ledger.Ledger)
	genesis, err := primary.GenesisHash()
	if err != nil {
		return err
	}
	for _, src := range sources[1:] {
		other, err := src.Reader.(*ledger.Ledger).GenesisHash()
		if err != nil {
			return err
		}
		if other != genesis {
			logx.Warn("CMD", fmt.Sprintf("Ledger %s has genesis %s, primary ledger has %s", src.ID, other, genesis))
		}
	}

	flags, err := openBlackballStore(dir, cfg.FlagStore, genesis)
	if err != nil {
		return err
	}
	defer flags.MustClose()

	statePath := filepath.Join(dir, blackball.StateFileName)
	state := blackball.LoadState(statePath)

	analyzer, err := blackball.NewAnalyzer(state, sources, flags, blackball.Options{
		RCTOnly:    cfg.RCTOnly,
		FlushEvery: cfg.FlushEvery,
		StatePath:  statePath,
	})
	if err != nil {
		return err
	}

	scanCtx, cancelScan := context.WithCancel(context.Background())
	defer cancelScan()
	propagateCtx, cancelPropagate := context.WithCancel(context.Background())
	defer cancelPropagate()
	stopSignals := watchInterrupts(cancelScan, cancelPropagate)
	defer stopSignals()

	report, err := analyzer.Run(scanCtx, propagateCtx)
	if err != nil {
		return err
	}

	if err := blackball.StoreState(statePath, analyzer.State()); err != nil {
		logx.Error("STATE", "Failed to save state data: ", err)
	}

	fmt.Printf("%s new outputs blackballed, %s total outputs blackballed\n",
		humanize.Comma(int64(report.NewlyBlackballed())), humanize.Comma(int64(report.TotalSpent)))
	if report.ScanInterrupted {
		fmt.Println("Scan was interrupted, run again to continue from the last checkpoint")
	}
	if report.PropagationInterrupted {
		fmt.Println("Secondary passes were interrupted, they resume on the next run")
	}

	if cfg.MetricsTextfile != "" {
		if err := monitoring.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logx.Error("METRICS", err)
		}
	}
	return nil
}

// watchInterrupts cancels the scan on the first SIGINT or SIGTERM and the
// secondary passes on the second one.
func watchInterrupts(cancelScan, cancelPropagate context.CancelFunc) func() {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	exception.SafeGo("watchInterrupts", func() {
		count := 0
		for {
			select {
			case <-done:
				return
			case sig := <-sigChan:
				count++
				if count == 1 {
					logx.Info("CMD", fmt.Sprintf("Received %s, stopping scan...", sig))
					cancelScan()
					continue
				}
				logx.Info("CMD", fmt.Sprintf("Received %s again, stopping secondary passes...", sig))
				cancelPropagate()
				return
			}
		}
	})

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
