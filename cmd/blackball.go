package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mezonai/blackball/common"
	"github.com/mezonai/blackball/config"
	"github.com/mezonai/blackball/db"
	"github.com/mezonai/blackball/ledger"
	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/monitoring"
	"github.com/mezonai/blackball/store"
	"github.com/mezonai/blackball/types"
)

var (
	bbDir       string
	bbNetwork   string
	bbLedger    string
	bbGenesis   string
	bbKey       string
	bbKeyFormat string
	bbStore     config.FlagStoreConfig
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List blackballed output keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		bs, err := openFlagStore()
		if err != nil {
			return err
		}
		defer bs.MustClose()

		n := 0
		var formatErr error
		err = bs.ForEach(func(key types.PublicKey) bool {
			s, err := common.FormatKey(key, bbKeyFormat)
			if err != nil {
				formatErr = err
				return false
			}
			fmt.Println(s)
			n++
			return true
		})
		if formatErr != nil {
			return formatErr
		}
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("(empty)")
		} else {
			fmt.Printf("%s outputs blackballed\n", humanize.Comma(int64(n)))
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether an output key is blackballed",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireKey()
		if err != nil {
			return err
		}
		bs, err := openFlagStore()
		if err != nil {
			return err
		}
		defer bs.MustClose()

		ok, err := bs.IsBlackballed(key)
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("%s is blackballed\n", key)
		} else {
			fmt.Printf("%s is not blackballed\n", key)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Blackball an output key",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireKey()
		if err != nil {
			return err
		}
		bs, err := openFlagStore()
		if err != nil {
			return err
		}
		defer bs.MustClose()

		if err := bs.MarkBlackballed(key); err != nil {
			return err
		}
		monitoring.RecordBlackballed(monitoring.ReasonManual)
		fmt.Println("OK")
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove an output key from the blackball database",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := requireKey()
		if err != nil {
			return err
		}
		bs, err := openFlagStore()
		if err != nil {
			return err
		}
		defer bs.MustClose()

		if err := bs.Unblackball(key); err != nil {
			return err
		}
		fmt.Println("OK")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{listCmd, checkCmd, addCmd, removeCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVar(&bbDir, "blackball-dir", "", "blackball database directory (default ~/"+config.DefaultBlackballDirName+")")
		c.Flags().StringVar(&bbNetwork, "network", config.NetworkMainnet, "network (mainnet, testnet, stagenet)")
		c.Flags().StringVar(&bbLedger, "ledger", "", "ledger whose genesis hash selects the chain")
		c.Flags().StringVar(&bbGenesis, "genesis", "", "genesis hash (hex) selecting the chain, instead of --ledger")
		addFlagStoreFlags(c, &bbStore)
	}
	listCmd.Flags().StringVar(&bbKeyFormat, "format", common.KeyFormatHex, "key format (hex, base58)")
	for _, c := range []*cobra.Command{checkCmd, addCmd, removeCmd} {
		c.Flags().StringVar(&bbKey, "key", "", "output public key (hex or base58)")
	}
}

func requireKey() (types.PublicKey, error) {
	if bbKey == "" {
		return types.PublicKey{}, fmt.Errorf("--key is required")
	}
	return common.ParseKey(bbKey)
}

// openFlagStore opens the blackball database for the chain given by --genesis
// or by the genesis hash of --ledger.
func openFlagStore() (store.BlackballStore, error) {
	var genesis types.Hash
	switch {
	case bbGenesis != "":
		h, err := types.ParseHash(bbGenesis)
		if err != nil {
			return nil, fmt.Errorf("invalid --genesis: %w", err)
		}
		genesis = h
	case bbLedger != "":
		l, err := ledger.Open(bbLedger, "", true)
		if err != nil {
			return nil, err
		}
		defer l.MustClose()
		h, err := l.GenesisHash()
		if err != nil {
			return nil, err
		}
		genesis = h
	default:
		return nil, fmt.Errorf("--genesis or --ledger is required")
	}

	dir, err := config.BlackballDir(bbDir, bbNetwork)
	if err != nil {
		return nil, err
	}
	return openBlackballStore(dir, bbStore, genesis)
}

func addFlagStoreFlags(c *cobra.Command, cfg *config.FlagStoreConfig) {
	c.Flags().StringVar(&cfg.Backend, "flags-backend", "", "blackball database backend (bbolt, leveldb, redis), bbolt when empty")
	c.Flags().StringVar(&cfg.RedisAddr, "redis-addr", "localhost:6379", "Redis address (host:port) for the redis backend")
	c.Flags().IntVar(&cfg.RedisDB, "redis-db", 0, "Redis database number for the redis backend")
}

func openBlackballStore(dir string, cfg config.FlagStoreConfig, genesis types.Hash) (store.BlackballStore, error) {
	vendor := db.BoltDB
	if cfg.Backend != "" {
		v, err := db.ParseDBVendor(cfg.Backend)
		if err != nil {
			return nil, err
		}
		vendor = v
	}

	if vendor == db.Redis {
		logx.Info("CMD", fmt.Sprintf("Using blackball database on Redis %s, db %d", cfg.RedisAddr, cfg.RedisDB))
	} else {
		logx.Info("CMD", "Using blackball database in ", dir)
	}
	return store.OpenBlackballStore(vendor, db.DBOptions{
		Directory: dir,
		Address:   cfg.RedisAddr,
		RedisDB:   cfg.RedisDB,
	}, genesis)
}
