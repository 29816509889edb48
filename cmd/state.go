package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mezonai/blackball/blackball"
	"github.com/mezonai/blackball/config"
)

var (
	stateDir     string
	stateNetwork string
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect the incremental analysis state",
}

var stateInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the size of the analysis state and the scan checkpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.BlackballDir(stateDir, stateNetwork)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, blackball.StateFileName)
		st := blackball.LoadState(path)

		pending := 0
		for _, processed := range st.NewlySpent {
			if !processed {
				pending++
			}
		}

		fmt.Printf("State file:        %s\n", path)
		fmt.Printf("Key images:        %s\n", humanize.Comma(int64(len(st.RelativeRings))))
		fmt.Printf("Indexed outputs:   %s\n", humanize.Comma(int64(len(st.Outputs))))
		fmt.Printf("Distinct rings:    %s\n", humanize.Comma(int64(len(st.RingInstances))))
		fmt.Printf("Spent outputs:     %s\n", humanize.Comma(int64(len(st.Spent))))
		fmt.Printf("Pending secondary: %s\n", humanize.Comma(int64(pending)))

		sources := make([]string, 0, len(st.ProcessedHeights))
		for src := range st.ProcessedHeights {
			sources = append(sources, src)
		}
		sort.Strings(sources)
		for _, src := range sources {
			fmt.Printf("Checkpoint:        %s at %s\n", src, humanize.Comma(int64(st.ProcessedHeights[src])))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateInfoCmd)
	stateInfoCmd.Flags().StringVar(&stateDir, "blackball-dir", "", "blackball database directory (default ~/"+config.DefaultBlackballDirName+")")
	stateInfoCmd.Flags().StringVar(&stateNetwork, "network", config.NetworkMainnet, "network (mainnet, testnet, stagenet)")
}
