package main

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Talafhah1/BrawlhallaReplayReader/replay"
)

var (
	debug      bool
	skipChecks bool
	compact    bool
	dialect    string
)

var rootCmd = &cobra.Command{
	Use:   "brawlreplay <replay file>",
	Short: "Decode a Brawlhalla replay file and print it as JSON",
	Args:  cobra.ExactArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []replay.Option
		if skipChecks {
			opts = append(opts, replay.WithIntegrityChecksDisabled())
		}
		switch dialect {
		case "legacy":
			opts = append(opts, replay.WithDialect(replay.DialectLegacy))
		case "current":
			opts = append(opts, replay.WithDialect(replay.DialectCurrent))
		}
		rp, err := replay.DecodeFile(args[0], opts...)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		if !compact {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(rp)
	},
}

func main() {
	rootCmd.Flags().BoolVarP(&debug, "debug", "x", false, "enable debug logging")
	rootCmd.Flags().BoolVarP(&skipChecks, "force", "f", false, "ignore checksum and version-check mismatches")
	rootCmd.Flags().BoolVarP(&compact, "compact", "c", false, "emit compact JSON")
	rootCmd.Flags().StringVar(&dialect, "dialect", "", "force the format dialect (legacy|current)")
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("decode failed")
		os.Exit(1)
	}
}
