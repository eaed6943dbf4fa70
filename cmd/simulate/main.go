package main

import (
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "simulate",
		Short:        "Plays hold'em hands between random bots on a local table",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCmd())
	return rootCmd
}

func newRunCmd() *cobra.Command {
	cfg := simulationConfig{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				pterm.DefaultLogger.Level = pterm.LogLevelDebug
			}

			logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

			sim, err := newSimulation(cfg, logger)
			if err != nil {
				return err
			}

			sim.render = true
			if err := sim.run(); err != nil {
				return err
			}

			renderStandings(sim.table.PublicState())
			return nil
		},
	}

	cmd.Flags().IntVar(&cfg.players, "players", 4, "number of bots (2-10)")
	cmd.Flags().IntVar(&cfg.hands, "hands", 10, "number of hands to play")
	cmd.Flags().Int64Var(&cfg.seed, "seed", 0, "seed for a reproducible run, 0 shuffles with crypto/rand")
	cmd.Flags().IntVar(&cfg.chips, "chips", 200, "buy-in of every bot")
	cmd.Flags().Bool("verbose", false, "log hole cards and bot decisions")

	return cmd
}
