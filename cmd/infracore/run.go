package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"infracore-tile/internal/logging"
	"infracore-tile/internal/sim"
)

var runFrame time.Duration

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Mount the tile and render it live",
	Long:  "run mounts the configured tile full-screen. Without a terminal it prints a rendered frame on every tick.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if runFrame > 0 {
			cfg.FrameInterval = runFrame
		}

		interactive := term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))

		var logOut io.Writer = os.Stderr
		if interactive {
			logOut = io.Discard
		}
		logger, closeLog, err := newLogger(logOut)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, logger)

		if !interactive {
			// Piped output still gets centered when stdout is a sized terminal.
			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				width = 0
			}
			simulator := sim.NewSimulator(cfg, sim.NewFrameWriter(cmd.OutOrStdout(), cfg, width, 0))
			if err := simulator.Mount(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			simulator.Unmount()
			logger.Info("tile unmounted", "tile_id", simulator.TileID())
			return nil
		}

		tui := sim.NewTUIWriter(cfg)
		simulator := sim.NewSimulator(cfg, tui)
		if err := simulator.Mount(ctx); err != nil {
			tui.Close()
			return err
		}
		select {
		case <-ctx.Done():
		case <-tui.Done():
		}
		simulator.Unmount()
		logger.Info("tile unmounted", "tile_id", simulator.TileID(), "variant", simulator.Variant())
		return tui.Close()
	},
}

func init() {
	runCmd.Flags().DurationVar(&runFrame, "frame", 0, "Animation frame interval (e.g. 100ms); 0 keeps the configured value")
}
