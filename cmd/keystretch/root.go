package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// profileEnv names the environment variable consulted when --profile is empty.
const profileEnv = "KEYSTRETCH_PROFILE"

type globalOptions struct {
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	cmd := &cobra.Command{
		Use:   "keystretch",
		Short: "Iterated block-cipher key stretching",
		Long: `keystretch hardens 256-bit keys by re-encrypting both halves of the key
with a block cipher a large number of times.

Run 'keystretch calibrate' once to find a round count that fits a time budget
on this machine, then 'keystretch transform' with the saved profile to
reproduce the stretched key.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newCalibrateCmd(opts))
	cmd.AddCommand(newTransformCmd(opts))
	cmd.AddCommand(newDeriveCmd(opts))
	cmd.AddCommand(newBenchCmd(opts))
	return cmd
}

func profilePath(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(profileEnv)
}

func decodeHexFlag(name, value string) ([]byte, error) {
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return b, nil
}
