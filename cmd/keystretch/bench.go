package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/TheusHen/keystretch/keystretch/blockcipher"
	"github.com/TheusHen/keystretch/keystretch/stretch"
)

func newBenchCmd(opts *globalOptions) *cobra.Command {
	var (
		duration   time.Duration
		workers    int
		cipherName string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run concurrent calibrations and report rounds per worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := blockcipher.ByName(cipherName)
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = runtime.NumCPU()
			}

			opts.logger.Debug("benchmark starting", "cipher", c.Name(), "workers", workers, "duration", duration)
			results, err := benchmark(cmd.Context(), stretch.New(stretch.WithCipher(c)), workers, duration)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			var total uint64
			for i, rounds := range results {
				total += rounds
				fmt.Fprintf(w, "worker %d: %d rounds\n", i, rounds)
			}
			perSecond := float64(total) / duration.Seconds()
			fmt.Fprintf(w, "total: %d rounds (%.0f rounds/s, %s)\n", total, perSecond, c.Name())
			return nil
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", time.Second, "calibration budget per worker")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of concurrent workers (default: number of CPUs)")
	cmd.Flags().StringVarP(&cipherName, "cipher", "c", "aes", "block cipher (aes, twofish)")
	return cmd
}

// benchmark runs one calibration per worker, each on its own buffer.
func benchmark(ctx context.Context, s *stretch.Stretcher, workers int, budget time.Duration) ([]uint64, error) {
	results := make([]uint64, workers)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		i := i // per-iteration copy; go.mod targets 1.21 semantics
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf := make([]byte, stretch.BufferSize)
			seed := make([]byte, stretch.SeedSize)
			buf[0], seed[0] = byte(i), byte(i)

			rounds, err := s.Calibrate(buf, seed, budget)
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			results[i] = rounds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
