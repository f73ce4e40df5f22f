package main

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/TheusHen/keystretch/keystretch"
	"github.com/TheusHen/keystretch/keystretch/blockcipher"
	"github.com/TheusHen/keystretch/keystretch/stretch"
)

func newCalibrateCmd(opts *globalOptions) *cobra.Command {
	var (
		duration   time.Duration
		cipherName string
		out        string
		params     bool
	)

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Measure how many rounds fit in a time budget and save a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := blockcipher.ByName(cipherName)
			if err != nil {
				return err
			}

			opts.logger.Debug("calibrating", "cipher", c.Name(), "budget", duration)
			start := time.Now()
			p, err := keystretch.NewProfile(duration, stretch.WithCipher(c))
			if err != nil {
				return err
			}
			opts.logger.Info("calibrated", "cipher", p.Cipher, "rounds", p.Rounds, "elapsed", time.Since(start))

			w := cmd.OutOrStdout()
			if path := profilePath(out); path != "" {
				if err := keystretch.SaveProfile(path, p); err != nil {
					return err
				}
				opts.logger.Info("profile saved", "path", path)
				fmt.Fprintf(w, "rounds: %d\n", p.Rounds)
			} else {
				data, err := yaml.Marshal(p)
				if err != nil {
					return err
				}
				fmt.Fprint(w, string(data))
			}

			if params {
				dict, err := p.Parameters()
				if err != nil {
					return err
				}
				encoded, err := dict.Marshal()
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "params: %s\n", base64.StdEncoding.EncodeToString(encoded))
			}
			return nil
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", time.Second, "time budget for the calibration run")
	cmd.Flags().StringVarP(&cipherName, "cipher", "c", "aes", "block cipher (aes, twofish)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the profile to this file (default $"+profileEnv+", else stdout)")
	cmd.Flags().BoolVar(&params, "params", false, "also print the AES-KDF parameter dictionary (base64)")
	return cmd
}
