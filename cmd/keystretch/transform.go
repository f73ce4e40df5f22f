package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheusHen/keystretch/keystretch"
)

func newTransformCmd(opts *globalOptions) *cobra.Command {
	var (
		profile    string
		keyHex     string
		seedHex    string
		rounds     uint64
		cipherName string
	)

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Stretch a 32-byte key with a saved profile or explicit parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyHex == "" {
				return errors.New("--key is required")
			}
			key, err := decodeHexFlag("key", keyHex)
			if err != nil {
				return err
			}

			var p *keystretch.Profile
			switch path := profilePath(profile); {
			case seedHex != "":
				seed, err := decodeHexFlag("seed", seedHex)
				if err != nil {
					return err
				}
				p = &keystretch.Profile{Cipher: cipherName, Seed: seed, Rounds: rounds}
			case path != "":
				if p, err = keystretch.LoadProfile(path); err != nil {
					return err
				}
				opts.logger.Debug("profile loaded", "path", path, "cipher", p.Cipher, "rounds", p.Rounds)
			default:
				return errors.New("either --profile or --seed is required")
			}

			out, err := p.DeriveContext(cmd.Context(), key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "profile written by calibrate (default $"+profileEnv+")")
	cmd.Flags().StringVarP(&keyHex, "key", "k", "", "32-byte key to stretch, hex")
	cmd.Flags().StringVar(&seedHex, "seed", "", "32-byte seed, hex (overrides --profile)")
	cmd.Flags().Uint64VarP(&rounds, "rounds", "r", 0, "round count, used with --seed")
	cmd.Flags().StringVarP(&cipherName, "cipher", "c", "aes", "block cipher, used with --seed")
	return cmd
}
