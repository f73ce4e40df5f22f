package main

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheusHen/keystretch/keystretch/kdf"
)

func newDeriveCmd(opts *globalOptions) *cobra.Command {
	var (
		engineName string
		paramsB64  string
		best       time.Duration
		keyHex     string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive a key with a KDF engine (AES-KDF or Argon2id)",
		Long: `derive runs a KDF engine over a key or password.

Without --params, fresh parameters are generated (defaults, or calibrated to
--best) and printed as a base64 dictionary. Pass that dictionary back with
--params to reproduce the key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := deriveInput(keyHex, password)
			if err != nil {
				return err
			}

			var p *kdf.Parameters
			if paramsB64 != "" {
				raw, err := base64.StdEncoding.DecodeString(paramsB64)
				if err != nil {
					return fmt.Errorf("--params: %w", err)
				}
				if p, err = kdf.UnmarshalParameters(raw); err != nil {
					return err
				}
			} else {
				engine, err := kdf.LookupName(engineName)
				if err != nil {
					return err
				}
				if p, err = newParameters(engine, best); err != nil {
					return err
				}
				opts.logger.Debug("generated parameters", "engine", engine.Name(), "best", best)
			}

			key, err := kdf.Derive(msg, p)
			if err != nil {
				return err
			}
			encoded, err := p.Marshal()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "key: %s\n", hex.EncodeToString(key))
			fmt.Fprintf(w, "params: %s\n", base64.StdEncoding.EncodeToString(encoded))
			return nil
		},
	}

	cmd.Flags().StringVarP(&engineName, "engine", "e", "aes-kdf", "engine name (aes-kdf, argon2id)")
	cmd.Flags().StringVar(&paramsB64, "params", "", "base64 parameter dictionary from an earlier run")
	cmd.Flags().DurationVar(&best, "best", 0, "calibrate the engine cost to this budget")
	cmd.Flags().StringVarP(&keyHex, "key", "k", "", "input key, hex")
	cmd.Flags().StringVar(&password, "password", "", "input password (used when --key is empty)")
	return cmd
}

func deriveInput(keyHex, password string) ([]byte, error) {
	switch {
	case keyHex != "":
		return decodeHexFlag("key", keyHex)
	case password != "":
		return []byte(password), nil
	default:
		return nil, errors.New("either --key or --password is required")
	}
}

func newParameters(engine kdf.Engine, best time.Duration) (*kdf.Parameters, error) {
	var (
		p   *kdf.Parameters
		err error
	)
	if best > 0 {
		if p, err = engine.BestParameters(best); err != nil {
			return nil, err
		}
	} else {
		p = engine.DefaultParameters()
	}
	if err := engine.Randomize(p); err != nil {
		return nil, err
	}
	return p, nil
}
