// Copyright (C) 2024 the serlog authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/epdlab/serlog/cmd/serlog/directory"
)

const (
	PortCfgKey = "port"
	BaudCfgKey = "baud"
)

// Settings is the typed view of the user config file.
type Settings struct {
	Port string `mapstructure:"port" yaml:"port,omitempty" json:"port,omitempty"`
	Baud int    `mapstructure:"baud" yaml:"baud,omitempty" json:"baud,omitempty"`
}

func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configure serlog",
		Long:  "Configure the serlog command line tool.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:          "set-port <port>",
			Short:        "Set the default serial port",
			Args:         cobra.ExactArgs(1),
			SilenceUsage: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := directory.GetUserConfig()
				if err != nil {
					return err
				}
				cfg.Set(PortCfgKey, args[0])
				return directory.WriteConfig(cfg)
			},
		},
		&cobra.Command{
			Use:          "set-baud <rate>",
			Short:        "Set the default baud rate",
			Args:         cobra.ExactArgs(1),
			SilenceUsage: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				baud, err := strconv.Atoi(args[0])
				if err != nil || baud <= 0 {
					return fmt.Errorf("invalid baud rate '%s'", args[0])
				}
				cfg, err := directory.GetUserConfig()
				if err != nil {
					return err
				}
				cfg.Set(BaudCfgKey, baud)
				return directory.WriteConfig(cfg)
			},
		},
		&cobra.Command{
			Use:          "show",
			Short:        "Show the stored configuration",
			Args:         cobra.NoArgs,
			SilenceUsage: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := directory.GetUserConfig()
				if err != nil {
					return err
				}
				var settings Settings
				if err := mapstructure.Decode(cfg.AllSettings(), &settings); err != nil {
					return err
				}
				return yaml.NewEncoder(os.Stdout).Encode(settings)
			},
		},
	)
	return cmd
}

// ConfiguredPort returns the port stored in the user config, if any.
func ConfiguredPort() string {
	cfg, err := directory.GetUserConfig()
	if err != nil {
		return ""
	}
	return cfg.GetString(PortCfgKey)
}

// ConfiguredBaudRate returns the baud rate stored in the user config, or 0.
func ConfiguredBaudRate() int {
	cfg, err := directory.GetUserConfig()
	if err != nil {
		return 0
	}
	return cfg.GetInt(BaudCfgKey)
}
