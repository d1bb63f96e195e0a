// Copyright (C) 2024 the serlog authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"github.com/spf13/cobra"
)

type Info struct {
	Version string `mapstructure:"version" yaml:"version" json:"version"`
	Date    string `mapstructure:"date" yaml:"date" json:"date"`
}

func SerlogCmd(info Info) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serlog",
		Short: "Capture serial log output from an ESP32",
		Long: "Serlog records the line-oriented serial output of an attached ESP32 for a\n" +
			"bounded amount of time and writes it to a log file. It can reset the device\n" +
			"first by pulsing the DTR/RTS control lines, the same way the flashing tools\n" +
			"trigger the auto-reset circuitry on common development boards.",
	}

	cmd.AddCommand(
		CaptureCmd(),
		ResetCmd(),
		PortsCmd(),
		SetPortCmd(),
		ConfigCmd(),
		FixCmd(),
		VersionCmd(info),
	)
	return cmd
}
