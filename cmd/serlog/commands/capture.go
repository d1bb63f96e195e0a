// Copyright (C) 2024 the serlog authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func CaptureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture [duration]",
		Short: "Capture serial log output for a fixed number of seconds",
		Long: "Capture the serial output of the attached device for a bounded amount of\n" +
			"time and write it to '" + LogFileName + "'. The optional positional argument\n" +
			"overrides the capture duration in seconds.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sessionConfig(cmd, args, DefaultCaptureDuration)
			if err != nil {
				return err
			}
			cfg.ReadTimeout = time.Second
			return runCapture(cfg, openSerialDevice, os.Stdout, LogFileName)
		},
	}

	addSessionFlags(cmd)
	return cmd
}

func ResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset [duration]",
		Short: "Reset the device via DTR/RTS, then capture its serial output",
		Long: "Pulse the DTR/RTS control lines to restart the attached device, then capture\n" +
			"its serial output from boot for a bounded amount of time and write it to\n" +
			"'" + LogFileName + "'. The optional positional argument overrides the capture\n" +
			"duration in seconds.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sessionConfig(cmd, args, DefaultResetDuration)
			if err != nil {
				return err
			}
			cfg.Reset = true
			cfg.ReadTimeout = 100 * time.Millisecond
			return runCapture(cfg, openSerialDevice, os.Stdout, LogFileName)
		},
	}

	addSessionFlags(cmd)
	return cmd
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("port", "p", "", "serial port to capture from")
	cmd.Flags().Uint("baud", DefaultBaudRate, "the baud rate of the serial port")
}

func sessionConfig(cmd *cobra.Command, args []string, defaultDuration time.Duration) (SessionConfig, error) {
	cfg := SessionConfig{Duration: defaultDuration}

	port, err := cmd.Flags().GetString("port")
	if err != nil {
		return cfg, err
	}
	if port == "" {
		port = ConfiguredPort()
	}
	if port == "" {
		return cfg, fmt.Errorf("no serial port given. Use --port or run 'serlog set-port'")
	}
	cfg.Port = port

	baud, err := cmd.Flags().GetUint("baud")
	if err != nil {
		return cfg, err
	}
	if !cmd.Flags().Changed("baud") {
		if configured := ConfiguredBaudRate(); configured != 0 {
			baud = uint(configured)
		}
	}
	cfg.BaudRate = int(baud)

	if len(args) == 1 {
		seconds, err := strconv.Atoi(args[0])
		if err != nil || seconds <= 0 {
			return cfg, fmt.Errorf("invalid capture duration '%s': must be a positive number of seconds", args[0])
		}
		cfg.Duration = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}
