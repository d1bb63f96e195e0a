// Copyright (C) 2024 the serlog authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/epdlab/serlog/cmd/serlog/directory"
)

// PortDetails describes one detected serial port.
type PortDetails struct {
	Name         string `mapstructure:"name" yaml:"name" json:"name"`
	IsUSB        bool   `mapstructure:"usb" yaml:"usb" json:"usb"`
	VID          string `mapstructure:"vid,omitempty" yaml:"vid,omitempty" json:"vid,omitempty"`
	PID          string `mapstructure:"pid,omitempty" yaml:"pid,omitempty" json:"pid,omitempty"`
	SerialNumber string `mapstructure:"serial,omitempty" yaml:"serial,omitempty" json:"serial,omitempty"`
}

func (p PortDetails) Short() string {
	return p.Name
}

type portList []PortDetails

func (l portList) Elements() []Short {
	var res []Short
	for _, p := range l {
		res = append(res, p)
	}
	return res
}

func PortsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ports",
		Short:        "List the serial ports available on this machine",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := cmd.Flags().GetBool("all")
			if err != nil {
				return err
			}

			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}

			ports, err := listPorts(all, verbose)
			if err != nil {
				return err
			}
			if len(ports) == 0 {
				fmt.Println("No serial ports detected.")
				return nil
			}

			enc, err := parseOutputFlag(cmd)
			if err != nil {
				return err
			}
			return enc.Encode(ports)
		},
	}

	cmd.Flags().Bool("all", false, "if set, will show all available ports")
	cmd.Flags().BoolP("verbose", "v", false, "include USB details for each port")
	cmd.Flags().StringP("output", "o", "short", "output format: short, json or yaml")
	return cmd
}

func SetPortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "set-port",
		Short:        "Select the serial port you want to capture from",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := cmd.Flags().GetBool("all")
			if err != nil {
				return err
			}

			port, err := pickPort(all)
			if err != nil {
				return err
			}

			cfg, err := directory.GetUserConfig()
			if err != nil {
				return err
			}
			cfg.Set(PortCfgKey, port)
			if err := directory.WriteConfig(cfg); err != nil {
				return err
			}
			fmt.Printf("Default port set to '%s'\n", port)
			return nil
		},
	}

	cmd.Flags().Bool("all", false, "if set, will show all available ports")
	return cmd
}

func listPorts(all bool, verbose bool) (portList, error) {
	if verbose {
		detailed, err := enumerator.GetDetailedPortsList()
		if err != nil {
			return nil, err
		}
		var res portList
		for _, p := range detailed {
			if !all && !keepPort(p.Name) {
				continue
			}
			res = append(res, PortDetails{
				Name:         p.Name,
				IsUSB:        p.IsUSB,
				VID:          p.VID,
				PID:          p.PID,
				SerialNumber: p.SerialNumber,
			})
		}
		return res, nil
	}

	names, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}
	if !all {
		names = filterPorts(names)
	}
	var res portList
	for _, name := range names {
		res = append(res, PortDetails{Name: name})
	}
	return res, nil
}

func pickPort(all bool) (string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return "", err
	}
	if !all {
		ports = filterPorts(ports)
	}
	if len(ports) == 0 {
		return "", fmt.Errorf("no serial ports detected. Have you installed the driver for the device you have connected?")
	}

	prompt := promptui.Select{
		Label:     "Choose what serial port you want to use",
		Items:     ports,
		Templates: &promptui.SelectTemplates{},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("you didn't select anything")
	}

	return ports[i], nil
}

func keepPort(name string) bool {
	for _, kept := range filterPorts([]string{name}) {
		if kept == name {
			return true
		}
	}
	return false
}

func filterPorts(ports []string) []string {
	switch runtime.GOOS {
	case "darwin":
		return darwinFilterPaths(ports)
	case "linux":
		return linuxFilterPaths(ports)
	default:
		return ports
	}
}

func darwinFilterPaths(paths []string) []string {
	existing := map[string]struct{}{}
	for _, p := range paths {
		existing[p] = struct{}{}
	}
	var res []string
	for _, path := range paths {
		if strings.HasPrefix(path, "/dev/cu") && !strings.Contains(path, "Bluetooth") {
			res = append(res, path)
		} else if strings.HasPrefix(path, "/dev/tty") && !strings.Contains(path, "Bluetooth") {
			candidate := "/dev/cu" + strings.TrimPrefix(path, "/dev/tty")
			if _, exists := existing[candidate]; !exists {
				res = append(res, path)
			}
		}
	}
	return res
}

func linuxFilterPaths(paths []string) []string {
	res := []string(nil)
	for _, path := range paths {
		if strings.Contains(path, "tty") {
			if strings.Contains(path, "USB") || strings.Contains(path, "ACM0") {
				res = append(res, path)
			}
		}
	}
	return res
}
