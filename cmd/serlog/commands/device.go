// Copyright (C) 2024 the serlog authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"bytes"
	"fmt"
	"os"

	"go.bug.st/serial"
)

// serialDevice implements Device on top of a go.bug.st serial port. Reads
// are bounded by the configured read timeout, so a ReadLine call blocks for
// at most one timeout when no data is on the wire.
type serialDevice struct {
	port    serial.Port
	pending []byte
}

func openSerialDevice(cfg SessionConfig) (Device, error) {
	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
	}
	port, err := serial.Open(cfg.Port, mode)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("the port '%s' was not found", cfg.Port)
	}
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, err
	}
	return &serialDevice{port: port}, nil
}

func (d *serialDevice) SetControlLines(dtr, rts bool) error {
	if err := d.port.SetDTR(dtr); err != nil {
		return err
	}
	return d.port.SetRTS(rts)
}

func (d *serialDevice) ReadLine() (string, bool, error) {
	if line, ok := d.takeLine(); ok {
		return line, true, nil
	}

	buf := make([]byte, 1024)
	n, err := d.port.Read(buf)
	if err != nil {
		return "", false, err
	}
	// n == 0 means the read timeout expired with nothing on the wire.
	d.pending = append(d.pending, buf[:n]...)

	line, ok := d.takeLine()
	return line, ok, nil
}

func (d *serialDevice) takeLine() (string, bool) {
	i := bytes.IndexByte(d.pending, '\n')
	if i < 0 {
		return "", false
	}
	line := string(d.pending[:i+1])
	d.pending = d.pending[i+1:]
	return line, true
}

func (d *serialDevice) Close() error {
	return d.port.Close()
}
