// Copyright (C) 2024 the serlog authors. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const (
	DefaultBaudRate        = 115200
	DefaultCaptureDuration = 15 * time.Second
	DefaultResetDuration   = 30 * time.Second

	// LogFileName is where captured lines end up, relative to the
	// working directory. Rewritten from scratch on every run.
	LogFileName = "serial_log_capture.txt"

	pollInterval    = 10 * time.Millisecond
	resetPulseDelay = 100 * time.Millisecond
)

// Device is the minimal serial capability the capture session needs. The
// real implementation sits on top of go.bug.st/serial; tests use a scripted
// fake.
type Device interface {
	// SetControlLines drives the DTR and RTS control lines.
	SetControlLines(dtr, rts bool) error
	// ReadLine returns the next newline-terminated line. ok is false when
	// the read timeout expired before a complete line arrived.
	ReadLine() (line string, ok bool, err error)
	Close() error
}

type SessionConfig struct {
	Port        string
	BaudRate    int
	Duration    time.Duration
	Reset       bool
	ReadTimeout time.Duration
}

type openFunc func(cfg SessionConfig) (Device, error)

// Session accumulates serial output from a device over a bounded window.
type Session struct {
	device Device
	out    io.Writer
	now    func() time.Time
	sleep  func(time.Duration)
}

func NewSession(device Device, out io.Writer) *Session {
	return &Session{
		device: device,
		out:    out,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Reset pulses the DTR/RTS lines to restart the attached device. The
// transition order and 100 ms delays match the auto-reset strapping of the
// board's bootloader circuit; do not reorder them. There is no acknowledgment
// from the device, so this is best effort.
func (s *Session) Reset() error {
	pulse := []struct{ dtr, rts bool }{
		{dtr: false, rts: true},
		{dtr: true, rts: false},
	}
	for _, p := range pulse {
		if err := s.device.SetControlLines(p.dtr, p.rts); err != nil {
			return err
		}
		s.sleep(resetPulseDelay)
	}
	// Rest state: both lines deasserted.
	return s.device.SetControlLines(false, false)
}

// Capture polls the device for lines until duration has elapsed on the wall
// clock. Lines are trimmed of surrounding whitespace, stripped of invalid
// UTF-8, echoed to the session's output stream as they arrive, and returned
// in receipt order. Blank lines are dropped. A read error ends the capture
// early with whatever was collected so far.
func (s *Session) Capture(duration time.Duration) []string {
	var lines []string
	deadline := s.now().Add(duration)
	for s.now().Before(deadline) {
		line, ok, err := s.device.ReadLine()
		if err != nil {
			break
		}
		if !ok {
			s.sleep(pollInterval)
			continue
		}
		line = strings.TrimSpace(strings.ToValidUTF8(line, ""))
		if line == "" {
			continue
		}
		fmt.Fprintln(s.out, line)
		lines = append(lines, line)
	}
	return lines
}

// WriteLog persists the captured lines, newline-joined, truncating any
// previous capture.
func WriteLog(path string, lines []string) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func runCapture(cfg SessionConfig, open openFunc, out io.Writer, logPath string) error {
	dev, err := open(cfg)
	if err != nil {
		return fmt.Errorf("error opening port '%s': %w", cfg.Port, err)
	}

	session := NewSession(dev, out)
	if cfg.Reset {
		fmt.Fprintf(out, "Connected to '%s'. Resetting via DTR/RTS...\n", cfg.Port)
		if err := session.Reset(); err != nil {
			dev.Close()
			return fmt.Errorf("failed to reset device on '%s': %w", cfg.Port, err)
		}
		fmt.Fprintln(out, "Reset complete. Capturing logs...")
	} else {
		fmt.Fprintf(out, "Connected to '%s' at %d baud.\n", cfg.Port, cfg.BaudRate)
	}

	lines := session.Capture(cfg.Duration)
	dev.Close()

	if err := WriteLog(logPath, lines); err != nil {
		return fmt.Errorf("failed to write '%s': %w", logPath, err)
	}
	fmt.Fprintln(out, "Done capturing logs.")
	return nil
}
