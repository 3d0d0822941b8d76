// This file is part of oplrelay.
//
// oplrelay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// oplrelay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with oplrelay.  If not, see <https://www.gnu.org/licenses/>.

// Package serialport opens serial ttys for use by the serial relay.
//
// The device is configured for raw 8-bit transfer with the pkg/term package.
// The returned *os.File is registered with the Go runtime poller so that
// closing it from one goroutine unblocks a Read() in progress on another.
package serialport

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/term"
	"golang.org/x/sys/unix"
)

// DefaultBaud is the speed of the OPL2 bridge firmware.
const DefaultBaud = 115200

// Open the named serial device at the requested speed in raw mode, with no
// flow control.
func Open(name string, baud int) (*os.File, error) {
	// keep the device open while it is being configured. closing the last
	// handle to a tty drops DTR, which resets most micro-controller boards
	f, err := os.OpenFile(name, os.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("serialport: %w", err)
	}

	t, err := term.Open(name, term.Speed(baud), term.RawMode, term.FlowControl(term.NONE))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("serialport: %s: %w", name, err)
	}

	// discard anything received before the port was configured
	_ = t.Flush()

	if err := t.Close(); err != nil {
		f.Close()
		return nil, fmt.Errorf("serialport: %s: %w", name, err)
	}

	return f, nil
}

// patterns of device names that are likely to be USB serial adaptors or boards
// with native USB.
var candidatePatterns = []string{
	"/dev/ttyUSB*",
	"/dev/ttyACM*",
}

// Candidates returns the names of serial devices that might be connected to
// an OPL2 bridge. Names are sorted by pattern and then alphabetically.
func Candidates() []string {
	var c []string
	for _, p := range candidatePatterns {
		m, err := filepath.Glob(p)
		if err != nil {
			continue
		}
		sort.Strings(m)
		c = append(c, m...)
	}
	return c
}
