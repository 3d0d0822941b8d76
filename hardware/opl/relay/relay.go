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

// Package relay chooses the relay implementation for the configured backend.
// The choice is made once, when the sink is created.
package relay

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/oplrelay/curated"
	"github.com/jetsetilly/oplrelay/hardware/opl"
	"github.com/jetsetilly/oplrelay/hardware/opl/lpt"
	"github.com/jetsetilly/oplrelay/hardware/opl/serialbridge"
	"github.com/jetsetilly/oplrelay/hardware/preferences"
	"github.com/jetsetilly/oplrelay/logger"
)

// Backend identifies a relay implementation.
type Backend int

// List of valid Backend values.
const (
	BackendSerial Backend = iota
	BackendParallel
)

func (b Backend) String() string {
	switch b {
	case BackendSerial:
		return "SERIAL"
	case BackendParallel:
		return "LPT"
	}
	return fmt.Sprintf("unknown backend (%d)", int(b))
}

// ParseBackend converts a string to a Backend value. Comparison is case
// insensitive.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SERIAL", "ARDUINO":
		return BackendSerial, nil
	case "LPT", "PARALLEL":
		return BackendParallel, nil
	}
	return BackendSerial, curated.Errorf(opl.ConfigurationError, fmt.Sprintf("unrecognised backend (%s)", s))
}

// Options are passed through to the chosen implementation.
type Options struct {
	Serial   []serialbridge.Option
	Parallel []lpt.Option
}

// NewSink creates the sink for the backend. The serial backend only supports
// a single OPL2 chip. A request for a dual bank mode is logged and the OPL2
// mode is used instead.
func NewSink(backend Backend, device string, mode opl.Mode, opts Options) (opl.ChipWriteSink, error) {
	switch backend {
	case BackendSerial:
		if mode.Dual() {
			logger.Logf(logger.Allow, "relay", "%s backend does not support %s mode", backend, mode)
		}
		return serialbridge.NewRelay(device, opts.Serial...), nil
	case BackendParallel:
		return lpt.NewRelay(device, mode, opts.Parallel...), nil
	}
	return nil, curated.Errorf(opl.ConfigurationError, fmt.Sprintf("unrecognised backend (%d)", int(backend)))
}

// FromPreferences creates the sink described by the relay preferences.
func FromPreferences(p *preferences.RelayPreferences, opts Options) (opl.ChipWriteSink, error) {
	backend, err := ParseBackend(p.Backend.String())
	if err != nil {
		return nil, err
	}
	return NewSink(backend, p.Device.String(), p.ChipMode(), opts)
}
