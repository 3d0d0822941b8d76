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

//go:build !linux

package ppdev

import (
	"github.com/jetsetilly/oplrelay/curated"
)

// Port is an open and claimed parallel port.
type Port struct{}

// Open always fails on this platform.
func Open(name string) (*Port, error) {
	return nil, curated.Errorf(Unsupported, name)
}

func (p *Port) String() string {
	return ""
}

// WriteData sets the data lines.
func (p *Port) WriteData(data uint8) error {
	return curated.Errorf(Unsupported, "write data")
}

// WriteControl sets the control register.
func (p *Port) WriteControl(ctl uint8) error {
	return curated.Errorf(Unsupported, "write control")
}

// Close releases the port and closes the device.
func (p *Port) Close() error {
	return nil
}
