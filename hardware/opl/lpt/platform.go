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

package lpt

import "github.com/jetsetilly/oplrelay/platform/ppdev"

// Port is a claimed parallel port.
type Port interface {
	WriteData(data uint8) error
	WriteControl(ctl uint8) error
	Close() error
}

// Platform finds and opens parallel ports.
type Platform interface {
	// Ports returns the names of the available ports in discovery order.
	Ports() ([]string, error)

	// Open and exclusively claim the named port.
	Open(name string) (Port, error)
}

// the default platform uses the ppdev driver
type ppdevPlatform struct{}

func (ppdevPlatform) Ports() ([]string, error) {
	return ppdev.Ports()
}

func (ppdevPlatform) Open(name string) (Port, error) {
	p, err := ppdev.Open(name)
	if err != nil {
		return nil, err
	}
	return p, nil
}
