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

import "fmt"

// EventKind distinguishes the different types of Event.
type EventKind int

// List of valid EventKind values.
const (
	EventAddress EventKind = iota
	EventRegister
	EventQuit
)

// bank select bit in the Data field of an address event
const bankSelect = 0x100

// Event is a single entry in the queue between the producer and the worker.
type Event struct {
	Kind EventKind
	Data uint16
}

func (e Event) String() string {
	switch e.Kind {
	case EventAddress:
		if e.Data&bankSelect == bankSelect {
			return fmt.Sprintf("address %02x (bank 1)", uint8(e.Data))
		}
		return fmt.Sprintf("address %02x", uint8(e.Data))
	case EventRegister:
		return fmt.Sprintf("register %02x", uint8(e.Data))
	case EventQuit:
		return "quit"
	}
	return fmt.Sprintf("unknown event (%d)", int(e.Kind))
}
