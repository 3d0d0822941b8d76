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

// Package lpt relays OPL register writes to an OPL2LPT or OPL3LPT adaptor
// attached to a parallel port.
//
// Writes are queued by the producer and executed by a dedicated worker
// goroutine, which is the only goroutine to touch the parallel port. The port
// is claimed by the worker when it starts. If no port can be claimed the
// worker continues to drain the queue but every event is discarded.
//
// Each write to the chip is a pulse on the nINIT line of the control register
// after the data lines have been set. The remaining control lines select
// between the address and data ports of the chip, and between the two banks
// of an OPL3.
//
// The chip needs time to settle after each write. For the OPL2 the worker
// waits for 4µs after an address write and 23µs after a register write. The
// OPL3 is fast enough not to need any explicit delay.
package lpt
