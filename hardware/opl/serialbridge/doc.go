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

// Package serialbridge relays OPL register writes to an Arduino (or similar)
// running the OPL2 bridge firmware, over a serial link.
//
// The firmware greets the host with "HLO!\n" when the link is opened. The host
// asks for the size of the firmware's receive buffer with "B0F?\n" and the
// firmware replies with a decimal number terminated by a newline. Register
// writes are then sent as two byte frames: the register index followed by the
// value. The firmware acknowledges every frame with a single 'k' byte once the
// frame has been written to the chip.
//
// Flow control is by credit. The number of credits is half the size of the
// firmware buffer (one credit per frame). A credit is consumed for every frame
// sent and returned for every acknowledgement received. Acknowledgements are
// read by a dedicated listener goroutine.
package serialbridge
