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

// Package opl defines the contract between an emulated OPL2/OPL3 FM chip and
// a relay that forwards the chip's register writes to a physical chip.
//
// A relay implements the ChipWriteSink interface. The producer (an emulator or
// a register log player) calls WriteAddr() to latch a register and WriteReg()
// to write a value to the latched register. Relays never produce audio.
//
// Two relay implementations exist in sub-packages: serialbridge, for an
// Arduino running the OPL2 bridge firmware, and lpt, for an OPL2LPT or OPL3LPT
// adaptor attached to a parallel port. The relay sub-package chooses between
// them.
//
// Relays never return errors to the producer. Any failure to establish or
// maintain the link is logged and the relay degrades to a sink that silently
// accepts and discards writes.
package opl
