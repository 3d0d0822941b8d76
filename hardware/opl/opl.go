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

package opl

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/oplrelay/curated"
)

// AudioChannel is the output channel the chip would normally generate samples
// into.
type AudioChannel interface {
	Enable(enable bool)
}

// ChipWriteSink is implemented by types that accept the register writes of an
// OPL chip.
type ChipWriteSink interface {
	// WriteAddr latches the register targeted by the next call to WriteReg().
	// The port argument selects the bank on dual bank chips. The value
	// argument is returned unchanged.
	WriteAddr(port uint32, value uint8) uint32

	// WriteReg writes the value to the register previously latched by
	// WriteAddr().
	WriteReg(register uint32, value uint8)

	// Init establishes the link to the hardware. Failure is not reported to
	// the caller. The sink is disabled instead.
	Init(sampleRate int)

	// Generate never produces samples. The channel is disabled.
	Generate(channel AudioChannel, samples int)

	// Destroy silences the chip and releases the link. Destroy always returns
	// in bounded time.
	Destroy()
}

// Error patterns used by the relay packages.
const (
	ConfigurationError = "relay configuration: %v"
	TransportOpenError = "relay transport: %v"
	ProtocolError      = "relay protocol: %v"
)

// Mode is the addressing mode of the physical chip.
type Mode int

// List of valid Mode values.
const (
	// a single OPL2 chip. bank selection is ignored
	ModeOPL2 Mode = iota

	// an OPL3 chip (or a pair of OPL2 chips) with two banks of registers
	ModeOPL3
)

func (m Mode) String() string {
	switch m {
	case ModeOPL2:
		return "OPL2"
	case ModeOPL3:
		return "OPL3"
	}
	return fmt.Sprintf("unknown mode (%d)", int(m))
}

// Dual returns true if the mode has two banks of registers.
func (m Mode) Dual() bool {
	return m == ModeOPL3
}

// ParseMode converts a string to a Mode value. Comparison is case insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OPL2", "SINGLE":
		return ModeOPL2, nil
	case "OPL3", "DUAL":
		return ModeOPL3, nil
	}
	return ModeOPL2, curated.Errorf(ConfigurationError, fmt.Sprintf("unrecognised mode (%s)", s))
}

// Bank is one of the two register banks of a dual bank chip.
type Bank int

// BankFromPort returns the bank selected by the port argument to WriteAddr().
//
// Port offsets 0 and 2 of the chip's address space (0x388 and 0x38a on a PC)
// are the address ports of bank 0 and bank 1. Callers may also pass the bank
// number directly, so any non-zero value in the low two bits selects bank 1.
func BankFromPort(port uint32) Bank {
	if port&0x03 != 0 {
		return 1
	}
	return 0
}

// Write is a single register write.
type Write struct {
	Bank     Bank
	Register uint8
	Value    uint8
}

func (w Write) String() string {
	return fmt.Sprintf("bank %d: %02x <- %02x", w.Bank, w.Register, w.Value)
}

// number of registers in a bank.
const NumRegisters = 256

// ResetSequence returns the writes required to silence the chip. Every
// register of bank 0 is set to zero, followed by every register of bank 1 in
// the case of dual bank modes.
//
// The sequence only depends on the mode so repeated calls return identical
// sequences.
func ResetSequence(mode Mode) []Write {
	banks := 1
	if mode.Dual() {
		banks = 2
	}

	seq := make([]Write, 0, banks*NumRegisters)
	for b := range banks {
		for r := range NumRegisters {
			seq = append(seq, Write{Bank: Bank(b), Register: uint8(r)})
		}
	}
	return seq
}
