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

// Package vgm parses VGM register logs of the OPL family of chips. VGZ files
// (gzip compressed VGM files) are decompressed transparently.
//
// Commands for the YM3812 (OPL2), YM3526 (OPL), Y8950 (MSX-AUDIO) and YMF262
// (OPL3) are extracted. Commands for other chips are skipped.
package vgm

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jetsetilly/oplrelay/curated"
)

// ParseError is the pattern used for all errors returned by the package.
const ParseError = "vgm: %v"

// SampleRate of all VGM files.
const SampleRate = 44100

// header offsets
const (
	offsetVersion      = 0x08
	offsetTotalSamples = 0x18
	offsetLoopOffset   = 0x1c
	offsetLoopSamples  = 0x20
	offsetDataOffset   = 0x34
	offsetYM3812Clock  = 0x50
	offsetYM3526Clock  = 0x54
	offsetY8950Clock   = 0x58
	offsetYMF262Clock  = 0x5c
)

// data starts at this offset for files without a data offset field
const defaultDataStart = 0x40

// Command is a single register write.
type Command struct {
	// the sample at which the write should occur
	Sample uint64

	// bank 1 only exists for YMF262 commands
	Bank     int
	Register uint8
	Value    uint8
}

func (c Command) String() string {
	return fmt.Sprintf("%d: bank %d: %02x <- %02x", c.Sample, c.Bank, c.Register, c.Value)
}

// File is a parsed VGM file.
type File struct {
	Version uint32

	// clocks in Hz of the chips used by the file. zero if the chip isn't used
	YM3812Clock uint32
	YM3526Clock uint32
	Y8950Clock  uint32
	YMF262Clock uint32

	TotalSamples uint64

	// the sample at which the loop begins and the number of samples in the
	// loop. both are zero if the file does not loop
	LoopSample  uint64
	LoopSamples uint64

	Commands []Command
}

func (f *File) String() string {
	return fmt.Sprintf("VGM %x.%02x: %d commands, %s", f.Version>>8, f.Version&0xff, len(f.Commands), f.Duration())
}

// Dual returns true if the file requires a chip with two banks.
func (f *File) Dual() bool {
	if f.YMF262Clock != 0 {
		return true
	}
	for _, c := range f.Commands {
		if c.Bank == 1 {
			return true
		}
	}
	return false
}

// Duration returns the playing time of the file, without loops.
func (f *File) Duration() time.Duration {
	return time.Duration(f.TotalSamples) * time.Second / SampleRate
}

// length of DAC stream control commands
var streamCommandLength = map[uint8]int{0x90: 5, 0x91: 5, 0x92: 6, 0x93: 11, 0x94: 2, 0x95: 5}

// Load and parse the named VGM or VGZ file.
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(ParseError, err)
	}
	return Parse(data)
}

func u32(data []byte, offset int) uint32 {
	if offset+4 > len(data) {
		return 0
	}
	return binary.LittleEndian.Uint32(data[offset : offset+4])
}

// Parse VGM data. The data can be gzip compressed.
func Parse(data []byte) (*File, error) {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, curated.Errorf(ParseError, err)
		}
		defer gz.Close()
		data, err = io.ReadAll(gz)
		if err != nil {
			return nil, curated.Errorf(ParseError, err)
		}
	}

	if len(data) < defaultDataStart {
		return nil, curated.Errorf(ParseError, "file too short")
	}
	if !bytes.Equal(data[0:4], []byte("Vgm ")) {
		return nil, curated.Errorf(ParseError, "invalid header")
	}

	f := &File{
		Version:      u32(data, offsetVersion),
		TotalSamples: uint64(u32(data, offsetTotalSamples)),
		LoopSamples:  uint64(u32(data, offsetLoopSamples)),
	}

	// the data offset field is relative to its own position. a value of zero
	// means that the data starts immediately after the basic header
	dataStart := defaultDataStart
	if o := u32(data, offsetDataOffset); o != 0 {
		dataStart = offsetDataOffset + int(o)
	}
	if dataStart >= len(data) {
		return nil, curated.Errorf(ParseError, "data offset out of range")
	}

	// clock fields only exist if the header is long enough to contain them
	clock := func(offset int) uint32 {
		if offset+4 > dataStart {
			return 0
		}
		// bit 30 indicates a dual chip configuration and bit 31 is reserved
		return u32(data, offset) & 0x3fffffff
	}
	f.YM3812Clock = clock(offsetYM3812Clock)
	f.YM3526Clock = clock(offsetYM3526Clock)
	f.Y8950Clock = clock(offsetY8950Clock)
	f.YMF262Clock = clock(offsetYMF262Clock)

	loopStart := 0
	if o := u32(data, offsetLoopOffset); o != 0 {
		loopStart = offsetLoopOffset + int(o)
	}

	var sample uint64

	// truncated returns an error if the command at i is shorter than n bytes
	truncated := func(i int, n int) error {
		if i+n > len(data) {
			return curated.Errorf(ParseError, fmt.Sprintf("truncated command 0x%02x at offset %d", data[i], i))
		}
		return nil
	}

	i := dataStart
	for i < len(data) {
		if loopStart != 0 && i == loopStart {
			f.LoopSample = sample
		}

		cmd := data[i]
		switch {
		case cmd == 0x66:
			// end of sound data
			i = len(data)

		case cmd == 0x5a || cmd == 0x5b || cmd == 0x5c || cmd == 0x5e || cmd == 0x5f:
			if err := truncated(i, 3); err != nil {
				return nil, err
			}
			c := Command{Sample: sample, Register: data[i+1], Value: data[i+2]}
			if cmd == 0x5f {
				c.Bank = 1
			}
			f.Commands = append(f.Commands, c)
			i += 3

		case cmd == 0x61:
			if err := truncated(i, 3); err != nil {
				return nil, err
			}
			sample += uint64(binary.LittleEndian.Uint16(data[i+1 : i+3]))
			i += 3

		case cmd == 0x62:
			sample += 735
			i++

		case cmd == 0x63:
			sample += 882
			i++

		case cmd >= 0x70 && cmd <= 0x7f:
			sample += uint64(cmd&0x0f) + 1
			i++

		case cmd == 0x67:
			// data block: 0x67 0x66 tt ss ss ss ss (data)
			if err := truncated(i, 7); err != nil {
				return nil, err
			}
			if data[i+1] != 0x66 {
				return nil, curated.Errorf(ParseError, fmt.Sprintf("invalid data block at offset %d", i))
			}
			i += 7 + int(binary.LittleEndian.Uint32(data[i+3:i+7]))

		case cmd == 0x68:
			// PCM RAM write
			if err := truncated(i, 12); err != nil {
				return nil, err
			}
			i += 12

		case cmd >= 0x80 && cmd <= 0x8f:
			// YM2612 DAC write and wait
			sample += uint64(cmd & 0x0f)
			i++

		case cmd >= 0x90 && cmd <= 0x95:
			n := streamCommandLength[cmd]
			if err := truncated(i, n); err != nil {
				return nil, err
			}
			i += n

		case cmd >= 0x30 && cmd <= 0x3f, cmd == 0x4f, cmd == 0x50:
			if err := truncated(i, 2); err != nil {
				return nil, err
			}
			i += 2

		case cmd >= 0x40 && cmd <= 0x5f, cmd >= 0xa0 && cmd <= 0xbf:
			if err := truncated(i, 3); err != nil {
				return nil, err
			}
			i += 3

		case cmd >= 0xc0 && cmd <= 0xdf:
			if err := truncated(i, 4); err != nil {
				return nil, err
			}
			i += 4

		case cmd >= 0xe0:
			if err := truncated(i, 5); err != nil {
				return nil, err
			}
			i += 5

		default:
			// unknown single byte command
			i++
		}
	}

	if sample > f.TotalSamples {
		f.TotalSamples = sample
	}

	return f, nil
}
