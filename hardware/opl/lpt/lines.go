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

import (
	"time"

	"github.com/jetsetilly/oplrelay/hardware/opl"
)

// control register lines
const (
	nSTROBE   = 0x01
	nAUTOFD   = 0x02
	nINIT     = 0x04
	nSELECTIN = 0x08

	// lines that are inverted by the parallel port hardware
	inverted = nSTROBE | nAUTOFD | nSELECTIN
)

// settle delays for the OPL2
const (
	addressDelay  = 4 * time.Microsecond
	registerDelay = 23 * time.Microsecond
)

// control line values for each type of write. the nINIT line is pulsed
const (
	ctlAddress       = nINIT | nSTROBE | nSELECTIN
	ctlRegister      = nINIT | nSELECTIN
	ctlAddressBank1  = nINIT | nSTROBE
	ctlRegisterBank1 = nINIT
)

// the default delay function busy waits. sleeping is far too coarse for delays
// of a few microseconds
func spin(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}

// pulse writes the data lines and then pulses nINIT. the control value is
// given in terms of the line names and is converted to the register value.
func (r *Relay) pulse(data uint8, ctl uint8) error {
	if err := r.port.WriteData(data); err != nil {
		return err
	}
	if err := r.port.WriteControl(ctl ^ inverted); err != nil {
		return err
	}
	if err := r.port.WriteControl((ctl ^ nINIT) ^ inverted); err != nil {
		return err
	}
	return r.port.WriteControl(ctl ^ inverted)
}

// execute a single event on the parallel port. must only be called by the
// worker goroutine.
func (r *Relay) execute(e Event) {
	if r.port == nil {
		return
	}

	var err error

	switch e.Kind {
	case EventAddress:
		r.bank = 0
		if e.Data&bankSelect == bankSelect {
			r.bank = 1
		}

		switch {
		case !r.mode.Dual():
			err = r.pulse(uint8(e.Data), ctlAddress)
			r.delay(addressDelay)
		case r.bank == 0:
			err = r.pulse(uint8(e.Data), ctlAddress)
		default:
			err = r.pulse(uint8(e.Data), ctlAddressBank1)
		}

	case EventRegister:
		switch {
		case !r.mode.Dual():
			err = r.pulse(uint8(e.Data), ctlRegister)
			r.delay(registerDelay)
		case r.bank == 0:
			err = r.pulse(uint8(e.Data), ctlRegister)
		default:
			err = r.pulse(uint8(e.Data), ctlRegisterBank1)
		}
	}

	if err != nil {
		r.logf("cannot write to parallel port: %v", err)
		r.release()
	}
}

// reset writes zero to every register of the chip. must only be called by
// the worker goroutine.
func (r *Relay) reset() {
	if r.port == nil {
		return
	}

	r.logf("reset %s chip", r.mode)
	for _, w := range opl.ResetSequence(r.mode) {
		a := Event{Kind: EventAddress, Data: uint16(w.Register)}
		if w.Bank == 1 {
			a.Data |= bankSelect
		}
		r.execute(a)
		r.execute(Event{Kind: EventRegister, Data: uint16(w.Value)})
	}
}
