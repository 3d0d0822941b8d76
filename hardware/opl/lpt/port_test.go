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

package lpt_test

import (
	"errors"
	"sync"
	"time"

	"github.com/jetsetilly/oplrelay/hardware/opl/lpt"
)

// write to the parallel port as recorded by the test port
type write struct {
	control bool
	value   uint8
}

// pulse is a decoded write to the chip. the control value is the register
// value before and after the nINIT pulse
type pulse struct {
	data    uint8
	control uint8
}

// port records every write. if the gate is not nil then writes block until the
// gate is closed
type port struct {
	crit   sync.Mutex
	name   string
	writes []write
	closed bool
	gate   chan struct{}
}

func (p *port) wait() {
	if p.gate != nil {
		<-p.gate
	}
}

func (p *port) WriteData(data uint8) error {
	p.wait()
	p.crit.Lock()
	defer p.crit.Unlock()
	p.writes = append(p.writes, write{value: data})
	return nil
}

func (p *port) WriteControl(ctl uint8) error {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.writes = append(p.writes, write{control: true, value: ctl})
	return nil
}

func (p *port) Close() error {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.closed = true
	return nil
}

func (p *port) isClosed() bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.closed
}

// decode writes into pulses. returns false if the writes are not in the
// expected pattern of one data write followed by three control writes, with
// the nINIT line toggled by the second control write
func (p *port) pulses() ([]pulse, bool) {
	p.crit.Lock()
	defer p.crit.Unlock()

	if len(p.writes)%4 != 0 {
		return nil, false
	}

	var pls []pulse
	for i := 0; i < len(p.writes); i += 4 {
		w := p.writes[i : i+4]
		if w[0].control || !w[1].control || !w[2].control || !w[3].control {
			return nil, false
		}
		if w[1].value != w[3].value || w[1].value^w[2].value != 0x04 {
			return nil, false
		}
		pls = append(pls, pulse{data: w[0].value, control: w[1].value})
	}
	return pls, true
}

// platform provides test ports to the relay
type platform struct {
	ports  []*port
	failed map[string]bool
	opened []string
}

func (pl *platform) Ports() ([]string, error) {
	var n []string
	for _, p := range pl.ports {
		n = append(n, p.name)
	}
	return n, nil
}

func (pl *platform) Open(name string) (lpt.Port, error) {
	pl.opened = append(pl.opened, name)
	if pl.failed[name] {
		return nil, errors.New("device busy")
	}
	for _, p := range pl.ports {
		if p.name == name {
			return p, nil
		}
	}
	return nil, errors.New("no such device")
}

// delays records every settle delay requested by the worker
type delays struct {
	crit sync.Mutex
	d    []time.Duration
}

func (d *delays) delay(t time.Duration) {
	d.crit.Lock()
	defer d.crit.Unlock()
	d.d = append(d.d, t)
}

func (d *delays) get() []time.Duration {
	d.crit.Lock()
	defer d.crit.Unlock()
	return append([]time.Duration(nil), d.d...)
}
