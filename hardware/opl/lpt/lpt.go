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
	"fmt"
	"sync"
	"time"

	"github.com/jetsetilly/oplrelay/hardware/opl"
	"github.com/jetsetilly/oplrelay/logger"
)

// the queue is unbounded. a log entry is made every time the length of the
// queue reaches this value
const highWaterMark = 16384

// Option functions are passed to NewRelay().
type Option func(r *Relay)

// WithPlatform replaces the means of finding and opening parallel ports. By
// default the ppdev driver is used.
func WithPlatform(p Platform) Option {
	return func(r *Relay) {
		r.platform = p
	}
}

// WithDelay replaces the function used by the worker to wait for the chip to
// settle after a write. By default the worker busy waits.
func WithDelay(f func(time.Duration)) Option {
	return func(r *Relay) {
		r.delay = f
	}
}

// Relay implements the opl.ChipWriteSink interface for parallel port
// adaptors.
type Relay struct {
	name     string
	mode     opl.Mode
	tag      string
	platform Platform
	delay    func(time.Duration)

	// the queue is shared by the producer and the worker
	crit      sync.Mutex
	cond      *sync.Cond
	queue     []Event
	highWater bool

	// the queue is closed after Destroy(). events pushed to a closed queue
	// are discarded
	closed bool

	// closed by the worker when it has finished. nil if Init() has not been
	// called
	done chan struct{}

	// the port and the latched bank are only accessed by the worker
	port Port
	bank opl.Bank
}

// NewRelay is the preferred method of initialisation for the Relay type. The
// name is the name of the parallel port device. If the name is empty the first
// port that can be claimed is used.
func NewRelay(name string, mode opl.Mode, opts ...Option) *Relay {
	r := &Relay{
		name:     name,
		mode:     mode,
		tag:      "opl2lpt",
		platform: ppdevPlatform{},
		delay:    spin,
	}
	if mode.Dual() {
		r.tag = "opl3lpt"
	}
	r.cond = sync.NewCond(&r.crit)
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Relay) String() string {
	r.crit.Lock()
	defer r.crit.Unlock()
	return fmt.Sprintf("%s: %d queued", r.tag, len(r.queue))
}

func (r *Relay) logf(detail string, args ...any) {
	logger.Logf(logger.Allow, r.tag, detail, args...)
}

// Init implements the opl.ChipWriteSink interface. The sample rate is not used.
func (r *Relay) Init(_ int) {
	r.crit.Lock()
	closed := r.closed
	started := r.done != nil
	if !closed && !started {
		r.done = make(chan struct{})
		go r.worker()
	}
	r.crit.Unlock()

	switch {
	case closed:
		r.logf("relay has been destroyed")
	case started:
		r.logf("relay already initialised")
	}
}

func (r *Relay) push(e Event) {
	r.crit.Lock()

	if r.closed {
		r.crit.Unlock()
		return
	}

	r.queue = append(r.queue, e)
	n := len(r.queue)
	crossed := n >= highWaterMark && !r.highWater
	if crossed {
		r.highWater = true
	}

	r.cond.Signal()
	r.crit.Unlock()

	if crossed {
		r.logf("queue has reached %d events", n)
	}
}

// WriteAddr implements the opl.ChipWriteSink interface. The bank selected by
// the port argument is ignored if the relay is not in a dual bank mode.
func (r *Relay) WriteAddr(port uint32, value uint8) uint32 {
	e := Event{Kind: EventAddress, Data: uint16(value)}
	if r.mode.Dual() && opl.BankFromPort(port) == 1 {
		e.Data |= bankSelect
	}
	r.push(e)
	return uint32(value)
}

// WriteReg implements the opl.ChipWriteSink interface. The value is written to
// the register and bank latched by the most recent call to WriteAddr().
func (r *Relay) WriteReg(_ uint32, value uint8) {
	r.push(Event{Kind: EventRegister, Data: uint16(value)})
}

// Generate implements the opl.ChipWriteSink interface.
func (r *Relay) Generate(channel opl.AudioChannel, _ int) {
	if channel != nil {
		channel.Enable(false)
	}
}

// Destroy implements the opl.ChipWriteSink interface. Events already in the
// queue are executed before the chip is reset and the port is released.
//
// Destroy always waits for the worker to finish, including when it is called
// more than once. A relay cannot be initialised again once it has been
// destroyed.
func (r *Relay) Destroy() {
	r.crit.Lock()
	if !r.closed {
		r.queue = append(r.queue, Event{Kind: EventQuit})
		r.closed = true
		r.cond.Signal()
	}
	done := r.done
	r.crit.Unlock()

	if done != nil {
		<-done
	}
}

// the worker goroutine claims the port and then executes events in the order
// they were queued until a quit event is found
func (r *Relay) worker() {
	defer close(r.done)

	r.claim()
	r.reset()

	var batch []Event
	for {
		r.crit.Lock()
		for len(r.queue) == 0 {
			r.cond.Wait()
		}
		batch, r.queue = r.queue, batch[:0]
		r.highWater = false
		r.crit.Unlock()

		for _, e := range batch {
			if e.Kind == EventQuit {
				r.reset()
				r.release()
				return
			}
			r.execute(e)
		}
	}
}

// claim the configured port or, if no port has been configured, the first port
// that can be claimed
func (r *Relay) claim() {
	names, err := r.platform.Ports()
	if err != nil {
		r.logf("cannot find parallel ports: %v", err)
		return
	}

	for _, n := range names {
		if r.name != "" && r.name != n {
			continue
		}
		p, err := r.platform.Open(n)
		if err != nil {
			r.logf("cannot claim parallel port %s: %v", n, err)
			continue
		}
		r.port = p
		r.logf("found parallel port %s", n)
		return
	}

	if r.name == "" {
		r.logf("cannot find a parallel port")
	} else {
		r.logf("cannot find parallel port %s", r.name)
	}
}

// release the port. any subsequent events are discarded
func (r *Relay) release() {
	if r.port == nil {
		return
	}
	if err := r.port.Close(); err != nil {
		r.logf("cannot release parallel port: %v", err)
	}
	r.port = nil
}
