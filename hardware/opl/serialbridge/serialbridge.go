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

package serialbridge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/oplrelay/curated"
	"github.com/jetsetilly/oplrelay/hardware/opl"
	"github.com/jetsetilly/oplrelay/logger"
	"github.com/jetsetilly/oplrelay/platform/serialport"
)

const logTag = "opl2arduino"

// protocol strings
const (
	greeting    = "HLO!\n"
	bufferQuery = "B0F?\n"
	ack         = 'k'
)

// Dialer opens the named transport.
type Dialer func(name string) (io.ReadWriteCloser, error)

func dialSerial(name string) (io.ReadWriteCloser, error) {
	return serialport.Open(name, serialport.DefaultBaud)
}

// default timeouts. both can be changed with the relevant Option
const (
	// includes the time taken by the board's bootloader after it has been
	// reset by the opening of the serial port
	DefaultHandshakeTimeout = 5 * time.Second

	// maximum time taken by Destroy() to send the reset sequence
	DefaultShutdownTimeout = 2 * time.Second
)

// Option functions are passed to NewRelay().
type Option func(r *Relay)

// WithDialer replaces the function used to open the transport. By default the
// named serial device is opened with the serialport package.
func WithDialer(d Dialer) Option {
	return func(r *Relay) {
		r.dial = d
	}
}

// WithHandshakeTimeout sets the time allowed for the handshake to complete.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(r *Relay) {
		r.handshakeTimeout = d
	}
}

// WithShutdownTimeout sets the time allowed for the reset sequence to be sent
// by Destroy().
func WithShutdownTimeout(d time.Duration) Option {
	return func(r *Relay) {
		r.shutdownTimeout = d
	}
}

// Relay implements the opl.ChipWriteSink interface for the OPL2 bridge
// firmware.
//
// All ChipWriteSink functions must be called from the same goroutine.
type Relay struct {
	name string
	dial Dialer

	handshakeTimeout time.Duration
	shutdownTimeout  time.Duration

	// the transport is nil if the relay has not been initialised or if it has
	// been destroyed
	port io.ReadWriteCloser

	// writes are discarded if the relay is not enabled
	enabled atomic.Bool

	// capacity is the number of frames the firmware can buffer. the credits
	// channel has a buffer of the same size and contains one entry for every
	// available credit
	capacity int
	credits  chan struct{}

	// closed when the ack listener has ended
	listenerDone chan struct{}

	// the register index latched by WriteAddr()
	index uint8

	frame [2]byte
}

// NewRelay is the preferred method of initialisation for the Relay type. The
// name is the name of the serial device. The relay is not usable until Init()
// has been called.
func NewRelay(name string, opts ...Option) *Relay {
	r := &Relay{
		name:             name,
		dial:             dialSerial,
		handshakeTimeout: DefaultHandshakeTimeout,
		shutdownTimeout:  DefaultShutdownTimeout,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Relay) String() string {
	if !r.Enabled() {
		return fmt.Sprintf("%s: disabled", r.name)
	}
	return fmt.Sprintf("%s: %d/%d credits", r.name, r.Credits(), r.capacity)
}

// Enabled returns true if the relay has a working link to the firmware.
func (r *Relay) Enabled() bool {
	return r.enabled.Load()
}

// Capacity returns the number of frames the firmware can buffer. Returns zero
// if the relay has never been enabled.
func (r *Relay) Capacity() int {
	return r.capacity
}

// Credits returns the number of frames that can be sent without waiting for an
// acknowledgement.
func (r *Relay) Credits() int {
	return len(r.credits)
}

// Init implements the opl.ChipWriteSink interface. The sample rate is not used.
func (r *Relay) Init(_ int) {
	if r.port != nil {
		logger.Log(logger.Allow, logTag, "relay already initialised")
		return
	}

	if r.name == "" {
		logger.Log(logger.Allow, logTag, curated.Errorf(opl.ConfigurationError, "no serial device specified"))
		return
	}

	port, err := r.dial(r.name)
	if err != nil {
		logger.Log(logger.Allow, logTag, curated.Errorf(opl.TransportOpenError, err))
		return
	}

	capacity, err := r.handshake(port)
	if err != nil {
		port.Close()
		logger.Log(logger.Allow, logTag, err)
		return
	}

	r.port = port
	r.capacity = capacity
	r.credits = make(chan struct{}, capacity)
	for range capacity {
		r.credits <- struct{}{}
	}
	r.listenerDone = make(chan struct{})
	r.index = 0
	r.enabled.Store(true)

	go r.listen()

	logger.Logf(logger.Allow, logTag, "buffer is %d commands", capacity)
}

// handshake with the firmware and return the number of frames it can buffer.
// the transport is closed if the handshake does not complete in time, which
// will cause any pending read to fail
func (r *Relay) handshake(port io.ReadWriteCloser) (int, error) {
	timeout := time.AfterFunc(r.handshakeTimeout, func() {
		port.Close()
	})

	capacity, err := negotiate(port)

	if !timeout.Stop() {
		return 0, curated.Errorf(opl.ProtocolError, fmt.Sprintf("handshake timed out after %s", r.handshakeTimeout))
	}

	return capacity, err
}

// negotiate reads the greeting and queries the size of the firmware buffer.
func negotiate(port io.ReadWriter) (int, error) {
	var hlo [len(greeting)]byte
	if _, err := io.ReadFull(port, hlo[:]); err != nil {
		return 0, curated.Errorf(opl.ProtocolError, fmt.Errorf("short read of greeting: %w", err))
	}
	if string(hlo[:]) != greeting {
		return 0, curated.Errorf(opl.ProtocolError, fmt.Sprintf("expected %q, got %q", greeting, hlo[:]))
	}

	if _, err := io.WriteString(port, bufferQuery); err != nil {
		return 0, curated.Errorf(opl.ProtocolError, fmt.Errorf("buffer query: %w", err))
	}

	var size int
	var digit [1]byte
	for {
		if _, err := io.ReadFull(port, digit[:]); err != nil {
			return 0, curated.Errorf(opl.ProtocolError, fmt.Errorf("short read of buffer size: %w", err))
		}
		if digit[0] == '\n' {
			break // for loop
		}
		if digit[0] < '0' || digit[0] > '9' {
			return 0, curated.Errorf(opl.ProtocolError, fmt.Sprintf("cannot read buffer size (got 0x%02x)", digit[0]))
		}
		size = size*10 + int(digit[0]-'0')
		if size > 0xffff {
			return 0, curated.Errorf(opl.ProtocolError, "buffer size is too large")
		}
	}

	// two bytes per frame
	capacity := size / 2
	if capacity == 0 {
		return 0, curated.Errorf(opl.ProtocolError, fmt.Sprintf("buffer of %d bytes is too small", size))
	}

	return capacity, nil
}

// listen for acknowledgements from the firmware. runs in its own goroutine
// until the transport is closed.
func (r *Relay) listen() {
	defer close(r.listenerDone)

	var b [1]byte
	for {
		n, err := r.port.Read(b[:])
		if n == 1 {
			if b[0] == ack {
				r.release()
			} else {
				logger.Log(logger.Allow, logTag, curated.Errorf(opl.ProtocolError, fmt.Sprintf("expected ack, got 0x%02x", b[0])))
			}
		}

		if err != nil {
			if !(errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe)) {
				logger.Logf(logger.Allow, logTag, "cannot get ack: %v", err)
			}
			logger.Log(logger.Allow, logTag, "end of ack listener")
			return
		}
	}
}

// return a credit to the pool. an acknowledgement that would take the number
// of credits beyond the capacity of the firmware is ignored
func (r *Relay) release() {
	select {
	case r.credits <- struct{}{}:
	default:
		logger.Log(logger.Allow, logTag, curated.Errorf(opl.ProtocolError, "unexpected ack"))
	}
}

// take a credit from the pool, waiting if necessary. returns false if no
// credit could be taken because the ack listener has ended or because the
// deadline channel has fired. a nil deadline waits forever.
func (r *Relay) acquire(deadline <-chan time.Time) bool {
	select {
	case <-r.credits:
		return true
	default:
	}

	logger.Log(logger.Allow, logTag, "too slow, consider increasing buffer")

	select {
	case <-r.credits:
		return true
	case <-r.listenerDone:
		logger.Log(logger.Allow, logTag, "no ack listener, disabling relay")
		r.enabled.Store(false)
		return false
	case <-deadline:
		return false
	}
}

// send a frame to the firmware
func (r *Relay) send(register uint8, value uint8, deadline <-chan time.Time) bool {
	if !r.acquire(deadline) {
		return false
	}

	r.frame[0] = register
	r.frame[1] = value
	if _, err := r.port.Write(r.frame[:]); err != nil {
		logger.Logf(logger.Allow, logTag, "cannot write command: %v", err)
		r.enabled.Store(false)
		return false
	}

	return true
}

// WriteAddr implements the opl.ChipWriteSink interface. The firmware drives a
// single OPL2 chip so the port argument is ignored.
func (r *Relay) WriteAddr(_ uint32, value uint8) uint32 {
	r.index = value
	return uint32(value)
}

// WriteReg implements the opl.ChipWriteSink interface. A frame is sent for
// every call, even if the register and value are the same as the previous
// call.
func (r *Relay) WriteReg(_ uint32, value uint8) {
	if !r.Enabled() {
		return
	}
	r.send(r.index, value, nil)
}

// Generate implements the opl.ChipWriteSink interface.
func (r *Relay) Generate(channel opl.AudioChannel, _ int) {
	if channel != nil {
		channel.Enable(false)
	}
}

// Destroy implements the opl.ChipWriteSink interface. The reset sequence is
// sent to the firmware before the transport is closed. The reset is abandoned
// if it takes longer than the shutdown timeout.
func (r *Relay) Destroy() {
	if r.port == nil {
		return
	}

	if r.Enabled() {
		logger.Log(logger.Allow, logTag, "reset OPL2 chip")

		deadline := time.NewTimer(r.shutdownTimeout)
		for _, w := range opl.ResetSequence(opl.ModeOPL2) {
			if !r.send(w.Register, w.Value, deadline.C) {
				logger.Log(logger.Allow, logTag, "reset abandoned")
				break // for loop
			}
		}
		deadline.Stop()
	}

	r.enabled.Store(false)
	if err := r.port.Close(); err != nil {
		logger.Logf(logger.Allow, logTag, "cannot close serial port: %v", err)
	}
	<-r.listenerDone
	r.port = nil

	// if the final credit value is different to the capacity then some
	// acknowledgements have been lost
	logger.Logf(logger.Allow, logTag, "last credit value is %d", len(r.credits))
}
