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

package serialbridge_test

import (
	"io"
	"sync"
)

// device emulates the bridge firmware at the other end of the transport. the
// relay reads from the device through a pipe and writes to the device with
// the Write() function.
type device struct {
	crit sync.Mutex

	// the reply to the buffer query
	sizeReply string

	// acknowledge every frame as soon as it is received
	autoAck bool

	// bytes written by the relay after the handshake
	written []byte

	// the relay end of the pipe and the device end of the pipe
	relayR  *io.PipeReader
	deviceW *io.PipeWriter

	closed bool
}

func newDevice(hello string, sizeReply string, autoAck bool) *device {
	d := &device{
		sizeReply: sizeReply,
		autoAck:   autoAck,
	}
	d.relayR, d.deviceW = io.Pipe()

	go d.deviceW.Write([]byte(hello))

	return d
}

func (d *device) dial(_ string) (io.ReadWriteCloser, error) {
	return d, nil
}

func (d *device) Read(p []byte) (int, error) {
	return d.relayR.Read(p)
}

func (d *device) Write(p []byte) (int, error) {
	d.crit.Lock()
	defer d.crit.Unlock()

	if d.closed {
		return 0, io.ErrClosedPipe
	}

	if string(p) == "B0F?\n" {
		go d.deviceW.Write([]byte(d.sizeReply))
		return len(p), nil
	}

	d.written = append(d.written, p...)
	if d.autoAck {
		for i := 0; i < len(p)/2; i++ {
			go d.deviceW.Write([]byte{'k'})
		}
	}

	return len(p), nil
}

// Close is called by the relay.
func (d *device) Close() error {
	d.crit.Lock()
	defer d.crit.Unlock()
	d.closed = true
	return d.relayR.Close()
}

// disconnect the device from the relay. the relay will see the end of the
// stream
func (d *device) disconnect() {
	d.deviceW.Close()
}

// send acknowledgements to the relay. blocks until they have been read.
func (d *device) ack(n int) {
	for range n {
		d.deviceW.Write([]byte{'k'})
	}
}

func (d *device) frames() [][2]byte {
	d.crit.Lock()
	defer d.crit.Unlock()

	f := make([][2]byte, 0, len(d.written)/2)
	for i := 0; i+1 < len(d.written); i += 2 {
		f = append(f, [2]byte{d.written[i], d.written[i+1]})
	}
	return f
}

func (d *device) numFrames() int {
	d.crit.Lock()
	defer d.crit.Unlock()
	return len(d.written) / 2
}
