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

//go:build linux

package ppdev

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl requests from linux/ppdev.h
const (
	ppwcontrol = 0x40017084 // _IOW('p', 0x84, unsigned char)
	ppwdata    = 0x40017086 // _IOW('p', 0x86, unsigned char)
	ppclaim    = 0x0000708b // _IO('p', 0x8b)
	pprelease  = 0x0000708c // _IO('p', 0x8c)
	ppexcl     = 0x0000708f // _IO('p', 0x8f)
)

// Port is an open and claimed parallel port.
type Port struct {
	name string
	fd   int
}

// Open and exclusively claim the named parallel port.
func Open(name string) (*Port, error) {
	fd, err := unix.Open(name, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("ppdev: %s: %w", name, err)
	}

	p := &Port{name: name, fd: fd}

	// exclusive access must be requested before the port is claimed
	if err := p.ioctl(ppexcl, 0); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("ppdev: %s: exclusive: %w", name, err)
	}
	if err := p.ioctl(ppclaim, 0); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("ppdev: %s: claim: %w", name, err)
	}

	return p, nil
}

func (p *Port) String() string {
	return p.name
}

func (p *Port) ioctl(req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(p.fd), req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

// ioctl with a pointer to a single byte argument. the pointer conversion must
// happen in the call to Syscall()
func (p *Port) ioctlByte(req uintptr, v *uint8) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(p.fd), req, uintptr(unsafe.Pointer(v)))
	if errno != 0 {
		return errno
	}
	return nil
}

// WriteData sets the data lines.
func (p *Port) WriteData(data uint8) error {
	return p.ioctlByte(ppwdata, &data)
}

// WriteControl sets the control register. The value is written to the
// register as is. Callers must account for the lines that are inverted by the
// hardware.
func (p *Port) WriteControl(ctl uint8) error {
	return p.ioctlByte(ppwcontrol, &ctl)
}

// Close releases the port and closes the device.
func (p *Port) Close() error {
	if p.fd < 0 {
		return nil
	}
	rerr := p.ioctl(pprelease, 0)
	cerr := unix.Close(p.fd)
	p.fd = -1
	if rerr != nil {
		return fmt.Errorf("ppdev: %s: release: %w", p.name, rerr)
	}
	if cerr != nil {
		return fmt.Errorf("ppdev: %s: %w", p.name, cerr)
	}
	return nil
}
