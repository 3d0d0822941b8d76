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

package ppdev_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/oplrelay/platform/ppdev"
	"github.com/jetsetilly/oplrelay/test"
)

func TestPorts(t *testing.T) {
	ports, err := ppdev.Ports()
	test.ExpectSuccess(t, err)
	for _, p := range ports {
		ok, _ := filepath.Match("/dev/parport*", p)
		test.ExpectEquality(t, ok, true)
	}
}

func TestOpenMissingPort(t *testing.T) {
	_, err := ppdev.Open(filepath.Join(t.TempDir(), "parport0"))
	test.ExpectFailure(t, err)
}

func TestOrder(t *testing.T) {
	names := []string{
		"/dev/parport10",
		"/dev/parport2",
		"/dev/parport",
		"/dev/parport0",
		"/dev/parport1",
	}
	ppdev.Order(names)
	test.ExpectEquality(t, strings.Join(names, " "),
		"/dev/parport0 /dev/parport1 /dev/parport2 /dev/parport10 /dev/parport")
}
