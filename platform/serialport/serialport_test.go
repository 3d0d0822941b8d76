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

package serialport_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/oplrelay/platform/serialport"
	"github.com/jetsetilly/oplrelay/test"
)

func TestOpenMissingDevice(t *testing.T) {
	_, err := serialport.Open(filepath.Join(t.TempDir(), "ttyUSB0"), serialport.DefaultBaud)
	test.ExpectFailure(t, err)
}

func TestCandidates(t *testing.T) {
	// we can't know what devices are present on the test machine but every
	// candidate must match one of the patterns
	for _, c := range serialport.Candidates() {
		usb, _ := filepath.Match("/dev/ttyUSB*", c)
		acm, _ := filepath.Match("/dev/ttyACM*", c)
		test.ExpectEquality(t, usb || acm, true)
	}
}
