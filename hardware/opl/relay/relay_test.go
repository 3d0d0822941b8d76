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

package relay_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/oplrelay/curated"
	"github.com/jetsetilly/oplrelay/hardware/opl"
	"github.com/jetsetilly/oplrelay/hardware/opl/lpt"
	"github.com/jetsetilly/oplrelay/hardware/opl/relay"
	"github.com/jetsetilly/oplrelay/hardware/opl/serialbridge"
	"github.com/jetsetilly/oplrelay/hardware/preferences"
	"github.com/jetsetilly/oplrelay/prefs"
	"github.com/jetsetilly/oplrelay/test"
)

func TestParseBackend(t *testing.T) {
	b, err := relay.ParseBackend("arduino")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, relay.BackendSerial)

	b, err = relay.ParseBackend("Parallel")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, relay.BackendParallel)
	test.ExpectEquality(t, b.String(), "LPT")

	_, err = relay.ParseBackend("usb")
	test.ExpectEquality(t, curated.Is(err, opl.ConfigurationError), true)
}

func TestNewSink(t *testing.T) {
	s, err := relay.NewSink(relay.BackendSerial, "/dev/ttyUSB0", opl.ModeOPL2, relay.Options{})
	test.ExpectSuccess(t, err)
	_, ok := s.(*serialbridge.Relay)
	test.ExpectEquality(t, ok, true)

	s, err = relay.NewSink(relay.BackendParallel, "", opl.ModeOPL3, relay.Options{})
	test.ExpectSuccess(t, err)
	_, ok = s.(*lpt.Relay)
	test.ExpectEquality(t, ok, true)

	_, err = relay.NewSink(relay.Backend(99), "", opl.ModeOPL2, relay.Options{})
	test.ExpectEquality(t, curated.Is(err, opl.ConfigurationError), true)
}

func TestFromPreferences(t *testing.T) {
	p, err := preferences.NewRelayPreferencesFromFile(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, p.Backend.Set("ARDUINO"))
	s, err := relay.FromPreferences(p, relay.Options{})
	test.ExpectSuccess(t, err)
	_, ok := s.(*serialbridge.Relay)
	test.ExpectEquality(t, ok, true)

	test.ExpectSuccess(t, p.Backend.Set("floppy"))
	_, err = relay.FromPreferences(p, relay.Options{})
	test.ExpectFailure(t, err)
}
