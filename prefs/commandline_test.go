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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/oplrelay/prefs"
	"github.com/jetsetilly/oplrelay/test"
)

func TestCommandLineStackValues(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// single value
	prefs.PushCommandLineStack("relay.device::/dev/ttyUSB0")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "relay.device::/dev/ttyUSB0")

	// surrounding space is trimmed
	prefs.PushCommandLineStack("   relay.mode:: OPL3 ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "relay.mode::OPL3")

	// remaining values are sorted
	prefs.PushCommandLineStack("relay.mode::OPL2; relay.backend::LPT")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "relay.backend::LPT; relay.mode::OPL2")

	// invalid prefs string
	prefs.PushCommandLineStack("relay.mode_OPL2")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// partially invalid prefs string
	prefs.PushCommandLineStack("relay.mode_OPL2;relay.backend::LPT")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "relay.backend::LPT")

	// values are removed once they have been retrieved
	prefs.PushCommandLineStack("relay.mode::OPL2;relay.backend::LPT")
	ok, v := prefs.GetCommandLinePref("relay.mode")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "OPL2")
	ok, _ = prefs.GetCommandLinePref("relay.device")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "relay.backend::LPT")
}

func TestCommandLineStack(t *testing.T) {
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)

	prefs.PushCommandLineStack("relay.mode::OPL2")
	prefs.PushCommandLineStack("relay.backend::LPT")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 2)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "relay.backend::LPT")

	// first group still exists
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "relay.mode::OPL2")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}
