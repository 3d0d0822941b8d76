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

// Package preferences contains the preferences of the hardware relay. The
// values are stored in the global preferences file.
package preferences

import (
	"github.com/jetsetilly/oplrelay/curated"
	"github.com/jetsetilly/oplrelay/hardware/opl"
	"github.com/jetsetilly/oplrelay/paths"
	"github.com/jetsetilly/oplrelay/prefs"
)

// RelayPreferences defines the preference values used to configure the
// hardware relay.
type RelayPreferences struct {
	dsk *prefs.Disk

	// the relay backend. either SERIAL or LPT
	Backend prefs.String

	// the device name. the empty string means that the parallel port will be
	// chosen automatically. a serial device must always be named
	Device prefs.String

	// addressing mode of the chip. either OPL2 or OPL3
	Mode prefs.String
}

func (p *RelayPreferences) String() string {
	return p.dsk.String()
}

// NewRelayPreferences is the preferred method of initialisation for the
// RelayPreferences type. Preferences are loaded from the default preferences
// file.
func NewRelayPreferences() (*RelayPreferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newRelayPreferences(pth)
}

// NewRelayPreferencesFromFile is the same as NewRelayPreferences() except that
// the preferences file is specified.
func NewRelayPreferencesFromFile(pth string) (*RelayPreferences, error) {
	return newRelayPreferences(pth)
}

func newRelayPreferences(pth string) (*RelayPreferences, error) {
	p := &RelayPreferences{}

	p.Mode.SetHookPre(func(v prefs.Value) error {
		_, err := opl.ParseMode(v.(string))
		return err
	})

	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("relay.backend", &p.Backend)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("relay.device", &p.Device)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("relay.mode", &p.Mode)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(false)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *RelayPreferences) SetDefaults() {
	p.Backend.Set("LPT")
	p.Device.Set("")
	p.Mode.Set("OPL2")
}

// ChipMode returns the Mode preference as an opl.Mode value.
func (p *RelayPreferences) ChipMode() opl.Mode {
	// the hook on the Mode preference means that the value can always be
	// parsed
	m, _ := opl.ParseMode(p.Mode.String())
	return m
}

// Load relay preferences from disk.
func (p *RelayPreferences) Load() error {
	return p.dsk.Load(false)
}

// Save current relay preferences to disk.
func (p *RelayPreferences) Save() error {
	return p.dsk.Save()
}
