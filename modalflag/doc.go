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

// Package modalflag wraps the flag package in the standard library and adds
// program modes. A mode is a command line argument that selects a different
// mode of operation, each with its own set of flags. For example, the oplrelay
// command has PLAY, RESET and PROBE modes.
//
// Arguments are supplied once with NewArgs() and then parsed one layer at a
// time with Parse(). Flags for the current layer are added with the Add*()
// functions and the modes available at the current layer with AddSubModes().
// The first sub-mode is the default and is selected when the first non-flag
// argument does not name a mode.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("PLAY", "RESET", "PROBE")
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "PLAY":
//		md.NewMode()
//		device := md.AddString("device", "", "device name")
//		...
//	}
//
// Mode comparisons are case insensitive. Mode names are always reported in
// upper case.
package modalflag
