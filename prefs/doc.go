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

// Package prefs facilitates the storage of preference values on disk. Values
// are added to a Disk instance with a key and are saved to and loaded from a
// single text file. Each line of the file is a key/value pair separated by
// " :: ".
//
// Values can also be supplied on the command line as a prefs string (see
// PushCommandLineStack()). Command line values take priority over the values
// stored on disk and are consumed as they are applied.
package prefs
