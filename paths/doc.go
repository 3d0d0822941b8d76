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

// Package paths contains functions to prepare paths to oplrelay resources.
//
// The ResourcePath() function returns the supplied resource prepended with the
// appropriate config directory. For example, the following returns the path to
// the preferences file.
//
//	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
//
// If a directory named ".oplrelay" is present in the current directory then
// that is the base path. Otherwise the oplrelay directory in the user's config
// directory is used (see os.UserConfigDir()). On a modern Linux system the
// example above returns:
//
//	/home/user/.config/oplrelay/preferences
//
// The directory containing the resource is created if it does not exist.
package paths
