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

package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/oplrelay/paths"
	"github.com/jetsetilly/oplrelay/test"
)

func TestLocalPaths(t *testing.T) {
	// the local base directory takes priority when it exists in the
	// current directory
	t.Chdir(t.TempDir())
	test.ExpectSuccess(t, os.Mkdir(".oplrelay", 0o700))

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".oplrelay", "foo", "bar", "baz"))

	// the sub-path has been created
	fi, err := os.Stat(filepath.Join(".oplrelay", "foo", "bar"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fi.IsDir(), true)

	pth, err = paths.ResourcePath("", "preferences")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".oplrelay", "preferences"))

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".oplrelay")
}

func TestConfigPaths(t *testing.T) {
	t.Chdir(t.TempDir())
	cnf := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cnf)
	t.Setenv("HOME", cnf)

	base, err := os.UserConfigDir()
	test.ExpectSuccess(t, err)

	pth, err := paths.ResourcePath("", "preferences")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(base, "oplrelay", "preferences"))
}
