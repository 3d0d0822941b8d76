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

package ppdev

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Unsupported is returned by Open() on platforms without ppdev.
const Unsupported = "ppdev: not supported on this platform (%s)"

const portPattern = "/dev/parport*"

// Ports returns the names of the parallel port devices in discovery order.
func Ports() ([]string, error) {
	m, err := filepath.Glob(portPattern)
	if err != nil {
		return nil, fmt.Errorf("ppdev: %w", err)
	}
	order(m)
	return m, nil
}

// the number at the end of a device name. returns false if there is no number
func portNumber(name string) (int, bool) {
	d := strings.TrimRight(name, "0123456789")
	n, err := strconv.Atoi(name[len(d):])
	return n, err == nil
}

// sort device names by their number so that parport10 follows parport9.
// names without a number are placed last in lexical order
func order(names []string) {
	slices.SortFunc(names, func(a, b string) int {
		na, oka := portNumber(a)
		nb, okb := portNumber(b)
		switch {
		case oka && okb:
			if c := cmp.Compare(na, nb); c != 0 {
				return c
			}
		case oka:
			return -1
		case okb:
			return 1
		}
		return strings.Compare(a, b)
	})
}
