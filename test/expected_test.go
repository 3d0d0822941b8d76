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

package test_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jetsetilly/oplrelay/test"
)

func TestExpectations(t *testing.T) {
	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("no credits"))

	var err error
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nil)
	test.ExpectSuccess(t, true)

	test.ExpectEquality(t, uint8(0xbd), 0xbd)
	test.ExpectEquality(t, "opl3", "opl"+"3")
	test.ExpectInequality(t, uint16(0x1bd), 0xbd)
}

func TestTiming(t *testing.T) {
	test.ExpectCompletion(t, time.Second, func() {})

	release := make(chan struct{})
	done := test.ExpectBlocked(t, 10*time.Millisecond, func() {
		<-release
	})
	close(release)
	test.ExpectClosed(t, time.Second, done)

	var n atomic.Int32
	go func() {
		for range 5 {
			n.Add(1)
		}
	}()
	test.ExpectEventually(t, time.Second, func() bool {
		return n.Load() == 5
	})
}

func TestCompareWriter(t *testing.T) {
	tw := &test.CompareWriter{}
	test.ExpectSuccess(t, tw.Compare(""))

	tw.Write([]byte("opl2lpt: "))
	tw.Write([]byte("reset"))
	test.ExpectSuccess(t, tw.Compare("opl2lpt: reset"))
	test.ExpectFailure(t, tw.Compare("opl3lpt: reset"))

	tw.Clear()
	test.ExpectSuccess(t, tw.Compare(""))
}
