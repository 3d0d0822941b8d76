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

package test

import (
	"testing"
	"time"
)

// polling interval used by ExpectEventually().
const poll = time.Millisecond

// ExpectCompletion runs fn in a new goroutine and fails the test if it has not
// returned before the timeout.
func ExpectCompletion(t *testing.T, timeout time.Duration, fn func()) bool {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	return ExpectClosed(t, timeout, done)
}

// ExpectBlocked runs fn in a new goroutine and fails the test if it returns
// before the interval has elapsed. The returned channel is closed when fn
// eventually returns.
func ExpectBlocked(t *testing.T, interval time.Duration, fn func()) <-chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
		t.Errorf("blocking test failed: function returned within %v", interval)
	case <-time.After(interval):
	}
	return done
}

// ExpectClosed fails the test if the channel is not closed before the timeout.
func ExpectClosed(t *testing.T, timeout time.Duration, done <-chan struct{}) bool {
	t.Helper()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		t.Errorf("completion test failed: nothing returned after %v", timeout)
		return false
	}
}

// ExpectEventually polls cond until it returns true. The test fails if that
// does not happen before the timeout.
func ExpectEventually(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Errorf("eventual test failed: condition not met after %v", timeout)
			return false
		}
		time.Sleep(poll)
	}
	return true
}
