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

package curated_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/jetsetilly/oplrelay/curated"
	"github.com/jetsetilly/oplrelay/test"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := curated.Errorf(testError, e)
	test.ExpectEquality(t, f.Error(), "test error: foo")

	// the duplicate can appear anywhere in the chain
	g := curated.Errorf("relay: %v", curated.Errorf("relay: %v", io.EOF))
	test.ExpectEquality(t, g.Error(), "relay: EOF")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectSuccess(t, curated.Is(e, testError))

	// Has() should fail because we haven't included testErrorB anywhere in the error
	test.ExpectFailure(t, curated.Has(e, testErrorB))

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := curated.Errorf(testErrorB, e)
	test.ExpectFailure(t, curated.Is(f, testError))
	test.ExpectSuccess(t, curated.Is(f, testErrorB))
	test.ExpectSuccess(t, curated.Has(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testErrorB))

	// IsAny should return true for these errors also
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.IsAny(f))

	// a plain error is not curated
	test.ExpectFailure(t, curated.IsAny(errors.New("plain")))
	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestWrapping(t *testing.T) {
	// curated errors wrapped by a standard error can still be found with Has()
	e := curated.Errorf(testError, "foo")
	w := fmt.Errorf("outer: %w", e)
	test.ExpectSuccess(t, curated.Has(w, testError))
	test.ExpectFailure(t, curated.Is(w, testError))

	// system errors wrapped by a curated error can be found with errors.Is()
	f := curated.Errorf("relay transport: %v", io.ErrClosedPipe)
	test.ExpectSuccess(t, errors.Is(f, io.ErrClosedPipe))
	test.ExpectFailure(t, errors.Is(f, io.EOF))
}
