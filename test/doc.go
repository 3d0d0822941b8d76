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

// Package test contains helper functions to remove common boilerplate from
// the tests of the other packages in the module.
//
// The ExpectSuccess() and ExpectFailure() functions test for success and
// failure under generic conditions. The documentation for those functions
// describe the currently supported types.
//
// The nil type is considered a success and consequently will cause
// ExpectFailure() to fail and ExpectSuccess() to succeed. This is how errors
// usually work (nil to indicate no error) and so we *need* to interpret nil in
// this way.
//
// ExpectEquality() and ExpectInequality() compare values of any comparable
// type. Both values must be of the same type.
//
// ExpectCompletion(), ExpectBlocked(), ExpectClosed() and ExpectEventually()
// test code that runs concurrently with the test. They never wait for longer
// than the timeout they are given.
//
// The CompareWriter type implements the io.Writer interface and should be used
// to capture output. The Compare() function can then be used to test for
// equality.
package test
