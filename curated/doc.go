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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. The pattern is how curated errors are told apart. For
// example:
//
//	e := curated.Errorf("relay protocol: %v", "unexpected greeting")
//
//	if curated.Is(e, "relay protocol: %v") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf("relay protocol: %v", "unexpected greeting")
//	f := curated.Errorf("opl2arduino: %v", e)
//
//	if curated.Has(f, "relay protocol: %v") {
//		fmt.Println("true")
//	}
//
// In the example above the call to Is(f, "relay protocol: %v") would fail
// because f was created with the pattern "opl2arduino: %v". The protocol
// error is wrapped inside it.
//
// IsAny() answers whether the error was created by curated.Errorf() at all.
// We can think of the difference as being 'expected' and 'unexpected' errors
// depending on how we choose to handle the result of the function call.
//
// The Error() function normalises the error chain. Specifically, the chain
// does not contain duplicate adjacent parts. For example, if each layer of a
// call stack wraps the error from the layer below with the pattern "relay: %v"
// the message will be:
//
//	relay: no serial device
//
// and not:
//
//	relay: relay: no serial device
//
// For the purposes of this package we think of chains as being composed of
// parts separated by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan).
//
// Sentinel patterns should be stored as a const string, suitably named and
// commented, in the package that creates the error. See the hardware/opl
// package for examples.
package curated
