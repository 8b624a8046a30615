// Package clock provides a tiny time abstraction.
//
// Rate-limit windows and code expiry depend on the current time; business
// logic reads it through Clocker so tests can pin it with Fixed.
package clock
