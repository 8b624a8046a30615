// Package otp generates and compares the numeric one-time codes delivered by
// SMS or email during sign-in.
package otp
