// Package validator wraps go-playground/validator with English messages and
// the custom tags used by the sign-up flow: password, otpcode, phone and
// interest.
package validator
