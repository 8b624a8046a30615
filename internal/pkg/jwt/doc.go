// Package jwt reads the claims of identity-provider tokens.
//
// Tokens handled here are issued by the user pool and are only ever passed
// back to it (GetUser, GlobalSignOut), which verifies the signature. The
// package therefore decodes without verifying and only rejects malformed or
// expired tokens early.
package jwt
