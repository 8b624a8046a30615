// Package hash provides keyed hashing helpers.
//
// The identity provider requires a SECRET_HASH (base64 HMAC-SHA256 of
// username+clientID keyed by the client secret) on every call made by an app
// client that has a secret.
package hash
