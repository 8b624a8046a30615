// Package sms sends short text messages. The production driver is Amazon
// SNS direct publish; the log driver only records that a message would have
// been sent and is meant for local development.
package sms
