// Package mail sends email. SES v2 is the production driver; SMTP is kept for
// local mail catchers.
package mail
