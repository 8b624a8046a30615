package entity

import (
	"strings"
)

// Channel is how a code is delivered.
type Channel int

const (
	ChannelUnknown Channel = iota
	ChannelSMS
	ChannelEmail
)

func (c Channel) String() string {
	switch c {
	case ChannelSMS:
		return "SMS"
	case ChannelEmail:
		return "EMAIL"
	default:
		return "UNKNOWN"
	}
}

// Recipient is a delivery address on a channel.
type Recipient struct {
	Channel Channel
	Address string
}

// RecipientFromAttributes picks phone over email. ok is false when the user
// has neither.
func RecipientFromAttributes(attrs map[string]string) (Recipient, bool) {
	if phone := strings.TrimSpace(attrs[AttrPhoneNumber]); phone != "" {
		return Recipient{Channel: ChannelSMS, Address: phone}, true
	}
	if email := strings.TrimSpace(attrs[AttrEmail]); email != "" {
		return Recipient{Channel: ChannelEmail, Address: email}, true
	}
	return Recipient{}, false
}

// Masked hides most of the address: "+91******3210", "j***@example.com".
func (r Recipient) Masked() string {
	return MaskAddress(r.Address)
}

// MaskAddress masks an email local part or all but the last four digits of
// a phone number.
func MaskAddress(addr string) string {
	if local, domain, ok := strings.Cut(addr, "@"); ok {
		if local == "" {
			return "***@" + domain
		}
		return local[:1] + "***@" + domain
	}

	if len(addr) <= 4 {
		return strings.Repeat("*", len(addr))
	}

	keepHead := 0
	if strings.HasPrefix(addr, "+") && len(addr) > 7 {
		keepHead = 3
	}
	tail := len(addr) - 4
	return addr[:keepHead] + strings.Repeat("*", tail-keepHead) + addr[tail:]
}
