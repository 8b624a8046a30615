package entity

import (
	"slices"
	"strings"
	"time"
)

// DefaultCountryCode is prefixed to phone numbers entered without one.
const DefaultCountryCode = "+91"

// IdentifierKind says whether the user signs up with an email or a phone.
type IdentifierKind int

const (
	KindEmail IdentifierKind = iota
	KindPhone
)

func (k IdentifierKind) String() string {
	if k == KindPhone {
		return "phone"
	}
	return "email"
}

// ParseIdentifierKind accepts "email" and "phone". Anything else is email.
func ParseIdentifierKind(s string) IdentifierKind {
	if strings.EqualFold(strings.TrimSpace(s), "phone") {
		return KindPhone
	}
	return KindEmail
}

// BirthDate is the date of birth as typed, one field per input box.
type BirthDate struct {
	Day   string
	Month string
	Year  string
}

// Draft accumulates the sign-up steps. It is a value: With* methods return
// a modified copy and never touch the receiver.
type Draft struct {
	identifier      string
	kind            IdentifierKind
	countryCode     string
	password        string
	confirmPassword string
	birthDate       BirthDate
	interests       []string
	suggestions     string
}

func NewDraft() Draft {
	return Draft{kind: KindEmail, countryCode: DefaultCountryCode}
}

func (d Draft) WithIdentifier(kind IdentifierKind, value string) Draft {
	d.kind = kind
	d.identifier = value
	return d
}

// WithCountryCode is ignored when code is blank.
func (d Draft) WithCountryCode(code string) Draft {
	if code = strings.TrimSpace(code); code != "" {
		if !strings.HasPrefix(code, "+") {
			code = "+" + code
		}
		d.countryCode = code
	}
	return d
}

func (d Draft) WithPassword(password, confirm string) Draft {
	d.password = password
	d.confirmPassword = confirm
	return d
}

func (d Draft) WithBirthDate(b BirthDate) Draft {
	d.birthDate = b
	return d
}

func (d Draft) WithInterests(tags []string, suggestions string) Draft {
	d.interests = slices.Clone(tags)
	d.suggestions = suggestions
	return d
}

func (d Draft) Identifier() string { return d.identifier }
func (d Draft) Kind() IdentifierKind { return d.kind }
func (d Draft) CountryCode() string { return d.countryCode }
func (d Draft) Password() string { return d.password }
func (d Draft) ConfirmPassword() string { return d.confirmPassword }
func (d Draft) BirthDate() BirthDate { return d.birthDate }
func (d Draft) Interests() []string { return slices.Clone(d.interests) }
func (d Draft) Suggestions() string { return d.suggestions }

// Username is the identity provider login name: the lowercased email or the
// phone number in E.164 form.
func (d Draft) Username() string {
	if d.kind == KindPhone {
		return NormalizePhone(d.identifier, d.countryCode)
	}
	return NormalizeEmail(d.identifier)
}

// Attributes are the user attributes sent at registration. Interests are
// stored comma-separated under interestsAttr when it is set.
func (d Draft) Attributes(interestsAttr string) map[string]string {
	attrs := make(map[string]string, 4)

	if d.kind == KindPhone {
		attrs[AttrPhoneNumber] = d.Username()
	} else {
		attrs[AttrEmail] = d.Username()
	}

	if t, ok := d.birthDate.Time(); ok {
		attrs[AttrBirthdate] = t.Format(time.DateOnly)
	}

	if interestsAttr != "" && len(d.interests) > 0 {
		attrs[interestsAttr] = strings.Join(d.interests, ",")
	}

	return attrs
}

const (
	AttrEmail       = "email"
	AttrPhoneNumber = "phone_number"
	AttrBirthdate   = "birthdate"
)

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone strips formatting and prefixes countryCode when the number
// has no leading "+".
func NormalizePhone(s, countryCode string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	out := b.String()
	if out == "" || strings.HasPrefix(out, "+") {
		return out
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return countryCode + out
}
