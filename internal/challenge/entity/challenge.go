package entity

import (
	"strconv"
	"strings"
	"time"
)

const (
	// ChallengeCustom is the only challenge name this pool issues.
	ChallengeCustom = "CUSTOM_CHALLENGE"
	// MetadataOTP tags challenges created by this service.
	MetadataOTP = "OTP_CHALLENGE"

	ParamAnswer         = "answer"
	ParamExpiresAt      = "expiresAt"
	ParamDeliveryMedium = "deliveryMedium"
	ParamDestination    = "destination"

	AttrPhoneNumber = "phone_number"
	AttrEmail       = "email"
)

// SessionEntry is one completed round of the auth session.
type SessionEntry struct {
	ChallengeName string
	Result        bool
	Metadata      string
}

// Decision is the next step the identity provider should take.
type Decision struct {
	ChallengeName      string
	IssueTokens        bool
	FailAuthentication bool
}

// Challenge is an issued one-time code with its delivery target.
type Challenge struct {
	Answer    string
	ExpiresAt time.Time
	Recipient Recipient
}

// PrivateParameters are visible only to the verify step.
func (c Challenge) PrivateParameters() map[string]string {
	return map[string]string{
		ParamAnswer:    c.Answer,
		ParamExpiresAt: strconv.FormatInt(c.ExpiresAt.Unix(), 10),
	}
}

// PublicParameters are returned to the client so it can say where the code went.
func (c Challenge) PublicParameters() map[string]string {
	return map[string]string{
		ParamDeliveryMedium: c.Recipient.Channel.String(),
		ParamDestination:    c.Recipient.Masked(),
	}
}

// ExpiryFromParameters reads ParamExpiresAt. ok is false when the key is
// absent; err is set when it is present but not a unix timestamp.
func ExpiryFromParameters(params map[string]string) (t time.Time, ok bool, err error) {
	raw, found := params[ParamExpiresAt]
	if !found {
		return time.Time{}, false, nil
	}
	sec, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return time.Time{}, true, err
	}
	return time.Unix(sec, 0), true, nil
}

// RateLimitRecord is one code issuance for an identifier.
type RateLimitRecord struct {
	Identifier string
	Timestamp  time.Time
	// ExpiresAt is when the store may drop the record.
	ExpiresAt time.Time
}

// SignUpDecision controls account activation at registration. Nil flags are
// left unset in the response.
type SignUpDecision struct {
	AutoConfirmUser bool
	AutoVerifyEmail *bool
	AutoVerifyPhone *bool
}
