package entity

import "time"

// ChallengeHandle is an open custom-auth challenge. DeliveryMedium and
// Destination tell the client where the code went.
type ChallengeHandle struct {
	Username       string
	Session        string
	ChallengeName  string
	DeliveryMedium string
	Destination    string
}

type Tokens struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration
}

// Profile is the signed-in user as reported by the identity provider.
type Profile struct {
	Username   string
	Attributes map[string]string
}

type SessionInfo struct {
	Subject   string
	Username  string
	ClientID  string
	ExpiresAt time.Time
	Profile   Profile
}
