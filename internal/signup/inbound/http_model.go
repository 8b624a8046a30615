package inbound

import (
	"net/http"
	"time"
)

type DraftRequest struct {
	IdentifierType  string   `json:"identifier_type"`
	Identifier      string   `json:"identifier"`
	CountryCode     string   `json:"country_code,omitempty"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Day             string   `json:"day"`
	Month           string   `json:"month"`
	Year            string   `json:"year"`
	Interests       []string `json:"interests"`
	Suggestions     string   `json:"suggestions,omitempty"`
}

type ValidateStepRequest struct {
	Step  string       `json:"step"`
	Draft DraftRequest `json:"draft"`
}

type ValidateStepResponse struct {
	Step string `json:"step"`
}

func (ValidateStepResponse) Message() string { return "Looks good" }

type SignupRequest DraftRequest

type ChallengeResponse struct {
	Username       string `json:"username"`
	Session        string `json:"session"`
	ChallengeName  string `json:"challenge_name"`
	DeliveryMedium string `json:"delivery_medium,omitempty"`
	Destination    string `json:"destination,omitempty"`
}

func (ChallengeResponse) Message() string { return "Verification code sent" }

type SignupResponse struct {
	ChallengeResponse
}

func (SignupResponse) Message() string {
	return "Account created. Enter the verification code we sent you."
}

func (SignupResponse) StatusCode() int { return http.StatusCreated }

type InitiateRequest struct {
	Username string `json:"username"`
}

type VerifyRequest struct {
	Username string   `json:"username"`
	Session  string   `json:"session"`
	Code     string   `json:"code,omitempty"`
	Cells    []string `json:"cells,omitempty"`
}

type VerifyResponse struct {
	Subject      string `json:"subject,omitempty"`
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (VerifyResponse) Message() string { return "Signed in" }

type SignOutResponse struct{}

func (SignOutResponse) Message() string { return "Signed out" }

type SessionResponse struct {
	Subject    string            `json:"subject"`
	Username   string            `json:"username"`
	ClientID   string            `json:"client_id,omitempty"`
	ExpiresAt  time.Time         `json:"expires_at"`
	Attributes map[string]string `json:"attributes,omitempty"`
}
