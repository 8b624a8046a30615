package event

const UserSignedInDestination string = "signup.user_signed_in"

type UserSignedInMessage struct {
	Subject  string `json:"subject"`
	Username string `json:"username"`
}
