package event

const UserRegisteredDestination string = "signup.user_registered"

type UserRegisteredMessage struct {
	UserSub     string   `json:"user_sub"`
	Username    string   `json:"username"`
	Channel     string   `json:"channel"`
	Interests   []string `json:"interests,omitempty"`
	Suggestions string   `json:"suggestions,omitempty"`
}
