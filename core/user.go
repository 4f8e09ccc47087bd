package core

// AnonymousUserID identifies requests that carry no credentials.
const AnonymousUserID = "anon"

type (
	User struct {
		Subject   string `json:"subject"`
		Login     string `json:"login"`
		Email     string `json:"email,omitempty"`
		AvatarURL string `json:"avatarUrl,omitempty"`
		Name      string `json:"name,omitempty"`
	}
)
