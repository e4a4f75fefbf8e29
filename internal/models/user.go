package models

// UserProfile lists the profile fields the dashboard reads. The API returns the
// upstream object verbatim; this type is only decoded for logging and docs.
type UserProfile struct {
	Login       string  `json:"login"`
	Name        *string `json:"name"`
	AvatarURL   string  `json:"avatar_url"`
	Bio         *string `json:"bio"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
}
