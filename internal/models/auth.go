package models

// CallbackRequest is the body the SPA posts after the provider redirect.
type CallbackRequest struct {
	Code string `json:"code"`
}

// TokenResponse is returned on a successful code exchange. It carries the
// provider's access token untouched and nothing else.
type TokenResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
}
