package response

// The remote contract misspells the token field; the tag must match the wire.
type AuthResponse struct {
	AccessToken string `json:"accesToken"`
	Message     string `json:"message"`
	Success     bool   `json:"success"`
}
