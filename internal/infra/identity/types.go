package identity

// verifyRequest is the payload sent to the identity provider.
type verifyRequest struct {
	Token string `json:"token"`
}

// verifyResponse is the provider's answer for a valid token.
type verifyResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// errorResponse is the provider's answer for a rejected token.
type errorResponse struct {
	Error string `json:"error"`
}
