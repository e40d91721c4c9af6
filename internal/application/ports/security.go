package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates access tokens (RS256). Tokens carry only
// the user id; organization and role are resolved fresh per request so that
// membership changes take effect immediately.
type TokenIssuer interface {
	IssueAccessToken(userID string, expiresInSeconds int64) (string, error)
	ValidateAccessToken(tokenString string) (userID string, err error)
}
