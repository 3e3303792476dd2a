// Package service provides technical services for authentication operations.
package service

// TokenService defines operations for bearer token generation and hashing.
// Implementations must use cryptographically secure random generation and
// fast hashing algorithms suitable for token lookup (e.g., SHA-256).
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token.
	// Returns both the plain text token (to be shared with the principal) and
	// the hashed version (to be stored in the database).
	//
	// The plain token should be treated as sensitive data and only displayed
	// once during principal creation.
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a plain text token using SHA-256.
	// Used for token validation by comparing hashes.
	HashToken(plainToken string) string
}
