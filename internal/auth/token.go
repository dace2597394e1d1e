package auth

import "math/rand"

// SubscriptionTokenLen is the number of characters in a confirmation token.
const SubscriptionTokenLen = 25

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSubscriptionToken returns a random 25 character alphanumeric token.
// Tokens are drawn from a fast non-cryptographic source and are not checked
// for uniqueness.
func GenerateSubscriptionToken() string {
	b := make([]byte, SubscriptionTokenLen)
	for i := range b {
		b[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
	}
	return string(b)
}
