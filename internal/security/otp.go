package security

import (
	"crypto/rand"
	"math/big"
)

// otpAlphabet is the character set for generated one-time passwords. Printable
// and unambiguous enough to be typed from a welcome email.
const otpAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// OneTimePasswordLength is the length of generated one-time passwords.
const OneTimePasswordLength = 10

// GenerateOneTimePassword produces a random printable secret suitable for
// one-time delivery over email. Uses crypto/rand; never math/rand.
func GenerateOneTimePassword() (string, error) {
	max := big.NewInt(int64(len(otpAlphabet)))
	b := make([]byte, OneTimePasswordLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = otpAlphabet[n.Int64()]
	}
	return string(b), nil
}
