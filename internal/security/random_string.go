package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// MinSecretKeyLength is the shortest HS256 signing key the service accepts.
	MinSecretKeyLength = 32

	secretKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", errNegativeLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", errEmptyAlphabet
	}

	size := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		index, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[index.Int64()]
	}
	return string(out), nil
}

// NewSecretKey returns a random alphanumeric signing key. Lengths below
// MinSecretKeyLength are raised to it.
func NewSecretKey(length int) (string, error) {
	return RandomString(max(length, MinSecretKeyLength), secretKeyAlphabet)
}
