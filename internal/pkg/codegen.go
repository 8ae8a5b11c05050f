package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Join codes are short enough to read out loud: five characters from an
// uppercase alphanumeric alphabet, drawn from a uniform random source.
const (
	JoinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	JoinCodeLength   = 5

	digits = "0123456789"
)

// GenerateJoinCode produces a fresh 5-character join code.
func GenerateJoinCode() (string, error) {
	var builder strings.Builder

	for i := 0; i < JoinCodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(JoinCodeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to draw code character: %w", err)
		}

		builder.WriteByte(JoinCodeAlphabet[n.Int64()])
	}

	return builder.String(), nil
}

// AppendRandomDigit disambiguates a custom code that is already taken.
func AppendRandomDigit(code string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
	if err != nil {
		return "", fmt.Errorf("failed to draw digit: %w", err)
	}

	return code + string(digits[n.Int64()]), nil
}
