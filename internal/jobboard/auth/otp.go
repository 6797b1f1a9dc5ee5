package auth

import (
	"crypto/rand"
	"math/big"
)

// OTPLength is the number of digits in a password-reset code.
const OTPLength = 5

// GenerateOTP returns a random numeric one-time code of OTPLength digits.
func GenerateOTP() (string, error) {
	digits := make([]byte, OTPLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
