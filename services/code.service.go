package services

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// HOTPCode generates numeric codes from a fresh random secret and counter with HOTP
type HOTPCode struct {
	Digits int
}

// Generate returns a new numeric code with the configured number of digits
func (h HOTPCode) Generate() (string, error) {
	buf := make([]byte, 28)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf[:20])
	counter := binary.BigEndian.Uint64(buf[20:])

	return hotp.GenerateCodeCustom(secret, counter, hotp.ValidateOpts{
		Digits:    otp.Digits(h.Digits),
		Algorithm: otp.AlgorithmSHA1,
	})
}
