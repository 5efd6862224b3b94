package auth

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently ignores everything past 72 bytes, so longer passwords are
// truncated explicitly before hashing and before verification.
const maxPasswordBytes = 72

// normalizePassword cuts the password off at 72 bytes without leaving a
// partial UTF-8 sequence at the end.
func normalizePassword(pw string) string {
	if len(pw) <= maxPasswordBytes {
		return pw
	}
	b := []byte(pw)[:maxPasswordBytes]
	for len(b) > 0 {
		r, size := utf8.DecodeLastRune(b)
		if r == utf8.RuneError && size <= 1 {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	return string(b)
}

func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(normalizePassword(pw)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(normalizePassword(pw))) == nil
}
