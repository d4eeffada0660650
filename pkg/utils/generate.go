package utils

import (
	"crypto/rand"
	"fmt"
	mathrand "math/rand"
	"time"
)

// GenerateOTP creates a numeric OTP of specified length from a
// cryptographic source.
func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	buf := make([]byte, length)
	rand.Read(buf)

	digits := make([]byte, length)
	for i, b := range buf {
		digits[i] = '0' + b%10
	}

	return string(digits)
}

// GenerateBookingRef creates a unique booking reference with timestamp
func GenerateBookingRef() string {
	now := time.Now()

	// Format: TIX-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", mathrand.Intn(10000))

	return fmt.Sprintf("TIX-%s-%s-%s", datePart, timePart, randomPart)
}
