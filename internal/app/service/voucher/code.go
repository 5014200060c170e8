package voucher

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// codeAlphabet omits visually ambiguous symbols (0/O, 1/I) so codes
// survive being read off a phone screen or an SMS.
const (
	codeAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codePrefix     = "AD"
	segmentLength  = 4
	segmentsPerKey = 2
)

func generateSegment() (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < segmentLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// GenerateCode produces an unpredictable voucher code of the form
// AD-XXXX-XXXX. Each symbol is drawn from a cryptographically secure
// source; codes are never sequential or derived from order ids.
func GenerateCode() (string, error) {
	parts := make([]string, 0, segmentsPerKey+1)
	parts = append(parts, codePrefix)
	for i := 0; i < segmentsPerKey; i++ {
		seg, err := generateSegment()
		if err != nil {
			return "", err
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, "-"), nil
}
