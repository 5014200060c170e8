package voucher

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^AD-[A-Z2-9]{4}-[A-Z2-9]{4}$`)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Regexp(t, pattern, code)
	}
}

func TestGenerateCode_AvoidsAmbiguousSymbols(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		for _, forbidden := range []string{"0", "O", "1", "I"} {
			require.NotContains(t, strings.TrimPrefix(code, codePrefix), forbidden, code)
		}
	}
}

func TestGenerateCode_NotRepeating(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.False(t, seen[code], "duplicate code %s after %d draws", code, i)
		seen[code] = true
	}
}
