package msisdn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"+256772123456", "256772123456", true},
		{"0772123456", "256772123456", true},
		{"0772 123 456", "256772123456", true},
		{"256772123456", "", false},
		{"+256672123456", "", false},
		{"077212345", "", false},
		{"07721234567", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, err := Normalize(c.in)
		if c.ok {
			require.NoError(t, err, c.in)
			require.Equal(t, c.want, got)
		} else {
			require.ErrorIs(t, err, ErrInvalid, c.in)
		}
	}
}
