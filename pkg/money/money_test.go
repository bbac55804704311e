package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "25.99", Cents(2599).Format())
	assert.Equal(t, "5.00", Cents(500).Format())
	assert.Equal(t, "0.50", Cents(50).Format())
	assert.Equal(t, "0.00", Cents(0).Format())
	assert.Equal(t, "-0.50", Cents(-50).Format())
	assert.Equal(t, "1000.05", Cents(100005).Format())
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Cents
	}{
		{"25.99", 2599},
		{"5.00", 500},
		{"5", 500},
		{"5.9", 590},
		{"0.50", 50},
		{"-0.50", -50},
		{" 10.25 ", 1025},
		{".99", 99},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", "1.2.3"} {
		_, err := Parse(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, c := range []Cents{0, 1, 99, 100, 2599, 100000, -2599} {
		got, err := Parse(c.Format())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}
