package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHHMM(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"10:00", "10:00", true},
		{"10:00:00", "10:00", true},
		{"09:30:45", "09:30", true},
		{"23:59", "23:59", true},
		{"24:00", "", false},
		{"10:60", "", false},
		{"10", "", false},
		{"", "", false},
		{"10:00:00:00", "", false},
	}

	for _, tc := range cases {
		got, ok := normalizeHHMM(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
