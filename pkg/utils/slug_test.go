package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Gold Medical Plan":     "gold-medical-plan",
		"  Dental   (PPO) ":     "dental-ppo",
		"401(k) Match!":         "401k-match",
		"-Vision-":              "vision",
		"Café Crème":            "cafe-creme",
		"life_insurance basic":  "life_insurance-basic",
		"":                      "",
		"HSA\tFamily\nCoverage": "hsa-family-coverage",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), in)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.True(t, CheckPassword("secret123", hash))
	require.False(t, CheckPassword("wrong", hash))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}
