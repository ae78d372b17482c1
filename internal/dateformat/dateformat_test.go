package dateformat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalize_CanonicalPassthrough(t *testing.T) {
	for _, s := range []string{"2023-01-15", "1999-12-31", "2024-02-29"} {
		got, err := Normalize(s)
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestNormalize_CanonicalShapeButInvalidDate(t *testing.T) {
	_, err := Normalize("2023-02-30")
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestNormalize_LegacyLayouts(t *testing.T) {
	cases := map[string]string{
		"08/26/2023":                "2023-08-26",
		"8/26/2023":                 "2023-08-26",
		"08/26/23":                  "2023-08-26",
		"08-26-2023":                "2023-08-26",
		"08.26.2023":                "2023-08-26",
		"08262023":                  "2023-08-26",
		"20230826":                  "2023-08-26",
		"2023/08/26":                "2023-08-26",
		"2023-8-26":                 "2023-08-26",
		"26/08/2023":                "2023-08-26",
		"26.08.2023":                "2023-08-26",
		"August 26, 2023":           "2023-08-26",
		"Aug 26, 2023":              "2023-08-26",
		"26 Aug 2023":               "2023-08-26",
		"26-Aug-2023":               "2023-08-26",
		"Saturday, August 26, 2023": "2023-08-26",
		"2023-08-26T10:30:00Z":      "2023-08-26",
		"2023-08-26T10:30:00":       "2023-08-26",
		"2023-08-26 10:30:00":       "2023-08-26",
		"  2023-08-26  ":            "2023-08-26",
	}
	for in, want := range cases {
		got, err := Normalize(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestNormalize_AmbiguousPrefersMonthFirst(t *testing.T) {
	got, err := Normalize("03/04/2023")
	require.NoError(t, err)
	require.Equal(t, "2023-03-04", got)
}

func TestNormalize_KeepsOffsetLocalDate(t *testing.T) {
	got, err := Normalize("2023-08-26T23:30:00-05:00")
	require.NoError(t, err)
	require.Equal(t, "2023-08-26", got)
}

func TestNormalize_Invalid(t *testing.T) {
	for _, s := range []string{"not a date", "", "   ", "13/45/2023", "2023-13", "02/30/2023x"} {
		_, err := Normalize(s)
		require.ErrorIs(t, err, ErrInvalidFormat, s)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("01/15/2023")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = Parse("nope")
	require.ErrorIs(t, err, ErrInvalidFormat)
}
