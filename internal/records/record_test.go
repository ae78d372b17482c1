package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordAccessors(t *testing.T) {
	r := Record{ID: "r1", Values: map[string]Field{
		"name":     {Value: "  Ada Lovelace ", Valid: true},
		"hours":    {Value: float64(40), Valid: true},
		"hoursStr": {Value: "37.5", Valid: true},
		"enrolled": {Value: true, Valid: true},
		"yes":      {Value: "Yes", Valid: true},
		"money":    {Value: "$1,250.50", Valid: true},
		"date":     {Value: "08/26/2023", Valid: true},
		"null":     {Value: nil, Valid: true},
	}}

	require.Equal(t, "Ada Lovelace", r.String("name"))
	require.Equal(t, "40", r.String("hours"))
	require.Equal(t, "", r.String("null"))
	require.Equal(t, "", r.String("absent"))
	require.False(t, r.Has("null"))

	f, err := r.Float("hoursStr")
	require.NoError(t, err)
	require.Equal(t, 37.5, f)

	b, err := r.Bool("enrolled")
	require.NoError(t, err)
	require.True(t, b)
	b, err = r.Bool("yes")
	require.NoError(t, err)
	require.True(t, b)
	_, err = r.Bool("name")
	require.Error(t, err)

	d, err := r.Decimal("money")
	require.NoError(t, err)
	require.Equal(t, "1250.5", d.String())

	date, err := r.Date("date")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 8, 26, 0, 0, 0, 0, time.UTC), date)

	opt, err := r.OptionalDate("null")
	require.NoError(t, err)
	require.Nil(t, opt)

	_, err = r.Date("name")
	require.Error(t, err)
}
