package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		minutes int
		wantErr bool
	}{
		{in: "07:00", want: "07:00", minutes: 420},
		{in: "19:00", want: "19:00", minutes: 1140},
		{in: "9:05", want: "09:05", minutes: 545},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
			assert.Equal(t, tc.minutes, got.Minutes())
		})
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	nine, ten, eleven := TimeOfDay(9*60), TimeOfDay(10*60), TimeOfDay(11*60)

	assert.True(t, overlaps(nine, eleven, ten, eleven+60))
	assert.True(t, overlaps(nine, eleven, nine, eleven)) // identical
	assert.True(t, overlaps(nine, eleven, nine+30, ten)) // contained
	assert.False(t, overlaps(nine, ten, ten, eleven))    // touching
	assert.False(t, overlaps(ten, eleven, nine, ten))    // touching, reversed
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-14")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, d, NormalizeDate(d))

	_, err = ParseDate("14/09/2026")
	require.Error(t, err)
}
