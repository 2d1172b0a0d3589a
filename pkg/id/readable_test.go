package id

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToReadable(t *testing.T) {
	tests := []struct {
		name          string
		ts            int64
		offsetMinutes int
		want          string
	}{
		{"utc+9", 1734422400240900, 9 * 60, "20241217_170000240900+09"},
		{"utc", 1734422400240900, 0, "20241217_080000240900+00"},
		{"epoch at utc-5", 0, -5 * 60, "19691231_190000000000-05"},
		{"before epoch", -1, 0, "19691231_235959999999+00"},
		{"half hour zone truncates", 1734422400000000, 5*60 + 30, "20241217_130000000000+05"},
		{"clamped zone", 0, 30 * 60, "19700101_230000000000+23"},
		{"later date", 1765953480240900, 9 * 60, "20251217_153800240900+09"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToReadable(tt.ts, tt.offsetMinutes))
			got, err := FromReadable(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.ts, got)
		})
	}
}

func TestFromReadableMalformed(t *testing.T) {
	tests := []string{
		"",
		"20241217170000240900+09",
		"20241217_170000240900+9",
		"20241217_17000024090+09",
		"20241217_170000240900 09",
		"2024121_7170000240900+09",
		"20241217_170000240900+09Z",
		"20241232_170000240900+09",
		"20240230_170000000000+00",
		"20241217_240000000000+00",
		"20241217_176000000000+00",
		"20241217_170000000000+24",
		"２0241217_170000240900+09",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := FromReadable(s)
			require.ErrorIs(t, err, ErrMalformedReadable)
		})
	}
}

func TestReadableRandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 2000; i++ {
		// 1900..2100
		ts := rng.Int63n(6311433600000000) - 2208988800000000
		offset := (rng.Intn(47) - 23) * 60
		got, err := FromReadable(ToReadable(ts, offset))
		require.NoError(t, err)
		require.Equal(t, ts, got)
	}
}

func TestReadableTick(t *testing.T) {
	got, err := Milli36.ReadableTick(1734422400000, 540)
	require.NoError(t, err)
	assert.Equal(t, "20241217_170000000000+09", got)

	got, err = Micro15.ReadableTick(1734422400240900, 540)
	require.NoError(t, err)
	assert.Equal(t, "20241217_170000240900+09", got)

	// largest 48-bit millisecond tick lands in year 10889
	_, err = Milli36.ReadableTick(1<<48-1, 0)
	require.ErrorIs(t, err, ErrTimestampRange)
	_, err = Micro26.ReadableTick(math.MaxInt64, 0)
	require.ErrorIs(t, err, ErrTimestampRange)
}

func TestFormatReadableYearBounds(t *testing.T) {
	const lastMicro = 253402300799999999 // 9999-12-31T23:59:59.999999Z
	got, err := FormatReadable(lastMicro, 0)
	require.NoError(t, err)
	assert.Equal(t, "99991231_235959999999+00", got)
	back, err := FromReadable(got)
	require.NoError(t, err)
	assert.Equal(t, int64(lastMicro), back)

	// the zone shift alone can push the displayed year past 9999
	_, err = FormatReadable(lastMicro, 60)
	require.ErrorIs(t, err, ErrTimestampRange)
	_, err = FormatReadable(lastMicro+1, 0)
	require.ErrorIs(t, err, ErrTimestampRange)

	const firstMicro = -62167219200000000 // 0000-01-01T00:00:00Z
	got, err = FormatReadable(firstMicro, 0)
	require.NoError(t, err)
	assert.Equal(t, "00000101_000000000000+00", got)
	_, err = FormatReadable(firstMicro, -60)
	require.ErrorIs(t, err, ErrTimestampRange)
}
