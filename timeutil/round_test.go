package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(h, m, s, ms int) time.Time {
	return time.Date(2010, 12, 10, h, m, s, ms*int(time.Millisecond), time.UTC)
}

func TestRoundUp(t *testing.T) {
	ts := at(12, 34, 56, 789)

	require.Equal(t, at(12, 35, 0, 0), RoundUp(ts, time.Minute))
	require.Equal(t, at(12, 45, 0, 0), RoundUp(ts, 15*time.Minute))
	require.Equal(t, at(13, 0, 0, 0), RoundUp(at(12, 45, 0, 0), 15*time.Minute), "aligned instants move to the next boundary")
	require.Equal(t, at(12, 35, 0, 0), RoundUp(at(12, 34, 0, 0), time.Minute))
}

func TestRoundDown(t *testing.T) {
	ts := at(12, 34, 56, 789)

	require.Equal(t, at(12, 34, 0, 0), RoundDown(ts, time.Minute))
	require.Equal(t, at(12, 30, 0, 0), RoundDown(ts, 15*time.Minute))
}

func TestRoundNearest(t *testing.T) {
	ts := at(12, 34, 30, 789)

	require.Equal(t, at(12, 35, 0, 0), RoundNearest(ts, time.Minute))
	require.Equal(t, at(12, 30, 0, 0), RoundNearest(ts, 15*time.Minute))
	require.Equal(t, at(12, 34, 0, 0), RoundNearest(at(12, 34, 30, 0), time.Minute), "halfway rounds down")
}

func TestRound_BeforeEpoch(t *testing.T) {
	ts := FromMillis(-1500)

	require.Equal(t, FromMillis(-2000), RoundDown(ts, time.Second))
	require.Equal(t, FromMillis(-1000), RoundUp(ts, time.Second))
}

func TestRound_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	ts := time.Date(2024, 1, 1, 10, 7, 0, 0, loc)

	got := RoundDown(ts, 15*time.Minute)
	require.Equal(t, loc, got.Location())
	require.True(t, got.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, loc)))
}

func TestRound_SubMillisecondSize(t *testing.T) {
	ts := at(1, 2, 3, 4)

	require.Equal(t, ts, RoundUp(ts, time.Microsecond))
}
