package et

import (
	"github.com/go-gum/et/ettest"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestNowUTC(t *testing.T) {
	now := NowUTC(nil)

	require.Equal(t, time.UTC, now.Location())
	require.WithinDuration(t, time.Now(), now, time.Minute)

	require.Equal(t, time.UTC, NowUTC(SystemClock).Location())
}

func TestNowUTC_MockClock(t *testing.T) {
	clock := ettest.NewMockClock()
	require.Equal(t, ettest.DefaultNow, NowUTC(clock))

	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock.Set(fixed)
	require.Equal(t, fixed, NowUTC(clock))

	require.Equal(t, 2, clock.Calls())
}

func TestNowUTC_ConvertsToUTC(t *testing.T) {
	zurich := time.FixedZone("CET", 60*60)

	clock := ettest.NewMockClock()
	clock.Set(time.Date(2025, 6, 6, 14, 0, 0, 0, zurich))

	now := NowUTC(clock)
	require.Equal(t, time.UTC, now.Location())
	require.Equal(t, time.Date(2025, 6, 6, 13, 0, 0, 0, time.UTC), now)
}
